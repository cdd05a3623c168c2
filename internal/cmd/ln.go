package cmd

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
)

func (r *Router) handleLn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ln", flag.ContinueOnError)
	fs.SetOutput(r.Formatter.ErrWriter)
	symbolic := fs.BoolP("symbolic", "s", false, "Create a link")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*symbolic {
		return fmt.Errorf("ln: only links are supported; use ln -s")
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("ln: missing operand")
	}

	return r.Client.Link(ctx, fs.Arg(0), r.ResolvePath(fs.Arg(1)))
}
