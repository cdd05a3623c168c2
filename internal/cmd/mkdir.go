package cmd

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
)

func (r *Router) handleMkdir(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mkdir", flag.ContinueOnError)
	fs.SetOutput(r.Formatter.ErrWriter)
	parents := fs.BoolP("parents", "p", false, "Create parent branches as needed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("mkdir: missing operand")
	}

	for _, arg := range fs.Args() {
		if err := r.Client.MakeBranch(ctx, r.ResolvePath(arg), *parents); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) handleRmdir(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("rmdir: missing operand")
	}
	for _, arg := range args {
		if err := r.Client.RemoveBranch(ctx, r.ResolvePath(arg)); err != nil {
			return err
		}
	}
	return nil
}
