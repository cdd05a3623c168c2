package cmd

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/rowantrollope/pathkit/internal/tree"
)

func (r *Router) handleRm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(r.Formatter.ErrWriter)
	recursive := fs.BoolP("recursive", "r", false, "Remove branches and their contents recursively")
	force := fs.BoolP("force", "f", false, "Ignore missing nodes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("rm: missing operand")
	}

	for _, arg := range fs.Args() {
		path := r.ResolvePath(arg)

		var err error
		if *recursive {
			err = r.Client.RemoveRecursive(ctx, path)
		} else {
			err = r.Client.Remove(ctx, path)
		}
		if err != nil && !(*force && errors.Is(err, tree.ErrNotFound)) {
			return err
		}
	}
	return nil
}
