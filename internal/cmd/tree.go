package cmd

import (
	"context"

	flag "github.com/spf13/pflag"
)

func (r *Router) handleTree(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	fs.SetOutput(r.Formatter.ErrWriter)
	maxDepth := fs.IntP("level", "L", 0, "Max display depth (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entry, branches, leaves, err := r.Client.Tree(ctx, r.ResolvePath(fs.Arg(0)), *maxDepth)
	if err != nil {
		return err
	}

	r.Formatter.PrintTree(entry, branches, leaves)
	return nil
}
