package cmd

import (
	"context"

	flag "github.com/spf13/pflag"
)

func (r *Router) handleLs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(r.Formatter.ErrWriter)
	long := fs.BoolP("long", "l", false, "Long listing format")
	all := fs.BoolP("all", "a", false, "Show hidden entries")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := r.ResolvePath(fs.Arg(0))
	if err := r.Client.RequireBranch(ctx, "ls", path); err != nil {
		return err
	}
	entries, err := r.Client.ChildrenWithMeta(ctx, path)
	if err != nil {
		return err
	}

	if *long {
		r.Formatter.PrintLsLong(entries, *all)
	} else {
		r.Formatter.PrintLs(entries, *all)
	}
	return nil
}
