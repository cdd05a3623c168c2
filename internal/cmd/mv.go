package cmd

import (
	"context"
	"fmt"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

func (r *Router) handleMv(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("mv: missing operand")
	}

	src := r.ResolvePath(args[0])
	dst := r.ResolvePath(args[1])

	final := dst
	isBranch, err := r.Client.IsBranch(ctx, dst)
	if err != nil {
		return err
	}
	if last, ok := src.Last(); ok && isBranch {
		final = dst.JoinPath(treepath.FromSegments([]string{last}))
	}

	if err := r.Client.Move(ctx, src, dst); err != nil {
		return err
	}

	// Follow the working branch if it moved.
	if rest, err := r.State.Cwd.ElementsAfter(src); err == nil {
		r.State.Cwd = final.JoinPath(treepath.FromSegments(rest))
	}
	return nil
}
