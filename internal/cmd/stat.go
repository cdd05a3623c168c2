package cmd

import (
	"context"
	"fmt"

	"github.com/rowantrollope/pathkit/internal/tree"
)

func (r *Router) handleStat(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("stat: missing operand")
	}

	for _, arg := range args {
		path := r.ResolvePath(arg)
		meta, err := r.Client.Stat(ctx, path)
		if err != nil {
			return err
		}
		if meta == nil {
			return &tree.NodeError{Op: "stat", Path: path, Err: tree.ErrNotFound}
		}
		r.Formatter.PrintStat(path.String(), meta)
	}
	return nil
}
