package index

import (
	"context"
	"fmt"

	"github.com/rowantrollope/pathkit/internal/tree"
	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// RebuildOptions controls rebuild behavior.
type RebuildOptions struct {
	Drop     bool          // drop the index before rebuilding
	Root     treepath.Path // subtree to index (default: the root)
	Progress func(indexed int, p treepath.Path)
}

// Rebuild walks the tree below opts.Root and indexes every node.
func Rebuild(ctx context.Context, client *tree.Client, idx *Indexer, opts RebuildOptions) (int, error) {
	if opts.Drop {
		if err := idx.Drop(ctx); err != nil {
			return 0, fmt.Errorf("rebuild: %w", err)
		}
	}

	indexed := 0
	err := client.Walk(ctx, opts.Root, func(p treepath.Path, _ *tree.Meta, _ []string) error {
		if p.IsEmpty() {
			return nil
		}
		if err := idx.Add(ctx, p); err != nil {
			idx.logger.Warn("index failed", "path", p.String(), "err", err)
			return nil
		}
		indexed++
		if opts.Progress != nil {
			opts.Progress(indexed, p)
		}
		return nil
	})
	if err != nil {
		return indexed, fmt.Errorf("rebuild: %w", err)
	}
	idx.logger.Info("index rebuilt", "root", opts.Root.String(), "paths", indexed)
	return indexed, nil
}
