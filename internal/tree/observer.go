package tree

import (
	"context"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// Observer receives notifications when nodes appear, disappear or move.
// Recursive operations notify once per affected node.
type Observer interface {
	OnCreate(ctx context.Context, p treepath.Path, kind Kind) error
	OnRemove(ctx context.Context, p treepath.Path) error
	OnMove(ctx context.Context, from, to treepath.Path) error
}
