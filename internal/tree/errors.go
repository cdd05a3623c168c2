package tree

import (
	"errors"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

var (
	ErrNotFound      = errors.New("no such node")
	ErrExists        = errors.New("node exists")
	ErrNotBranch     = errors.New("not a branch")
	ErrIsBranch      = errors.New("is a branch")
	ErrNotEmpty      = errors.New("branch not empty")
	ErrRoot          = errors.New("operation not permitted on the root")
	ErrIntoSelf      = errors.New("cannot move a node below itself")
	ErrLinkDepth     = errors.New("too many levels of links")
	ErrInvalidKey    = errors.New("invalid key")
	ErrInvalidVolume = errors.New("invalid volume name")
)

// NodeError records the operation and node that failed.
type NodeError struct {
	Op   string
	Path treepath.Path
	Err  error
}

var _ error = (*NodeError)(nil)

func (e *NodeError) Error() string {
	if e == nil {
		return "(*NodeError)(nil)"
	}
	return e.Op + ": " + e.Path.String() + ": " + e.Err.Error()
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

func nodeErr(op string, p treepath.Path, err error) error {
	return &NodeError{Op: op, Path: p, Err: err}
}
