package tree

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// WalkFunc is called for every node visited by Walk. children holds the
// child names of a branch and is empty otherwise.
type WalkFunc func(p treepath.Path, meta *Meta, children []string) error

// Walk visits root and its descendants depth-first, parents before
// children, children in name order. A missing root is ErrNotFound.
func (c *Client) Walk(ctx context.Context, root treepath.Path, fn WalkFunc) error {
	meta, err := c.Stat(ctx, root)
	if err != nil {
		return err
	}
	if meta == nil {
		return nodeErr("walk", root, ErrNotFound)
	}
	return c.walk(ctx, root, meta, fn)
}

func (c *Client) walk(ctx context.Context, p treepath.Path, meta *Meta, fn WalkFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var children []Entry
	if meta.IsBranch() {
		var err error
		if children, err = c.ChildrenWithMeta(ctx, p); err != nil {
			return err
		}
	}
	names := make([]string, len(children))
	for i, e := range children {
		names[i] = e.Name
	}
	if err := fn(p, meta, names); err != nil {
		return err
	}
	for _, e := range children {
		if e.Meta == nil {
			continue
		}
		if err := c.walk(ctx, e.Path, e.Meta, fn); err != nil {
			return err
		}
	}
	return nil
}

// Query selects nodes for Find. Zero fields match everything.
type Query struct {
	Name     string   // glob matched against the last segment
	Kind     Kind     // node kind
	Elements []string // segments that must all appear in the path
}

// ParseKind maps the find -type letters (b, d, l, f) and kind names to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "b", "d", "branch":
		return KindBranch, nil
	case "f", "leaf":
		return KindLeaf, nil
	case "l", "link":
		return KindLink, nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

func (q Query) matches(p treepath.Path, meta *Meta) bool {
	if q.Kind != "" && meta.Kind != q.Kind {
		return false
	}
	if q.Name != "" {
		if ok, _ := path.Match(q.Name, Base(p)); !ok {
			return false
		}
	}
	for _, el := range q.Elements {
		if !p.Contains(el) {
			return false
		}
	}
	return true
}

// FindEntry represents a result from Find.
type FindEntry struct {
	Path treepath.Path
	Meta *Meta
}

// Find walks the tree below root and returns every node matching q.
func (c *Client) Find(ctx context.Context, root treepath.Path, q Query) ([]FindEntry, error) {
	if q.Name != "" {
		if _, err := path.Match(q.Name, ""); err != nil {
			return nil, fmt.Errorf("find: %q: %w", q.Name, err)
		}
	}
	var results []FindEntry
	err := c.Walk(ctx, root, func(p treepath.Path, meta *Meta, _ []string) error {
		if q.matches(p, meta) {
			results = append(results, FindEntry{Path: p, Meta: meta})
		}
		return nil
	})
	return results, err
}

// TreeEntry represents a node in a tree listing.
type TreeEntry struct {
	Name     string
	Path     treepath.Path
	Kind     Kind
	Children []TreeEntry
}

// Tree builds a tree structure for root. maxDepth <= 0 means unlimited.
// It returns the entry together with the number of branches and other
// nodes below root.
func (c *Client) Tree(ctx context.Context, root treepath.Path, maxDepth int) (*TreeEntry, int, int, error) {
	meta, err := c.Stat(ctx, root)
	if err != nil {
		return nil, 0, 0, err
	}
	if meta == nil {
		return nil, 0, 0, nodeErr("tree", root, ErrNotFound)
	}

	entry := &TreeEntry{Name: Base(root), Path: root, Kind: meta.Kind}
	branches, leaves := 0, 0
	if meta.IsBranch() {
		if err := c.buildTree(ctx, entry, 1, maxDepth, &branches, &leaves); err != nil {
			return nil, 0, 0, err
		}
	} else {
		leaves = 1
	}
	return entry, branches, leaves, nil
}

func (c *Client) buildTree(ctx context.Context, entry *TreeEntry, depth, maxDepth int, branches, leaves *int) error {
	if maxDepth > 0 && depth > maxDepth {
		return nil
	}
	children, err := c.ChildrenWithMeta(ctx, entry.Path)
	if err != nil {
		return err
	}
	for _, e := range children {
		if e.Meta == nil {
			continue
		}
		childEntry := TreeEntry{Name: e.Name, Path: e.Path, Kind: e.Meta.Kind}
		if e.Meta.IsBranch() {
			*branches++
			if err := c.buildTree(ctx, &childEntry, depth+1, maxDepth, branches, leaves); err != nil {
				return err
			}
		} else {
			*leaves++
		}
		entry.Children = append(entry.Children, childEntry)
	}
	return nil
}

// ListVolumes scans for volume root metadata keys.
func (c *Client) ListVolumes(ctx context.Context) ([]string, error) {
	var volumes []string
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, VolumeRootPattern(), 100).Result()
		if err != nil {
			return nil, fmt.Errorf("vol list: %w", err)
		}
		for _, raw := range keys {
			key, err := ParseKey(raw)
			if err != nil || !key.Node().IsEmpty() {
				continue
			}
			volumes = append(volumes, key.Volume())
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(volumes)
	return volumes, nil
}
