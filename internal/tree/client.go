// Package tree stores a hierarchy of named nodes in Redis. Every node is
// addressed by a treepath.Path; branches hold children, leaves hold a
// string value and links point at another node.
package tree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

const maxLinkDepth = 40

// Client provides tree operations backed by Redis.
type Client struct {
	rdb      *redis.Client
	keys     *KeyGen
	Volume   string
	observer Observer
	logger   *log.Logger
}

// NewClient creates a new tree client.
func NewClient(rdb *redis.Client, volume string) *Client {
	return &Client{
		rdb:    rdb,
		keys:   NewKeyGen(volume),
		Volume: volume,
		logger: log.New(io.Discard),
	}
}

// SetVolume switches the active volume.
func (c *Client) SetVolume(volume string) error {
	if err := ValidateVolume(volume); err != nil {
		return err
	}
	c.Volume = volume
	c.keys = NewKeyGen(volume)
	return nil
}

// SetObserver registers an Observer for mutation notifications.
func (c *Client) SetObserver(obs Observer) {
	c.observer = obs
}

// SetLogger replaces the logger used for debug output.
func (c *Client) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Keys returns the key generator of the active volume.
func (c *Client) Keys() *KeyGen {
	return c.keys
}

// Redis returns the underlying Redis client.
func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// Init bootstraps the volume root branch if it doesn't exist.
func (c *Client) Init(ctx context.Context) error {
	metaKey := c.keys.Meta(treepath.Empty)
	created, err := c.rdb.HSetNX(ctx, metaKey, "kind", string(KindBranch)).Result()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if created {
		if err := c.rdb.HSet(ctx, metaKey, NewBranchMeta().ToMap()).Err(); err != nil {
			return fmt.Errorf("init: %w", err)
		}
		c.logger.Info("initialized volume", "volume", c.Volume)
	}
	return nil
}

// Stat returns metadata for a node. Returns nil, nil if not found.
func (c *Client) Stat(ctx context.Context, p treepath.Path) (*Meta, error) {
	m, err := c.rdb.HGetAll(ctx, c.keys.Meta(p)).Result()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	return MetaFromMap(m), nil
}

// Exists checks if a node exists.
func (c *Client) Exists(ctx context.Context, p treepath.Path) (bool, error) {
	n, err := c.rdb.Exists(ctx, c.keys.Meta(p)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsBranch checks if p is an existing branch.
func (c *Client) IsBranch(ctx context.Context, p treepath.Path) (bool, error) {
	k, err := c.rdb.HGet(ctx, c.keys.Meta(p), "kind").Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return k == string(KindBranch), nil
}

// Children returns the sorted child names of a branch.
func (c *Client) Children(ctx context.Context, p treepath.Path) ([]string, error) {
	members, err := c.rdb.SMembers(ctx, c.keys.Kids(p)).Result()
	if err != nil {
		return nil, fmt.Errorf("children: %w", err)
	}
	sort.Strings(members)
	return members, nil
}

// Entry is a child listing entry with metadata.
type Entry struct {
	Name string
	Path treepath.Path
	Meta *Meta
}

// ChildrenWithMeta returns the children of p with their metadata.
func (c *Client) ChildrenWithMeta(ctx context.Context, p treepath.Path) ([]Entry, error) {
	names, err := c.Children(ctx, p)
	if err != nil || len(names) == 0 {
		return nil, err
	}

	pipe := c.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.HGetAll(ctx, c.keys.Meta(child(p, name)))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("children meta: %w", err)
	}

	entries := make([]Entry, 0, len(names))
	for i, name := range names {
		m, _ := cmds[i].Result()
		entries = append(entries, Entry{Name: name, Path: child(p, name), Meta: MetaFromMap(m)})
	}
	return entries, nil
}

// RequireBranch fails unless p is an existing branch.
func (c *Client) RequireBranch(ctx context.Context, op string, p treepath.Path) error {
	meta, err := c.Stat(ctx, p)
	if err != nil {
		return err
	}
	if meta == nil {
		return nodeErr(op, p, ErrNotFound)
	}
	if !meta.IsBranch() {
		return nodeErr(op, p, ErrNotBranch)
	}
	return nil
}

// MakeBranch creates a branch. If parents is true, missing ancestors are
// created and an existing branch at p is not an error.
func (c *Client) MakeBranch(ctx context.Context, p treepath.Path, parents bool) error {
	if p.IsEmpty() {
		return nil
	}
	if parents {
		return c.makeParents(ctx, p)
	}

	if err := c.RequireBranch(ctx, "mkdir", p.WithoutLast()); err != nil {
		return err
	}
	exists, err := c.Exists(ctx, p)
	if err != nil {
		return err
	}
	if exists {
		return nodeErr("mkdir", p, ErrExists)
	}
	return c.createNode(ctx, "mkdir", p, NewBranchMeta(), nil)
}

func (c *Client) makeParents(ctx context.Context, p treepath.Path) error {
	for i := 1; i <= p.Len(); i++ {
		current := treepath.FromSegments(p.FirstN(i))
		meta, err := c.Stat(ctx, current)
		if err != nil {
			return err
		}
		if meta == nil {
			if err := c.createNode(ctx, "mkdir", current, NewBranchMeta(), nil); err != nil {
				return err
			}
			continue
		}
		if !meta.IsBranch() {
			return nodeErr("mkdir", current, ErrNotBranch)
		}
	}
	return nil
}

// createNode writes the metadata of p, links it into its parent and, for
// leaves, stores value.
func (c *Client) createNode(ctx context.Context, op string, p treepath.Path, meta *Meta, value *string) error {
	parent, base := split(p)

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.keys.Meta(p), meta.ToMap())
	pipe.SAdd(ctx, c.keys.Kids(parent), base)
	if value != nil {
		pipe.Set(ctx, c.keys.Data(p), *value, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Debug("created node", "path", p.String(), "kind", meta.Kind)
	c.notifyCreate(ctx, p, meta.Kind)
	return nil
}

// deleteNode removes every key of p and unlinks it from its parent.
func (c *Client) deleteNode(ctx context.Context, op string, p treepath.Path) error {
	parent, base := split(p)

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, c.keys.Meta(p), c.keys.Data(p), c.keys.Kids(p))
	pipe.SRem(ctx, c.keys.Kids(parent), base)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Debug("removed node", "path", p.String())
	c.notifyRemove(ctx, p)
	return nil
}

// RemoveBranch removes an empty branch.
func (c *Client) RemoveBranch(ctx context.Context, p treepath.Path) error {
	if p.IsEmpty() {
		return nodeErr("rmdir", p, ErrRoot)
	}
	if err := c.RequireBranch(ctx, "rmdir", p); err != nil {
		return err
	}
	count, err := c.rdb.SCard(ctx, c.keys.Kids(p)).Result()
	if err != nil {
		return err
	}
	if count > 0 {
		return nodeErr("rmdir", p, ErrNotEmpty)
	}
	return c.deleteNode(ctx, "rmdir", p)
}

// Touch creates an empty leaf or updates the timestamps of an existing node.
func (c *Client) Touch(ctx context.Context, p treepath.Path) error {
	exists, err := c.Exists(ctx, p)
	if err != nil {
		return err
	}
	if exists {
		now := strconv.FormatInt(time.Now().Unix(), 10)
		return c.rdb.HSet(ctx, c.keys.Meta(p), "mtime", now, "atime", now).Err()
	}
	if p.IsEmpty() {
		return nodeErr("touch", p, ErrRoot)
	}
	if err := c.RequireBranch(ctx, "touch", p.WithoutLast()); err != nil {
		return err
	}
	empty := ""
	return c.createNode(ctx, "touch", p, NewLeafMeta(0), &empty)
}

// Get returns the value of a leaf, following links.
func (c *Client) Get(ctx context.Context, p treepath.Path) (string, error) {
	target, meta, err := c.follow(ctx, "cat", p)
	if err != nil {
		return "", err
	}
	if meta.IsBranch() {
		return "", nodeErr("cat", p, ErrIsBranch)
	}

	data, err := c.rdb.Get(ctx, c.keys.Data(target)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cat: %w", err)
	}

	now := strconv.FormatInt(time.Now().Unix(), 10)
	c.rdb.HSet(ctx, c.keys.Meta(target), "atime", now)
	return data, nil
}

// follow resolves links starting at p and returns the final node and its
// metadata. A missing node is ErrNotFound.
func (c *Client) follow(ctx context.Context, op string, p treepath.Path) (treepath.Path, *Meta, error) {
	target, err := c.ResolveLink(ctx, p)
	if err != nil {
		return treepath.Empty, nil, err
	}
	meta, err := c.Stat(ctx, target)
	if err != nil {
		return treepath.Empty, nil, err
	}
	if meta == nil {
		return treepath.Empty, nil, nodeErr(op, p, ErrNotFound)
	}
	return target, meta, nil
}

// Put sets the value of a leaf, creating it below an existing branch if
// needed. Writing through a link writes its target.
func (c *Client) Put(ctx context.Context, p treepath.Path, value string) error {
	target, err := c.ResolveLink(ctx, p)
	if err != nil {
		return err
	}
	meta, err := c.Stat(ctx, target)
	if err != nil {
		return err
	}

	if meta != nil {
		if meta.IsBranch() {
			return nodeErr("put", target, ErrIsBranch)
		}
		now := strconv.FormatInt(time.Now().Unix(), 10)
		pipe := c.rdb.TxPipeline()
		pipe.Set(ctx, c.keys.Data(target), value, 0)
		pipe.HSet(ctx, c.keys.Meta(target), "size", strconv.Itoa(len(value)), "mtime", now)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("put: %w", err)
		}
		return nil
	}

	if target.IsEmpty() {
		return nodeErr("put", target, ErrRoot)
	}
	if err := c.RequireBranch(ctx, "put", target.WithoutLast()); err != nil {
		return err
	}
	return c.createNode(ctx, "put", target, NewLeafMeta(int64(len(value))), &value)
}

// Append appends to the value of a leaf, creating it if needed.
func (c *Client) Append(ctx context.Context, p treepath.Path, value string) error {
	target, err := c.ResolveLink(ctx, p)
	if err != nil {
		return err
	}
	meta, err := c.Stat(ctx, target)
	if err != nil {
		return err
	}
	if meta == nil {
		return c.Put(ctx, target, value)
	}
	if meta.IsBranch() {
		return nodeErr("append", target, ErrIsBranch)
	}

	pipe := c.rdb.TxPipeline()
	pipe.Append(ctx, c.keys.Data(target), value)
	strlen := pipe.StrLen(ctx, c.keys.Data(target))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append: %w", err)
	}

	now := strconv.FormatInt(time.Now().Unix(), 10)
	size := strconv.FormatInt(strlen.Val(), 10)
	return c.rdb.HSet(ctx, c.keys.Meta(target), "size", size, "mtime", now).Err()
}

// Remove removes a leaf or link.
func (c *Client) Remove(ctx context.Context, p treepath.Path) error {
	if p.IsEmpty() {
		return nodeErr("rm", p, ErrRoot)
	}
	meta, err := c.Stat(ctx, p)
	if err != nil {
		return err
	}
	if meta == nil {
		return nodeErr("rm", p, ErrNotFound)
	}
	if meta.IsBranch() {
		return nodeErr("rm", p, ErrIsBranch)
	}
	return c.deleteNode(ctx, "rm", p)
}

// RemoveRecursive removes p and everything below it.
func (c *Client) RemoveRecursive(ctx context.Context, p treepath.Path) error {
	if p.IsEmpty() {
		return nodeErr("rm", p, ErrRoot)
	}
	meta, err := c.Stat(ctx, p)
	if err != nil {
		return err
	}
	if meta == nil {
		return nodeErr("rm", p, ErrNotFound)
	}

	if meta.IsBranch() {
		children, err := c.Children(ctx, p)
		if err != nil {
			return err
		}
		for _, name := range children {
			if err := c.RemoveRecursive(ctx, child(p, name)); err != nil {
				return err
			}
		}
	}
	return c.deleteNode(ctx, "rm", p)
}

// destination returns dst, or dst/<base of src> when dst is an existing branch.
func (c *Client) destination(ctx context.Context, src, dst treepath.Path) (treepath.Path, error) {
	isBranch, err := c.IsBranch(ctx, dst)
	if err != nil {
		return treepath.Empty, err
	}
	if isBranch {
		if last, ok := src.Last(); ok {
			return child(dst, last), nil
		}
	}
	return dst, nil
}

// Copy copies a single leaf or link.
func (c *Client) Copy(ctx context.Context, src, dst treepath.Path) error {
	srcMeta, err := c.Stat(ctx, src)
	if err != nil {
		return err
	}
	if srcMeta == nil {
		return nodeErr("cp", src, ErrNotFound)
	}
	if srcMeta.IsBranch() {
		return nodeErr("cp", src, ErrIsBranch)
	}
	if dst, err = c.destination(ctx, src, dst); err != nil {
		return err
	}
	return c.copyNode(ctx, src, dst, srcMeta)
}

func (c *Client) copyNode(ctx context.Context, src, dst treepath.Path, srcMeta *Meta) error {
	if dst.IsEmpty() {
		return nodeErr("cp", dst, ErrRoot)
	}
	exists, err := c.Exists(ctx, dst)
	if err != nil {
		return err
	}
	if exists {
		return nodeErr("cp", dst, ErrExists)
	}
	if err := c.RequireBranch(ctx, "cp", dst.WithoutLast()); err != nil {
		return err
	}

	now := time.Now().Unix()
	meta := *srcMeta
	meta.CTime, meta.MTime, meta.ATime = now, now, now

	if meta.Kind != KindLeaf {
		return c.createNode(ctx, "cp", dst, &meta, nil)
	}
	data, err := c.rdb.Get(ctx, c.keys.Data(src)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cp: %w", err)
	}
	return c.createNode(ctx, "cp", dst, &meta, &data)
}

// CopyRecursive copies a node and everything below it.
func (c *Client) CopyRecursive(ctx context.Context, src, dst treepath.Path) error {
	srcMeta, err := c.Stat(ctx, src)
	if err != nil {
		return err
	}
	if srcMeta == nil {
		return nodeErr("cp", src, ErrNotFound)
	}
	if dst, err = c.destination(ctx, src, dst); err != nil {
		return err
	}
	if srcMeta.IsBranch() && dst.StartsWith(src) {
		return nodeErr("cp", dst, ErrIntoSelf)
	}
	return c.copyTree(ctx, src, dst, srcMeta)
}

func (c *Client) copyTree(ctx context.Context, src, dst treepath.Path, srcMeta *Meta) error {
	if err := c.copyNode(ctx, src, dst, srcMeta); err != nil {
		return err
	}
	if !srcMeta.IsBranch() {
		return nil
	}
	children, err := c.ChildrenWithMeta(ctx, src)
	if err != nil {
		return err
	}
	for _, e := range children {
		if e.Meta == nil {
			continue
		}
		if err := c.copyTree(ctx, e.Path, child(dst, e.Name), e.Meta); err != nil {
			return err
		}
	}
	return nil
}

// Move renames a node. Descendants of a branch are rebased under dst.
func (c *Client) Move(ctx context.Context, src, dst treepath.Path) error {
	if src.IsEmpty() {
		return nodeErr("mv", src, ErrRoot)
	}
	srcMeta, err := c.Stat(ctx, src)
	if err != nil {
		return err
	}
	if srcMeta == nil {
		return nodeErr("mv", src, ErrNotFound)
	}
	if dst, err = c.destination(ctx, src, dst); err != nil {
		return err
	}
	if dst.Equal(src) {
		return nil
	}
	if dst.StartsWith(src) {
		return nodeErr("mv", dst, ErrIntoSelf)
	}
	exists, err := c.Exists(ctx, dst)
	if err != nil {
		return err
	}
	if exists {
		return nodeErr("mv", dst, ErrExists)
	}
	if err := c.RequireBranch(ctx, "mv", dst.WithoutLast()); err != nil {
		return err
	}

	type moved struct {
		from, to treepath.Path
		meta     *Meta
		hasKids  bool
	}
	var nodes []moved
	err = c.Walk(ctx, src, func(p treepath.Path, meta *Meta, children []string) error {
		rest, err := p.ElementsAfter(src)
		if err != nil {
			return err
		}
		nodes = append(nodes, moved{
			from:    p,
			to:      dst.JoinPath(treepath.FromSegments(rest)),
			meta:    meta,
			hasKids: len(children) > 0,
		})
		return nil
	})
	if err != nil {
		return err
	}

	srcParent, srcBase := split(src)
	dstParent, dstBase := split(dst)

	pipe := c.rdb.TxPipeline()
	for _, n := range nodes {
		pipe.Rename(ctx, c.keys.Meta(n.from), c.keys.Meta(n.to))
		if n.meta.Kind == KindLeaf {
			pipe.Rename(ctx, c.keys.Data(n.from), c.keys.Data(n.to))
		}
		if n.hasKids {
			pipe.Rename(ctx, c.keys.Kids(n.from), c.keys.Kids(n.to))
		}
	}
	pipe.SRem(ctx, c.keys.Kids(srcParent), srcBase)
	pipe.SAdd(ctx, c.keys.Kids(dstParent), dstBase)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mv: %w", err)
	}

	c.logger.Debug("moved node", "from", src.String(), "to", dst.String(), "nodes", len(nodes))
	for _, n := range nodes {
		c.notifyMove(ctx, n.from, n.to)
	}
	return nil
}

// Link creates a link at p pointing at target. Relative targets are
// resolved against the parent of p when followed.
func (c *Client) Link(ctx context.Context, target string, p treepath.Path) error {
	if p.IsEmpty() {
		return nodeErr("ln", p, ErrRoot)
	}
	exists, err := c.Exists(ctx, p)
	if err != nil {
		return err
	}
	if exists {
		return nodeErr("ln", p, ErrExists)
	}
	if err := c.RequireBranch(ctx, "ln", p.WithoutLast()); err != nil {
		return err
	}
	return c.createNode(ctx, "ln", p, NewLinkMeta(target), nil)
}

// ResolveLink follows links starting at p and returns the first node that
// is not a link. A missing node resolves to itself.
func (c *Client) ResolveLink(ctx context.Context, p treepath.Path) (treepath.Path, error) {
	current := p
	for depth := 0; depth < maxLinkDepth; depth++ {
		meta, err := c.Stat(ctx, current)
		if err != nil {
			return treepath.Empty, err
		}
		if meta == nil || meta.Kind != KindLink {
			return current, nil
		}
		current = Resolve(current.WithoutLast(), meta.Target)
	}
	return treepath.Empty, nodeErr("resolve", p, ErrLinkDepth)
}

// --- Observer helpers ---

func (c *Client) notifyCreate(ctx context.Context, p treepath.Path, kind Kind) {
	if c.observer != nil {
		if err := c.observer.OnCreate(ctx, p, kind); err != nil {
			c.logger.Warn("observer failed", "event", "create", "path", p.String(), "err", err)
		}
	}
}

func (c *Client) notifyRemove(ctx context.Context, p treepath.Path) {
	if c.observer != nil {
		if err := c.observer.OnRemove(ctx, p); err != nil {
			c.logger.Warn("observer failed", "event", "remove", "path", p.String(), "err", err)
		}
	}
}

func (c *Client) notifyMove(ctx context.Context, from, to treepath.Path) {
	if c.observer != nil {
		if err := c.observer.OnMove(ctx, from, to); err != nil {
			c.logger.Warn("observer failed", "event", "move", "from", from.String(), "to", to.String(), "err", err)
		}
	}
}
