package tree

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewClient(rdb, "main")
	require.NoError(t, c.Init(context.Background()))
	return c, mr
}

func p(s string) treepath.Path {
	return treepath.From(s)
}

type event struct {
	op       string
	from, to string
}

type recorder struct {
	events []event
}

func (r *recorder) OnCreate(_ context.Context, p treepath.Path, _ Kind) error {
	r.events = append(r.events, event{op: "create", to: p.String()})
	return nil
}

func (r *recorder) OnRemove(_ context.Context, p treepath.Path) error {
	r.events = append(r.events, event{op: "remove", from: p.String()})
	return nil
}

func (r *recorder) OnMove(_ context.Context, from, to treepath.Path) error {
	r.events = append(r.events, event{op: "move", from: from.String(), to: to.String()})
	return nil
}

func TestInitIsIdempotent(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Init(ctx))
	assert.Equal(t, "branch", mr.HGet("pk:main:meta:/", "kind"))

	isBranch, err := c.IsBranch(ctx, treepath.Empty)
	require.NoError(t, err)
	assert.True(t, isBranch)
}

func TestMakeBranch(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.MakeBranch(ctx, p("a"), false))
	require.ErrorIs(t, c.MakeBranch(ctx, p("a"), false), ErrExists)
	require.ErrorIs(t, c.MakeBranch(ctx, p("x/y"), false), ErrNotFound)

	require.NoError(t, c.MakeBranch(ctx, p("a/b/c"), true))
	require.NoError(t, c.MakeBranch(ctx, p("a/b/c"), true))

	children, err := c.Children(ctx, p("a/b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, children)
	assert.True(t, mr.Exists("pk:main:meta:/a/b/c"))

	require.NoError(t, c.Put(ctx, p("a/leaf"), "v"))
	require.ErrorIs(t, c.MakeBranch(ctx, p("a/leaf/x"), true), ErrNotBranch)
}

func TestPutGetAppend(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.MakeBranch(ctx, p("configs"), false))
	require.NoError(t, c.Put(ctx, p("configs/app.conf"), "port=80"))
	assert.Equal(t, "port=80", mustGet(t, mr, "pk:main:data:/configs/app.conf"))
	assert.Equal(t, "7", mr.HGet("pk:main:meta:/configs/app.conf", "size"))

	got, err := c.Get(ctx, p("configs/app.conf"))
	require.NoError(t, err)
	assert.Equal(t, "port=80", got)

	require.NoError(t, c.Append(ctx, p("configs/app.conf"), "\nhost=h"))
	got, err = c.Get(ctx, p("configs/app.conf"))
	require.NoError(t, err)
	assert.Equal(t, "port=80\nhost=h", got)

	meta, err := c.Stat(ctx, p("configs/app.conf"))
	require.NoError(t, err)
	assert.Equal(t, KindLeaf, meta.Kind)
	assert.Equal(t, int64(len("port=80\nhost=h")), meta.Size)

	require.NoError(t, c.Append(ctx, p("configs/new"), "x"))
	got, err = c.Get(ctx, p("configs/new"))
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	_, err = c.Get(ctx, p("configs"))
	require.ErrorIs(t, err, ErrIsBranch)
	_, err = c.Get(ctx, p("missing"))
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, c.Put(ctx, p("configs"), "x"), ErrIsBranch)
	require.ErrorIs(t, c.Put(ctx, p("nope/x"), "x"), ErrNotFound)
	require.ErrorIs(t, c.Put(ctx, treepath.Empty, "x"), ErrIsBranch)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestTouch(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Touch(ctx, p("empty")))
	got, err := c.Get(ctx, p("empty"))
	require.NoError(t, err)
	assert.Equal(t, "", got)

	require.NoError(t, c.Touch(ctx, p("empty")))
	require.ErrorIs(t, c.Touch(ctx, p("no/such")), ErrNotFound)
}

func TestRemove(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.MakeBranch(ctx, p("a/b"), true))
	require.NoError(t, c.Put(ctx, p("a/b/leaf"), "v"))

	require.ErrorIs(t, c.Remove(ctx, p("a")), ErrIsBranch)
	require.ErrorIs(t, c.RemoveBranch(ctx, p("a")), ErrNotEmpty)
	require.ErrorIs(t, c.RemoveBranch(ctx, p("a/b/leaf")), ErrNotBranch)
	require.ErrorIs(t, c.Remove(ctx, treepath.Empty), ErrRoot)
	require.ErrorIs(t, c.RemoveRecursive(ctx, treepath.Empty), ErrRoot)
	require.ErrorIs(t, c.Remove(ctx, p("zz")), ErrNotFound)

	require.NoError(t, c.Remove(ctx, p("a/b/leaf")))
	assert.False(t, mr.Exists("pk:main:data:/a/b/leaf"))
	require.NoError(t, c.RemoveBranch(ctx, p("a/b")))

	require.NoError(t, c.MakeBranch(ctx, p("a/x/y"), true))
	require.NoError(t, c.Put(ctx, p("a/x/y/z"), "v"))
	require.NoError(t, c.RemoveRecursive(ctx, p("a")))

	children, err := c.Children(ctx, treepath.Empty)
	require.NoError(t, err)
	assert.Empty(t, children)
	assert.Equal(t, []string{"pk:main:meta:/"}, mr.Keys())
}

func TestCopy(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.MakeBranch(ctx, p("src/sub"), true))
	require.NoError(t, c.Put(ctx, p("src/sub/f"), "data"))
	require.NoError(t, c.Link(ctx, "sub/f", p("src/ln")))
	require.NoError(t, c.MakeBranch(ctx, p("dst"), false))

	require.ErrorIs(t, c.Copy(ctx, p("src"), p("dst")), ErrIsBranch)
	require.NoError(t, c.Copy(ctx, p("src/sub/f"), p("dst")))
	got, err := c.Get(ctx, p("dst/f"))
	require.NoError(t, err)
	assert.Equal(t, "data", got)
	require.ErrorIs(t, c.Copy(ctx, p("src/sub/f"), p("dst/f")), ErrExists)

	require.NoError(t, c.CopyRecursive(ctx, p("src"), p("dst")))
	got, err = c.Get(ctx, p("dst/src/sub/f"))
	require.NoError(t, err)
	assert.Equal(t, "data", got)
	got, err = c.Get(ctx, p("dst/src/ln"))
	require.NoError(t, err)
	assert.Equal(t, "data", got)

	require.ErrorIs(t, c.CopyRecursive(ctx, p("src"), p("src/sub")), ErrIntoSelf)
}

func TestMoveRebasesDescendants(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()
	rec := &recorder{}

	require.NoError(t, c.MakeBranch(ctx, p("a/b/c"), true))
	require.NoError(t, c.Put(ctx, p("a/b/c/leaf"), "v"))
	require.NoError(t, c.MakeBranch(ctx, p("a/empty"), false))
	require.NoError(t, c.MakeBranch(ctx, p("z"), false))
	c.SetObserver(rec)

	require.NoError(t, c.Move(ctx, p("a"), p("z/moved")))

	got, err := c.Get(ctx, p("z/moved/b/c/leaf"))
	require.NoError(t, err)
	assert.Equal(t, "v", got)
	assert.False(t, mr.Exists("pk:main:meta:/a"))
	assert.False(t, mr.Exists("pk:main:kids:/a/b"))
	assert.True(t, mr.Exists("pk:main:meta:/z/moved/empty"))

	root, err := c.Children(ctx, treepath.Empty)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, root)

	assert.Equal(t, []event{
		{op: "move", from: "/a", to: "/z/moved"},
		{op: "move", from: "/a/b", to: "/z/moved/b"},
		{op: "move", from: "/a/b/c", to: "/z/moved/b/c"},
		{op: "move", from: "/a/b/c/leaf", to: "/z/moved/b/c/leaf"},
		{op: "move", from: "/a/empty", to: "/z/moved/empty"},
	}, rec.events)
}

func TestMoveErrors(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.MakeBranch(ctx, p("a/b"), true))
	require.NoError(t, c.Put(ctx, p("f"), "1"))
	require.NoError(t, c.Put(ctx, p("g"), "2"))

	require.ErrorIs(t, c.Move(ctx, p("a"), p("a/b")), ErrIntoSelf)
	require.ErrorIs(t, c.Move(ctx, p("f"), p("g")), ErrExists)
	require.ErrorIs(t, c.Move(ctx, p("nope"), p("x")), ErrNotFound)
	require.ErrorIs(t, c.Move(ctx, treepath.Empty, p("x")), ErrRoot)
	require.ErrorIs(t, c.Move(ctx, p("f"), p("q/r")), ErrNotFound)

	// Moving into an existing branch keeps the base name.
	require.NoError(t, c.Move(ctx, p("f"), p("a")))
	got, err := c.Get(ctx, p("a/f"))
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestLinks(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.MakeBranch(ctx, p("etc"), false))
	require.NoError(t, c.Put(ctx, p("etc/real"), "value"))
	require.NoError(t, c.Link(ctx, "real", p("etc/rel")))
	require.NoError(t, c.Link(ctx, "/etc/rel", p("abs")))
	require.ErrorIs(t, c.Link(ctx, "x", p("abs")), ErrExists)

	target, err := c.ResolveLink(ctx, p("abs"))
	require.NoError(t, err)
	assert.Equal(t, "/etc/real", target.String())

	got, err := c.Get(ctx, p("abs"))
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	require.NoError(t, c.Put(ctx, p("etc/rel"), "through"))
	got, err = c.Get(ctx, p("etc/real"))
	require.NoError(t, err)
	assert.Equal(t, "through", got)

	require.NoError(t, c.Link(ctx, "loop2", p("loop1")))
	require.NoError(t, c.Link(ctx, "loop1", p("loop2")))
	_, err = c.Get(ctx, p("loop1"))
	require.ErrorIs(t, err, ErrLinkDepth)

	require.NoError(t, c.Link(ctx, "gone", p("dangling")))
	_, err = c.Get(ctx, p("dangling"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestObserverNotifications(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	rec := &recorder{}
	c.SetObserver(rec)

	require.NoError(t, c.MakeBranch(ctx, p("a"), false))
	require.NoError(t, c.Put(ctx, p("a/x"), "1"))
	require.NoError(t, c.Put(ctx, p("a/x"), "2"))
	require.NoError(t, c.RemoveRecursive(ctx, p("a")))

	assert.Equal(t, []event{
		{op: "create", to: "/a"},
		{op: "create", to: "/a/x"},
		{op: "remove", from: "/a/x"},
		{op: "remove", from: "/a"},
	}, rec.events)
}

func TestVolumes(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.ErrorIs(t, c.SetVolume("bad:name"), ErrInvalidVolume)
	require.NoError(t, c.SetVolume("other"))
	require.NoError(t, c.Init(ctx))
	require.NoError(t, c.MakeBranch(ctx, p("x"), false))

	volumes, err := c.ListVolumes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "other"}, volumes)
}

func TestQuerySegmentKeepsOwnKeys(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	nested := Resolve(treepath.Empty, "/a/?x")
	flat := Resolve(treepath.Empty, "/a?x")
	require.Equal(t, []string{"a", "?x"}, nested.Segments())
	require.Equal(t, []string{"a?x"}, flat.Segments())

	require.NoError(t, c.MakeBranch(ctx, nested, true))
	require.NoError(t, c.Put(ctx, flat, "hello"))

	assert.True(t, mr.Exists("pk:main:meta:/a/?x"))
	assert.True(t, mr.Exists("pk:main:meta:/a?x"))

	isBranch, err := c.IsBranch(ctx, nested)
	require.NoError(t, err)
	assert.True(t, isBranch)

	got, err := c.Get(ctx, flat)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	kids, err := c.Children(ctx, treepath.Empty)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a?x"}, kids)
}
