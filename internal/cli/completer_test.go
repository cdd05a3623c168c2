package cli

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowantrollope/pathkit/internal/cmd"
	"github.com/rowantrollope/pathkit/internal/config"
	"github.com/rowantrollope/pathkit/internal/output"
	"github.com/rowantrollope/pathkit/internal/tree"
	"github.com/rowantrollope/pathkit/pkg/treepath"
)

func runes(items [][]rune) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = string(r)
	}
	return out
}

func TestCompleteCommand(t *testing.T) {
	router := cmd.NewRouter(nil, config.DefaultConfig(), output.NewFormatter(false, false))
	c := NewCompleter(router)

	got, n := c.Do([]rune("jo"), 2)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"in ", "inf "}, runes(got))

	got, _ = c.Do([]rune("sint"), 4)
	assert.Equal(t, []string{"ER "}, runes(got))

	// Without a connection there is nothing to complete paths against.
	got, _ = c.Do([]rune("ls a"), 4)
	assert.Empty(t, got)
}

func TestCompletePath(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	client := tree.NewClient(rdb, "main")
	require.NoError(t, client.Init(ctx))
	require.NoError(t, client.MakeBranch(ctx, treepath.From("configs/prod"), true))
	require.NoError(t, client.Put(ctx, treepath.From("configs/common.yaml"), "x"))

	router := cmd.NewRouter(client, config.DefaultConfig(), output.NewFormatter(false, false))
	c := NewCompleter(router)

	got, n := c.Do([]rune("ls con"), 6)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"figs/"}, runes(got))

	got, n = c.Do([]rune("cat configs/"), 12)
	assert.Equal(t, 8, n)
	assert.Equal(t, []string{"common.yaml ", "prod/"}, runes(got))

	// Algebra arguments are not tree paths.
	got, _ = c.Do([]rune("join con"), 8)
	assert.Empty(t, got)
}
