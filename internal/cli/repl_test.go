package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rowantrollope/pathkit/internal/cmd"
	"github.com/rowantrollope/pathkit/internal/config"
	"github.com/rowantrollope/pathkit/internal/output"
)

func TestREPLEval(t *testing.T) {
	var out, errOut bytes.Buffer
	formatter := output.NewFormatter(false, false)
	formatter.Writer = &out
	formatter.ErrWriter = &errOut

	cfg := config.DefaultConfig()
	repl := NewREPL(cmd.NewRouter(nil, cfg, formatter), cfg, formatter)
	ctx := context.Background()

	assert.False(t, repl.eval(ctx, "   "))
	assert.False(t, repl.eval(ctx, "join a b/c"))
	assert.Equal(t, "/a/b/c\n", out.String())

	assert.False(t, repl.eval(ctx, "ls"))
	assert.NotEmpty(t, errOut.String())

	assert.True(t, repl.eval(ctx, "exit"))
	assert.True(t, repl.eval(ctx, " QUIT "))
}
