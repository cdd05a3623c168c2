package cli

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/rowantrollope/pathkit/internal/cmd"
)

// redisCommands are offered next to pathkit commands; they reach the server
// through redis-cli passthrough and are mostly useful for inspecting keys.
var redisCommands = []string{
	"DBSIZE", "DEL", "EXISTS", "GET", "HGETALL", "HGET", "INFO", "KEYS",
	"PING", "SCAN", "SCARD", "SINTER", "SMEMBERS", "TTL", "TYPE",
}

const completionTimeout = 500 * time.Millisecond

// Completer completes command names and, for tree commands, node paths.
type Completer struct {
	router *cmd.Router
}

var _ readline.AutoCompleter = (*Completer)(nil)

// NewCompleter creates a tab completer for the REPL.
func NewCompleter(router *cmd.Router) *Completer {
	return &Completer{router: router}
}

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	typed := string(line[:pos])
	words := strings.Fields(typed)
	if strings.HasSuffix(typed, " ") || len(words) == 0 {
		words = append(words, "")
	}

	current := words[len(words)-1]
	if len(words) == 1 {
		return suffixes(c.commands(current), current, " "), len(current)
	}
	if strings.HasPrefix(current, "-") || c.router.Client == nil || !c.router.NeedsRedis(words[:1]) {
		return nil, 0
	}
	return c.paths(current), len(current)
}

func (c *Completer) commands(prefix string) []string {
	var names []string
	for _, name := range c.router.CommandNames() {
		if strings.HasPrefix(name, strings.ToLower(prefix)) {
			names = append(names, name)
		}
	}
	for _, name := range redisCommands {
		if strings.HasPrefix(name, strings.ToUpper(prefix)) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// paths lists children of the branch named by everything up to the last
// slash of partial, keeping those that extend the rest.
func (c *Completer) paths(partial string) [][]rune {
	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	branch, stem := c.router.State.Cwd, partial
	if i := strings.LastIndexByte(partial, '/'); i >= 0 {
		branch, stem = c.router.ResolvePath(partial[:i+1]), partial[i+1:]
	}

	children, err := c.router.Client.ChildrenWithMeta(ctx, branch)
	if err != nil {
		return nil
	}

	var out [][]rune
	for _, child := range children {
		if !strings.HasPrefix(child.Name, stem) {
			continue
		}
		end := " "
		if child.Meta != nil && child.Meta.IsBranch() {
			end = "/"
		}
		out = append(out, []rune(child.Name[len(stem):]+end))
	}
	return out
}

func suffixes(words []string, prefix, end string) [][]rune {
	out := make([][]rune, len(words))
	for i, w := range words {
		out[i] = []rune(w[len(prefix):] + end)
	}
	return out
}
