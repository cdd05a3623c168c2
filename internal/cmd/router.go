package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/rowantrollope/pathkit/internal/config"
	"github.com/rowantrollope/pathkit/internal/index"
	"github.com/rowantrollope/pathkit/internal/output"
	"github.com/rowantrollope/pathkit/internal/tree"
	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// ErrNoConnection is returned by tree commands when the router has no client.
var ErrNoConnection = errors.New("not connected to Redis")

// State holds the current session state.
type State struct {
	Cwd     treepath.Path
	PrevDir *treepath.Path
	Volume  string
	Flavor  string
}

// Router dispatches commands to the appropriate handler.
type Router struct {
	Client    *tree.Client
	Indexer   *index.Indexer
	Config    *config.Config
	Formatter *output.Formatter
	Logger    *log.Logger
	State     *State
	handlers  map[string]Handler
}

// Handler is a function that handles a command.
type Handler func(ctx context.Context, args []string) error

// NewRouter creates a command router with all registered handlers. client
// may be nil, in which case only the path algebra commands work.
func NewRouter(client *tree.Client, cfg *config.Config, formatter *output.Formatter) *Router {
	r := &Router{
		Client:    client,
		Config:    cfg,
		Formatter: formatter,
		Logger:    log.New(io.Discard),
		State: &State{
			Cwd:    treepath.Empty,
			Volume: cfg.Volume,
			Flavor: "path",
		},
		handlers: make(map[string]Handler),
	}
	if cfg.Flavor != "" {
		r.State.Flavor = strings.ToLower(cfg.Flavor)
	}
	r.registerHandlers()
	return r
}

func (r *Router) registerHandlers() {
	for name, h := range r.algebraHandlers() {
		r.handlers[name] = h
	}
	r.handlers["flavor"] = r.handleFlavor

	r.handlers["ls"] = r.connected(r.handleLs)
	r.handlers["pwd"] = r.handlePwd
	r.handlers["cd"] = r.connected(r.handleCd)
	r.handlers["mkdir"] = r.connected(r.handleMkdir)
	r.handlers["rmdir"] = r.connected(r.handleRmdir)
	r.handlers["touch"] = r.connected(r.handleTouch)
	r.handlers["cat"] = r.connected(r.handleCat)
	r.handlers["echo"] = r.handleEcho
	r.handlers["rm"] = r.connected(r.handleRm)
	r.handlers["cp"] = r.connected(r.handleCp)
	r.handlers["mv"] = r.connected(r.handleMv)
	r.handlers["ln"] = r.connected(r.handleLn)
	r.handlers["stat"] = r.connected(r.handleStat)
	r.handlers["find"] = r.connected(r.handleFind)
	r.handlers["tree"] = r.connected(r.handleTree)
	r.handlers["vol"] = r.connected(r.handleVol)
	r.handlers["init"] = r.connected(r.handleInit)
	r.handlers["index"] = r.connected(r.handleIndex)
	r.handlers["lookup"] = r.connected(r.handleLookup)
	r.handlers["help"] = r.handleHelp
	r.handlers["clear"] = r.handleClear
}

// connected wraps a handler that needs the tree client.
func (r *Router) connected(h Handler) Handler {
	return func(ctx context.Context, args []string) error {
		if r.Client == nil {
			return ErrNoConnection
		}
		return h(ctx, args)
	}
}

// SetLogger replaces the logger used for debug output.
func (r *Router) SetLogger(logger *log.Logger) {
	if logger != nil {
		r.Logger = logger
	}
}

// Execute runs a parsed command line.
func (r *Router) Execute(ctx context.Context, line string) error {
	tokens, redirect, err := Tokenize(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]
	r.Logger.Debug("execute", "cmd", cmd, "args", len(args))

	if redirect != nil {
		if cmd != "echo" {
			return fmt.Errorf("redirect not supported for command: %s", cmd)
		}
		if r.Client == nil {
			return ErrNoConnection
		}
		return r.handleEchoRedirect(ctx, args, redirect)
	}

	if handler, ok := r.handlers[cmd]; ok {
		return handler(ctx, args)
	}

	return r.handlePassthrough(ctx, tokens)
}

// IsBuiltin returns true if the command is a built-in command.
func (r *Router) IsBuiltin(cmd string) bool {
	_, ok := r.handlers[strings.ToLower(cmd)]
	return ok
}

// NeedsRedis reports whether the command line needs a Redis connection.
// Path algebra commands and help run offline.
func (r *Router) NeedsRedis(args []string) bool {
	if len(args) == 0 {
		return true
	}
	cmd := strings.ToLower(args[0])
	if _, ok := r.algebraHandlers()[cmd]; ok {
		return false
	}
	switch cmd {
	case "flavor", "help", "pwd", "clear":
		return false
	}
	return true
}

// CommandNames returns all registered command names, sorted.
func (r *Router) CommandNames() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvePath resolves a node path relative to cwd.
func (r *Router) ResolvePath(input string) treepath.Path {
	return tree.Resolve(r.State.Cwd, input)
}

// chdir moves the session to p, remembering the previous directory.
func (r *Router) chdir(p treepath.Path) {
	prev := r.State.Cwd
	r.State.PrevDir = &prev
	r.State.Cwd = p
}
