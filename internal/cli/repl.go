package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rowantrollope/pathkit/internal/cmd"
	"github.com/rowantrollope/pathkit/internal/config"
	"github.com/rowantrollope/pathkit/internal/output"
)

// REPL is the interactive read-eval-print loop.
type REPL struct {
	Router    *cmd.Router
	Config    *config.Config
	Formatter *output.Formatter
}

// NewREPL creates a new REPL instance.
func NewREPL(router *cmd.Router, cfg *config.Config, formatter *output.Formatter) *REPL {
	return &REPL{
		Router:    router,
		Config:    cfg,
		Formatter: formatter,
	}
}

func (r *REPL) prompt() string {
	return BuildPrompt(r.Router.State.Volume, r.Router.State.Cwd, r.Config.ShouldColor())
}

// Run reads lines until EOF or "exit". Command errors are printed and the
// loop continues; only readline failures end it with an error.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.NewEx(r.readlineConfig())
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	for {
		rl.SetPrompt(r.prompt())

		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		if r.eval(ctx, line) {
			return nil
		}
	}
}

func (r *REPL) readlineConfig() *readline.Config {
	return &readline.Config{
		Prompt:          r.prompt(),
		HistoryFile:     r.Config.HistoryFile,
		HistoryLimit:    10000,
		AutoComplete:    NewCompleter(r.Router),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}
}

// eval runs one input line and reports whether the session should end.
func (r *REPL) eval(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return false
	case "exit", "quit":
		return true
	}
	if err := r.Router.Execute(ctx, line); err != nil {
		r.Formatter.Errorf("%s\n", err)
	}
	return false
}
