package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// handlePassthrough executes a command via redis-cli subprocess.
func (r *Router) handlePassthrough(ctx context.Context, tokens []string) error {
	redisCLI, err := exec.LookPath("redis-cli")
	if err != nil {
		return fmt.Errorf("unknown command %q and redis-cli not found on PATH", tokens[0])
	}

	args := append(r.Config.Conn.CLIArgs(), tokens...)
	r.Logger.Debug("passthrough", "cmd", tokens[0])

	cmd := exec.CommandContext(ctx, redisCLI, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Formatter.Writer
	cmd.Stderr = r.Formatter.ErrWriter

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("redis-cli exited with code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("redis-cli: %w", err)
	}
	return nil
}
