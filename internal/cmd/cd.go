package cmd

import (
	"context"
	"fmt"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

func (r *Router) handleCd(ctx context.Context, args []string) error {
	target := treepath.Empty
	switch {
	case len(args) == 0:
	case args[0] == "-":
		if r.State.PrevDir == nil {
			return fmt.Errorf("cd: OLDPWD not set")
		}
		target = *r.State.PrevDir
	default:
		target = r.ResolvePath(args[0])
	}

	if err := r.Client.RequireBranch(ctx, "cd", target); err != nil {
		return err
	}
	r.chdir(target)
	return nil
}

func (r *Router) handlePwd(ctx context.Context, args []string) error {
	r.Formatter.PrintValue(r.State.Cwd.String())
	return nil
}
