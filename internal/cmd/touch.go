package cmd

import (
	"context"
	"fmt"
)

func (r *Router) handleTouch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("touch: missing operand")
	}
	for _, arg := range args {
		if err := r.Client.Touch(ctx, r.ResolvePath(arg)); err != nil {
			return err
		}
	}
	return nil
}
