package cmd

import (
	"context"
	"fmt"
	"strings"
)

func (r *Router) handleCat(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("cat: missing operand")
	}

	for _, arg := range args {
		path := r.ResolvePath(arg)
		content, err := r.Client.Get(ctx, path)
		if err != nil {
			return err
		}
		if r.Formatter.JSON {
			if err := r.Formatter.PrintJSON(map[string]string{"path": path.String(), "value": content}); err != nil {
				return err
			}
			continue
		}
		r.Formatter.Printf("%s", content)
		if content != "" && !strings.HasSuffix(content, "\n") {
			r.Formatter.Println()
		}
	}
	return nil
}
