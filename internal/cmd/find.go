package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rowantrollope/pathkit/internal/tree"
)

// find takes POSIX-style single-dash predicates, which pflag cannot parse.
var findPredicates = map[string]func(q *tree.Query, operand string) error{
	"-name": func(q *tree.Query, v string) error {
		q.Name = v
		return nil
	},
	"-type": func(q *tree.Query, v string) error {
		kind, err := tree.ParseKind(v)
		q.Kind = kind
		return err
	},
	"-has": func(q *tree.Query, v string) error {
		q.Elements = append(q.Elements, v)
		return nil
	},
}

func parseFindArgs(args []string) (root string, q tree.Query, err error) {
	root = "."
	var rootSet bool
	for i := 0; i < len(args); i++ {
		arg := args[i]
		apply, ok := findPredicates[arg]
		switch {
		case ok:
			if i+1 == len(args) {
				return "", q, fmt.Errorf("find: %s requires an argument", arg)
			}
			i++
			if err := apply(&q, args[i]); err != nil {
				return "", q, fmt.Errorf("find: %w", err)
			}
		case strings.HasPrefix(arg, "-") || rootSet:
			return "", q, fmt.Errorf("find: unknown option: %s", arg)
		default:
			root, rootSet = arg, true
		}
	}
	return root, q, nil
}

func (r *Router) handleFind(ctx context.Context, args []string) error {
	root, q, err := parseFindArgs(args)
	if err != nil {
		return err
	}

	entries, err := r.Client.Find(ctx, r.ResolvePath(root), q)
	if err != nil {
		return err
	}

	if r.Formatter.JSON {
		type hit struct {
			Path string    `json:"path"`
			Kind tree.Kind `json:"kind"`
		}
		hits := make([]hit, len(entries))
		for i, e := range entries {
			hits[i] = hit{Path: e.Path.String(), Kind: e.Meta.Kind}
		}
		return r.Formatter.PrintJSON(hits)
	}

	for _, e := range entries {
		fmt.Fprintln(r.Formatter.Writer, e.Path)
	}
	return nil
}
