package cmd

import (
	"context"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/rowantrollope/pathkit/pkg/strtemplate"
	"github.com/rowantrollope/pathkit/pkg/treepath"
)

func (r *Router) algebraHandlers() map[string]Handler {
	return map[string]Handler{
		"norm":        r.handleNorm,
		"join":        r.handleJoin,
		"prepend":     r.handlePrepend,
		"trim":        r.handleTrim,
		"joinf":       r.handleJoinf,
		"prependf":    r.handlePrependf,
		"first":       r.handleFirst,
		"last":        r.handleLast,
		"at":          r.handleAt,
		"head":        r.handleHead,
		"from":        r.handleFrom,
		"parent":      r.handleParent,
		"after":       r.handleAfter,
		"startswith":  r.handleStartsWith,
		"endswith":    r.handleEndsWith,
		"contains":    r.handleContains,
		"containsall": r.handleContainsAll,
		"indexof":     r.handleIndexOf,
		"render":      r.handleRender,
		"eq":          r.handleEq,
	}
}

func need(cmd string, args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("%s: usage: %s %s", cmd, cmd, usage)
	}
	return nil
}

func (r *Router) printPath(p treepath.Path) error {
	v, err := r.construct(p)
	if err != nil {
		return err
	}
	r.Formatter.PrintPath(v)
	return nil
}

func (r *Router) handleNorm(ctx context.Context, args []string) error {
	segments, err := treepath.Normalize(args)
	if err != nil {
		return fmt.Errorf("norm: %w", err)
	}
	r.Formatter.PrintStrings(segments)
	return nil
}

func (r *Router) handleJoin(ctx context.Context, args []string) error {
	if err := need("join", args, 1, "<path> [element...]"); err != nil {
		return err
	}
	return r.printPath(r.parse(args[0]).JoinedWith(args[1:]...))
}

func (r *Router) handlePrepend(ctx context.Context, args []string) error {
	if err := need("prepend", args, 1, "<path> [element...]"); err != nil {
		return err
	}
	return r.printPath(r.parse(args[0]).PrependedWith(args[1:]...))
}

func (r *Router) handleTrim(ctx context.Context, args []string) error {
	if err := need("trim", args, 1, "<path>"); err != nil {
		return err
	}
	return r.printPath(r.parse(args[0]).WithoutLast())
}

// templateArgs splits "<path> <template> [value...]" and requires one value
// per placeholder.
func templateArgs(cmd string, args []string) (string, []any, error) {
	if err := need(cmd, args, 2, "<path> <template> [value...]"); err != nil {
		return "", nil, err
	}
	template, values := args[1], args[2:]
	if n := strtemplate.Count(template); n != len(values) {
		return "", nil, fmt.Errorf("%s: template %q has %d placeholders, got %d values", cmd, template, n, len(values))
	}
	vars := make([]any, len(values))
	for i, v := range values {
		vars[i] = v
	}
	return template, vars, nil
}

func (r *Router) handleJoinf(ctx context.Context, args []string) error {
	template, vars, err := templateArgs("joinf", args)
	if err != nil {
		return err
	}
	return r.printPath(r.parse(args[0]).JoinCustomized(template, vars...))
}

func (r *Router) handlePrependf(ctx context.Context, args []string) error {
	template, vars, err := templateArgs("prependf", args)
	if err != nil {
		return err
	}
	return r.printPath(r.parse(args[0]).PrependCustomized(template, vars...))
}

func (r *Router) printElement(cmd string, el string, ok bool) error {
	if !ok {
		return fmt.Errorf("%s: no such element", cmd)
	}
	r.Formatter.PrintValue(el)
	return nil
}

func (r *Router) handleFirst(ctx context.Context, args []string) error {
	if err := need("first", args, 1, "<path>"); err != nil {
		return err
	}
	el, ok := r.parse(args[0]).First()
	return r.printElement("first", el, ok)
}

func (r *Router) handleLast(ctx context.Context, args []string) error {
	if err := need("last", args, 1, "<path>"); err != nil {
		return err
	}
	el, ok := r.parse(args[0]).Last()
	return r.printElement("last", el, ok)
}

func atoi(cmd, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", cmd, s)
	}
	return n, nil
}

func (r *Router) handleAt(ctx context.Context, args []string) error {
	if err := need("at", args, 2, "<path> <pos>"); err != nil {
		return err
	}
	pos, err := atoi("at", args[1])
	if err != nil {
		return err
	}
	el, ok := r.parse(args[0]).At(pos)
	return r.printElement("at", el, ok)
}

func (r *Router) handleHead(ctx context.Context, args []string) error {
	if err := need("head", args, 2, "<path> <n>"); err != nil {
		return err
	}
	n, err := atoi("head", args[1])
	if err != nil {
		return err
	}
	r.Formatter.PrintStrings(r.parse(args[0]).FirstN(n))
	return nil
}

func (r *Router) handleFrom(ctx context.Context, args []string) error {
	if err := need("from", args, 2, "<path> <pos>"); err != nil {
		return err
	}
	pos, err := atoi("from", args[1])
	if err != nil {
		return err
	}
	r.Formatter.PrintStrings(r.parse(args[0]).ElementsFrom(pos))
	return nil
}

func (r *Router) handleParent(ctx context.Context, args []string) error {
	if err := need("parent", args, 1, "<path>"); err != nil {
		return err
	}
	return r.printPath(treepath.FromSegments(r.parse(args[0]).ExceptLast()))
}

func (r *Router) handleAfter(ctx context.Context, args []string) error {
	if err := need("after", args, 2, "<path> <prefix>"); err != nil {
		return err
	}
	rest, err := r.parse(args[0]).ElementsAfter(r.parse(args[1]))
	if err != nil {
		return fmt.Errorf("after: %w", err)
	}
	r.Formatter.PrintStrings(rest)
	return nil
}

func (r *Router) handleStartsWith(ctx context.Context, args []string) error {
	if err := need("startswith", args, 2, "<path> <prefix>"); err != nil {
		return err
	}
	r.Formatter.PrintValue(r.parse(args[0]).StartsWith(r.parse(args[1])))
	return nil
}

func (r *Router) handleEndsWith(ctx context.Context, args []string) error {
	if err := need("endswith", args, 2, "<path> <suffix>"); err != nil {
		return err
	}
	r.Formatter.PrintValue(r.parse(args[0]).EndsWith(r.parse(args[1])))
	return nil
}

func (r *Router) handleContains(ctx context.Context, args []string) error {
	if err := need("contains", args, 2, "<path> <element>"); err != nil {
		return err
	}
	r.Formatter.PrintValue(r.parse(args[0]).Contains(args[1]))
	return nil
}

func (r *Router) handleContainsAll(ctx context.Context, args []string) error {
	if err := need("containsall", args, 1, "<path> [element...]"); err != nil {
		return err
	}
	r.Formatter.PrintValue(r.parse(args[0]).ContainsAll(args[1:]...))
	return nil
}

func (r *Router) handleIndexOf(ctx context.Context, args []string) error {
	if err := need("indexof", args, 2, "<path> <element>"); err != nil {
		return err
	}
	r.Formatter.PrintValue(r.parse(args[0]).IndexOf(args[1]))
	return nil
}

func (r *Router) handleRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(r.Formatter.ErrWriter)
	asYAML := fs.BoolP("yaml", "y", false, "Print as YAML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("render: usage: render [--yaml] <path>")
	}
	v, err := r.construct(r.parse(fs.Arg(0)))
	if err != nil {
		return err
	}
	r.Formatter.PrintRendering(v, *asYAML)
	return nil
}

func (r *Router) handleEq(ctx context.Context, args []string) error {
	if err := need("eq", args, 2, "<path> <path>"); err != nil {
		return err
	}
	r.Formatter.PrintValue(r.parse(args[0]).Equal(r.parse(args[1])))
	return nil
}
