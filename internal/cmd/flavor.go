package cmd

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rowantrollope/pathkit/internal/tree"
	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// flavors maps the names accepted by --flavor to path types.
var flavors = map[string]reflect.Type{
	"path": treepath.TypeOf[treepath.Path](),
	"url":  treepath.TypeOf[treepath.URL](),
	"key":  treepath.TypeOf[tree.Key](),
}

func flavorNames() []string {
	names := make([]string, 0, len(flavors))
	for name := range flavors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// construct builds the result of an algebra command in the active flavor.
func (r *Router) construct(p treepath.Path) (treepath.Segmenter, error) {
	t, ok := flavors[r.State.Flavor]
	if !ok {
		return nil, fmt.Errorf("unknown flavor %q (use %s)", r.State.Flavor, strings.Join(flavorNames(), ", "))
	}
	return treepath.Construct(t, p.Segments())
}

// parse reads a path argument. In the key flavor, Redis key names are
// accepted as well.
func (r *Router) parse(arg string) treepath.Path {
	if r.State.Flavor == "key" {
		if k, err := tree.ParseKey(arg); err == nil {
			return k.Path
		}
	}
	return treepath.From(arg)
}

func (r *Router) handleFlavor(ctx context.Context, args []string) error {
	if len(args) == 0 {
		if r.Formatter.JSON {
			return r.Formatter.PrintJSON(map[string]interface{}{
				"flavor":    r.State.Flavor,
				"available": flavorNames(),
			})
		}
		for _, name := range flavorNames() {
			marker := "  "
			if name == r.State.Flavor {
				marker = "* "
			}
			r.Formatter.Printf("%s%s (%s)\n", marker, name, flavors[name])
		}
		return nil
	}

	name := strings.ToLower(args[0])
	t, ok := flavors[name]
	if !ok {
		return fmt.Errorf("flavor: unknown flavor %q (use %s)", name, strings.Join(flavorNames(), ", "))
	}
	if _, err := treepath.ConstructorFor(t); err != nil {
		return fmt.Errorf("flavor: %w", err)
	}
	r.State.Flavor = name
	return nil
}
