package cmd

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/rowantrollope/pathkit/internal/index"
	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// indexer returns the router's indexer, creating a detached one when the
// segment index is not maintained on writes.
func (r *Router) indexer() *index.Indexer {
	if r.Indexer != nil {
		return r.Indexer
	}
	idx := index.NewIndexer(r.Client.Redis(), r.State.Volume)
	idx.SetLogger(r.Logger)
	return idx
}

func (r *Router) handleIndex(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("index: usage: index <status|rebuild|drop>")
	}

	switch args[0] {
	case "status":
		return r.indexStatus(ctx)
	case "rebuild":
		return r.indexRebuild(ctx, args[1:])
	case "drop":
		if err := r.indexer().Drop(ctx); err != nil {
			return err
		}
		r.Formatter.Printf("Dropped segment index of volume '%s'\n", r.State.Volume)
		return nil
	default:
		return fmt.Errorf("index: unknown subcommand '%s' (use status, rebuild or drop)", args[0])
	}
}

func (r *Router) indexStatus(ctx context.Context) error {
	st, err := r.indexer().Stats(ctx)
	if err != nil {
		return err
	}
	if r.Formatter.JSON {
		return r.Formatter.PrintJSON(map[string]interface{}{
			"volume":     r.State.Volume,
			"maintained": r.Indexer != nil,
			"paths":      st.Paths,
			"segments":   st.Segments,
		})
	}

	maintained := "no"
	if r.Indexer != nil {
		maintained = "yes"
	}
	r.Formatter.Printf("Maintained on writes: %s\n", maintained)
	r.Formatter.Printf("Indexed paths: %d\n", st.Paths)
	r.Formatter.Printf("Distinct segments: %d\n", st.Segments)
	if st.Paths == 0 {
		r.Formatter.Printf("Run 'index rebuild' to populate the index.\n")
	}
	return nil
}

func (r *Router) indexRebuild(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("index rebuild", flag.ContinueOnError)
	fs.SetOutput(r.Formatter.ErrWriter)
	keep := fs.Bool("keep", false, "Keep existing entries instead of dropping them first")
	verbose := fs.BoolP("verbose", "v", false, "Print every indexed path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	root := treepath.Empty
	if fs.NArg() > 0 {
		root = r.ResolvePath(fs.Arg(0))
	}

	opts := index.RebuildOptions{Drop: !*keep && root.IsEmpty(), Root: root}
	if *verbose {
		opts.Progress = func(_ int, p treepath.Path) {
			r.Formatter.Println(p)
		}
	}

	n, err := index.Rebuild(ctx, r.Client, r.indexer(), opts)
	if err != nil {
		return err
	}
	r.Formatter.Printf("Indexed %d paths\n", n)
	return nil
}

func (r *Router) handleLookup(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("lookup: usage: lookup <element> [element...]")
	}

	paths, err := r.indexer().Lookup(ctx, args...)
	if err != nil {
		return err
	}

	items := make([]string, len(paths))
	for i, p := range paths {
		items[i] = p.String()
	}
	r.Formatter.PrintStrings(items)
	return nil
}
