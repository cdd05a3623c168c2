package cmd

import (
	"context"
	"fmt"
)

var commandHelp = map[string]string{
	"norm":        "norm input...                  Normalize input into segments",
	"join":        "join path element...           Append elements",
	"prepend":     "prepend path element...        Prepend elements",
	"trim":        "trim path                      Drop the last segment",
	"joinf":       "joinf path template value...   Append a {} template",
	"prependf":    "prependf path template value... Prepend a {} template",
	"first":       "first path                     First segment",
	"last":        "last path                      Last segment",
	"at":          "at path pos                    Segment at position",
	"head":        "head path n                    First n segments",
	"from":        "from path pos                  Segments from position",
	"parent":      "parent path                    All but the last segment",
	"after":       "after path prefix              Segments after a prefix",
	"startswith":  "startswith path prefix         Segment-wise prefix test",
	"endswith":    "endswith path suffix           Segment-wise suffix test",
	"contains":    "contains path element          Segment membership",
	"containsall": "containsall path element...    Ordered containment in the rendering",
	"indexof":     "indexof path element           Position of a segment (-1 if absent)",
	"render":      "render [--yaml] path           Show every rendering of a path",
	"eq":          "eq path path                   Compare two paths",
	"flavor":      "flavor [path|url|key]          Show or set the path type",

	"ls":     "ls [path] [-l] [-a]            List branch contents",
	"pwd":    "pwd                            Print working branch",
	"cd":     "cd [path]                      Change branch (cd - for previous)",
	"mkdir":  "mkdir [-p] path                Create branch (-p for parents)",
	"rmdir":  "rmdir path                     Remove empty branch",
	"touch":  "touch path                     Create leaf or update timestamps",
	"cat":    "cat path                       Display leaf value",
	"echo":   "echo \"text\" > path             Write to leaf (> or >> for append)",
	"rm":     "rm [-r] [-f] path              Remove leaf or branch",
	"cp":     "cp [-r] src dst                Copy leaf or branch",
	"mv":     "mv src dst                     Move/rename a node",
	"ln":     "ln -s target link              Create link",
	"stat":   "stat path                      Display node metadata",
	"find":   "find [path] [-name pat] [-type b|f|l] [-has seg]  Find nodes",
	"tree":   "tree [path] [-L depth]         Display tree",
	"vol":    "vol list|switch|create|info    Volume management",
	"init":   "init                           Initialize volume root",
	"index":  "index status|rebuild|drop      Segment index management",
	"lookup": "lookup element...              Find nodes by path segments",
	"help":   "help [command]                 Show this help",
	"clear":  "clear                          Clear the terminal",
	"exit":   "exit / quit                    Exit the REPL",
}

var helpSections = []struct {
	title    string
	commands []string
}{
	{"Path commands:", []string{"norm", "join", "prepend", "trim", "joinf", "prependf", "first", "last",
		"at", "head", "from", "parent", "after", "startswith", "endswith", "contains", "containsall",
		"indexof", "render", "eq", "flavor"}},
	{"Tree commands:", []string{"ls", "pwd", "cd", "mkdir", "rmdir", "touch", "cat", "echo",
		"rm", "cp", "mv", "ln", "stat", "find", "tree"}},
	{"Volume commands:", []string{"vol", "init", "index", "lookup"}},
	{"Other:", []string{"help", "clear", "exit"}},
}

func (r *Router) handleHelp(ctx context.Context, args []string) error {
	w := r.Formatter.Writer
	if len(args) > 0 {
		if help, ok := commandHelp[args[0]]; ok {
			fmt.Fprintln(w, help)
		} else {
			fmt.Fprintf(w, "No help available for '%s'\n", args[0])
		}
		return nil
	}

	fmt.Fprintln(w, "pathkit: path algebra and a node tree on Redis")
	for _, s := range helpSections {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.title)
		for _, cmd := range s.commands {
			fmt.Fprintf(w, "  %s\n", commandHelp[cmd])
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Any unrecognized command is passed through to redis-cli.")
	return nil
}
