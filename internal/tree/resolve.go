package tree

import (
	"strings"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// Resolve interprets input relative to cwd. Input starting with a separator
// ignores cwd. "." segments are dropped and ".." climbs one level, stopping
// at the root.
func Resolve(cwd treepath.Path, input string) treepath.Path {
	input = strings.TrimSpace(strings.ReplaceAll(input, `\`, treepath.Separator))

	var stack []string
	if !strings.HasPrefix(input, treepath.Separator) {
		stack = cwd.Segments()
	}
	for _, seg := range treepath.NormalizeString(input) {
		switch seg {
		case ".":
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}
	return treepath.FromSegments(stack)
}

// Base returns the last segment of p, or "/" for the root.
func Base(p treepath.Path) string {
	if last, ok := p.Last(); ok {
		return last
	}
	return treepath.Separator
}

// split returns the parent of p and its last segment.
func split(p treepath.Path) (treepath.Path, string) {
	last, _ := p.Last()
	return p.WithoutLast(), last
}

// child returns the node named name below p.
func child(p treepath.Path, name string) treepath.Path {
	return p.JoinPath(treepath.FromSegments([]string{name}))
}
