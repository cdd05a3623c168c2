package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

const maxPromptPathLen = 30

// BuildPrompt generates the dynamic prompt string.
// Format: pathkit:volume:path>
func BuildPrompt(volume string, cwd treepath.Path, colored bool) string {
	prompt := fmt.Sprintf("pathkit:%s:%s>", volume, truncatePath(cwd, maxPromptPathLen))
	if colored {
		c := color.New(color.FgGreen)
		c.EnableColor()
		return c.Sprint(prompt) + " "
	}
	return prompt + " "
}

// truncatePath shortens the rendering of p if it exceeds maxLen, keeping
// the last two segments when they fit and the last one otherwise.
// e.g., /very/long/nested/path → /.../nested/path
func truncatePath(p treepath.Path, maxLen int) string {
	full := p.String()
	if len(full) <= maxLen || p.Len() <= 2 {
		return full
	}

	tail := treepath.FromSegments(p.ElementsFrom(p.Len() - 2))
	if truncated := "/..." + tail.String(); len(truncated) <= maxLen {
		return truncated
	}
	last, _ := p.Last()
	return "/.../" + last
}
