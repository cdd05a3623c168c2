package output

import (
	"fmt"
	"strconv"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// Rendering describes a path value for machine-readable output.
type Rendering struct {
	Display  string   `json:"display" yaml:"display"`
	Segments []string `json:"segments" yaml:"segments"`
	Relative string   `json:"relative" yaml:"relative"`
	Absolute string   `json:"absolute" yaml:"absolute"`
	Hash     string   `json:"hash" yaml:"hash"`
}

// Describe builds the Rendering of s. Display uses the String method of
// the concrete type, so flavors keep their own rendering.
func Describe(s treepath.Segmenter) Rendering {
	p := treepath.FromSegments(s.Segments())
	return Rendering{
		Display:  fmt.Sprint(s),
		Segments: p.Segments(),
		Relative: p.RelativeString(),
		Absolute: p.AbsoluteString(),
		Hash:     strconv.FormatUint(p.Hash(), 16),
	}
}

// PrintPath prints a path result.
func (f *Formatter) PrintPath(s treepath.Segmenter) {
	if f.JSON {
		f.PrintJSON(Describe(s))
		return
	}
	fmt.Fprintln(f.Writer, s)
}

// PrintRendering prints every rendering of s, as YAML when asked.
func (f *Formatter) PrintRendering(s treepath.Segmenter, yamlMode bool) {
	r := Describe(s)
	switch {
	case f.JSON:
		f.PrintJSON(r)
	case yamlMode:
		f.PrintYAML(r)
	default:
		fmt.Fprintf(f.Writer, " display: %s\n", r.Display)
		fmt.Fprintf(f.Writer, "relative: %s\n", r.Relative)
		fmt.Fprintf(f.Writer, "absolute: %s\n", r.Absolute)
		fmt.Fprintf(f.Writer, "segments: %q\n", r.Segments)
		fmt.Fprintf(f.Writer, "    hash: %s\n", r.Hash)
	}
}

// PrintValue prints a scalar result.
func (f *Formatter) PrintValue(v interface{}) {
	if f.JSON {
		f.PrintJSON(map[string]interface{}{"result": v})
		return
	}
	fmt.Fprintln(f.Writer, v)
}

// PrintStrings prints a list, one item per line.
func (f *Formatter) PrintStrings(items []string) {
	if f.JSON {
		if items == nil {
			items = []string{}
		}
		f.PrintJSON(items)
		return
	}
	for _, s := range items {
		fmt.Fprintln(f.Writer, s)
	}
}
