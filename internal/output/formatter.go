// Package output prints command results as colored text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/rowantrollope/pathkit/internal/tree"
)

// Formatter writes results to Writer and diagnostics to ErrWriter.
type Formatter struct {
	Writer    io.Writer
	ErrWriter io.Writer
	JSON      bool
	Color     bool

	branch *color.Color
	link   *color.Color
	errors *color.Color
}

// NewFormatter creates a formatter writing to stdout and stderr.
func NewFormatter(jsonMode, colorMode bool) *Formatter {
	return &Formatter{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		JSON:      jsonMode,
		Color:     colorMode,
		branch:    color.New(color.FgBlue, color.Bold),
		link:      color.New(color.FgCyan),
		errors:    color.New(color.FgRed),
	}
}

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.Color {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

// Printf prints formatted text to Writer.
func (f *Formatter) Printf(format string, args ...any) {
	fmt.Fprintf(f.Writer, format, args...)
}

// Println prints a line to Writer.
func (f *Formatter) Println(args ...any) {
	fmt.Fprintln(f.Writer, args...)
}

// Errorf prints to ErrWriter, in red when colors are on.
func (f *Formatter) Errorf(format string, args ...any) {
	fmt.Fprint(f.ErrWriter, f.paint(f.errors, fmt.Sprintf(format, args...)))
}

// PrintJSON writes v as indented JSON.
func (f *Formatter) PrintJSON(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintYAML writes v as a YAML document.
func (f *Formatter) PrintYAML(v any) error {
	enc := yaml.NewEncoder(f.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Name colors a node name by kind: bold blue branches, cyan links.
func (f *Formatter) Name(name string, kind tree.Kind) string {
	switch kind {
	case tree.KindBranch:
		return f.paint(f.branch, name)
	case tree.KindLink:
		return f.paint(f.link, name)
	}
	return name
}
