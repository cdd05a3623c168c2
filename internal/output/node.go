package output

import (
	"fmt"
	"strings"

	"github.com/rowantrollope/pathkit/internal/tree"
)

// NodeView is the serialized form of a node in ls -l and stat output.
type NodeView struct {
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	Path   string    `json:"path,omitempty" yaml:"path,omitempty"`
	Kind   tree.Kind `json:"kind" yaml:"kind"`
	Size   int64     `json:"size" yaml:"size"`
	CTime  int64     `json:"ctime,omitempty" yaml:"ctime,omitempty"`
	MTime  int64     `json:"mtime" yaml:"mtime"`
	ATime  int64     `json:"atime,omitempty" yaml:"atime,omitempty"`
	Target string    `json:"target,omitempty" yaml:"target,omitempty"`
}

func viewOf(meta *tree.Meta) NodeView {
	return NodeView{
		Kind:   meta.Kind,
		Size:   meta.Size,
		CTime:  meta.CTime,
		MTime:  meta.MTime,
		ATime:  meta.ATime,
		Target: meta.Target,
	}
}

// visible drops dot-names unless all is set.
func visible(entries []tree.Entry, all bool) []tree.Entry {
	if all {
		return entries
	}
	kept := make([]tree.Entry, 0, len(entries))
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, ".") {
			kept = append(kept, e)
		}
	}
	return kept
}

// PrintLs prints one name per line, or a JSON array of names.
func (f *Formatter) PrintLs(entries []tree.Entry, all bool) {
	entries = visible(entries, all)

	if f.JSON {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name
		}
		f.PrintJSON(names)
		return
	}

	for _, e := range entries {
		kind := tree.KindLeaf
		if e.Meta != nil {
			kind = e.Meta.Kind
		}
		fmt.Fprintln(f.Writer, f.Name(e.Name, kind))
	}
}

// PrintLsLong prints kind letter, size, mtime and name per entry.
func (f *Formatter) PrintLsLong(entries []tree.Entry, all bool) {
	entries = visible(entries, all)

	if f.JSON {
		views := make([]NodeView, 0, len(entries))
		for _, e := range entries {
			v := NodeView{Name: e.Name, Kind: tree.KindLeaf}
			if e.Meta != nil {
				v = viewOf(e.Meta)
				v.Name = e.Name
				v.CTime, v.ATime = 0, 0
			}
			views = append(views, v)
		}
		f.PrintJSON(views)
		return
	}

	for _, e := range entries {
		if e.Meta == nil {
			fmt.Fprintf(f.Writer, "? %6s %12s %s\n", "?", "?", e.Name)
			continue
		}
		name := f.Name(e.Name, e.Meta.Kind)
		if e.Meta.Kind == tree.KindLink && e.Meta.Target != "" {
			name += " -> " + e.Meta.Target
		}
		fmt.Fprintf(f.Writer, "%c %6d %12s %s\n",
			e.Meta.KindLetter(), e.Meta.Size, tree.FormatTime(e.Meta.MTime), name)
	}
}

// PrintStat prints every metadata field of the node at path.
func (f *Formatter) PrintStat(path string, meta *tree.Meta) {
	if f.JSON {
		v := viewOf(meta)
		v.Path = path
		f.PrintJSON(v)
		return
	}

	rows := [][2]string{
		{"Node", path},
		{"Kind", string(meta.Kind)},
		{"Size", fmt.Sprint(meta.Size)},
		{"CTime", tree.FormatTime(meta.CTime)},
		{"MTime", tree.FormatTime(meta.MTime)},
		{"ATime", tree.FormatTime(meta.ATime)},
	}
	if meta.Target != "" {
		rows = append(rows, [2]string{"Link", meta.Target})
	}
	for _, row := range rows {
		fmt.Fprintf(f.Writer, "%6s: %s\n", row[0], row[1])
	}
}
