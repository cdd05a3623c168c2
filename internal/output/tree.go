package output

import (
	"fmt"

	"github.com/rowantrollope/pathkit/internal/tree"
)

// TreeView is the serialized form of a tree listing.
type TreeView struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Kind     tree.Kind  `json:"kind"`
	Children []TreeView `json:"children,omitempty"`
}

func treeView(entry *tree.TreeEntry) TreeView {
	v := TreeView{Name: entry.Name, Path: entry.Path.String(), Kind: entry.Kind}
	for i := range entry.Children {
		v.Children = append(v.Children, treeView(&entry.Children[i]))
	}
	return v
}

// PrintTree draws entry with box-drawing connectors, then the totals.
func (f *Formatter) PrintTree(entry *tree.TreeEntry, branches, leaves int) {
	if f.JSON {
		f.PrintJSON(treeView(entry))
		return
	}

	fmt.Fprintln(f.Writer, f.Name(entry.Name, entry.Kind))
	f.printBranch(entry.Children, "")
	fmt.Fprintf(f.Writer, "\n%d branches, %d leaves\n", branches, leaves)
}

func (f *Formatter) printBranch(children []tree.TreeEntry, indent string) {
	for i := range children {
		child := &children[i]
		connector, nested := "├── ", "│   "
		if i == len(children)-1 {
			connector, nested = "└── ", "    "
		}
		fmt.Fprintf(f.Writer, "%s%s%s\n", indent, connector, f.Name(child.Name, child.Kind))
		f.printBranch(child.Children, indent+nested)
	}
}
