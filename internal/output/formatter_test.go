package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rowantrollope/pathkit/internal/tree"
	"github.com/rowantrollope/pathkit/pkg/treepath"
)

func newTestFormatter(jsonMode bool) (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := NewFormatter(jsonMode, false)
	f.Writer = &buf
	f.ErrWriter = &buf
	return f, &buf
}

func TestPrintPath(t *testing.T) {
	f, buf := newTestFormatter(false)
	f.PrintPath(treepath.From("http://h", "a"))
	assert.Equal(t, "http://h/a\n", buf.String())

	f, buf = newTestFormatter(true)
	f.PrintPath(treepath.From("a", "b"))
	assert.JSONEq(t, `{
		"display": "/a/b",
		"segments": ["a", "b"],
		"relative": "a/b",
		"absolute": "/a/b",
		"hash": "`+Describe(treepath.From("a/b")).Hash+`"
	}`, buf.String())
}

func TestDescribeKeepsFlavorDisplay(t *testing.T) {
	key := tree.NewKeyGen("main").For(tree.KeyMeta, treepath.From("a"))
	r := Describe(key)
	assert.Equal(t, "pk:main:meta:/a", r.Display)
	assert.Equal(t, "/pk/main/meta/a", r.Absolute)
}

func TestPrintRenderingYAML(t *testing.T) {
	f, buf := newTestFormatter(false)
	f.PrintRendering(treepath.From("api", "?q"), true)

	var got Rendering
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "api?q", got.Relative)
	assert.Equal(t, []string{"api", "?q"}, got.Segments)
}

func TestPrintStrings(t *testing.T) {
	f, buf := newTestFormatter(true)
	f.PrintStrings(nil)
	assert.JSONEq(t, `[]`, buf.String())

	f, buf = newTestFormatter(false)
	f.PrintStrings([]string{"a", "b"})
	assert.Equal(t, "a\nb\n", buf.String())
}

func TestPrintLs(t *testing.T) {
	entries := []tree.Entry{
		{Name: ".hidden", Meta: &tree.Meta{Kind: tree.KindLeaf}},
		{Name: "dir", Meta: &tree.Meta{Kind: tree.KindBranch}},
		{Name: "ln", Meta: &tree.Meta{Kind: tree.KindLink, Target: "dir"}},
	}

	f, buf := newTestFormatter(false)
	f.PrintLs(entries, false)
	assert.Equal(t, "dir\nln\n", buf.String())

	f, buf = newTestFormatter(false)
	f.PrintLsLong(entries, true)
	assert.Contains(t, buf.String(), "ln -> dir")
	assert.Contains(t, buf.String(), "b ")

	f, buf = newTestFormatter(true)
	f.PrintLs(entries, true)
	assert.JSONEq(t, `[".hidden", "dir", "ln"]`, buf.String())
}

func TestPrintTree(t *testing.T) {
	root := &tree.TreeEntry{
		Name: "/",
		Kind: tree.KindBranch,
		Children: []tree.TreeEntry{
			{Name: "a", Path: treepath.From("a"), Kind: tree.KindBranch, Children: []tree.TreeEntry{
				{Name: "x", Path: treepath.From("a/x"), Kind: tree.KindLeaf},
			}},
			{Name: "b", Path: treepath.From("b"), Kind: tree.KindLeaf},
		},
	}

	f, buf := newTestFormatter(false)
	f.PrintTree(root, 1, 2)
	assert.Equal(t, "/\n├── a\n│   └── x\n└── b\n\n1 branches, 2 leaves\n", buf.String())
}

func TestPrintStat(t *testing.T) {
	meta := &tree.Meta{Kind: tree.KindLink, Size: 3, MTime: 1700000000, Target: "/a"}

	f, buf := newTestFormatter(false)
	f.PrintStat("/ln", meta)
	assert.Contains(t, buf.String(), "  Node: /ln\n")
	assert.Contains(t, buf.String(), "  Kind: link\n")
	assert.Contains(t, buf.String(), "  Link: /a\n")

	f, buf = newTestFormatter(true)
	f.PrintStat("/ln", meta)
	assert.JSONEq(t, `{"path": "/ln", "kind": "link", "size": 3, "mtime": 1700000000, "target": "/a"}`, buf.String())
}

func TestPrintLsLongJSON(t *testing.T) {
	entries := []tree.Entry{
		{Name: "doc", Meta: &tree.Meta{Kind: tree.KindLeaf, Size: 5, CTime: 1, MTime: 2, ATime: 3}},
		{Name: "gone"},
	}
	f, buf := newTestFormatter(true)
	f.PrintLsLong(entries, false)
	assert.JSONEq(t, `[
		{"name": "doc", "kind": "leaf", "size": 5, "mtime": 2},
		{"name": "gone", "kind": "leaf", "size": 0, "mtime": 0}
	]`, buf.String())
}

func TestNameColors(t *testing.T) {
	f := NewFormatter(false, true)
	assert.Contains(t, f.Name("dir", tree.KindBranch), "\033[")
	assert.Equal(t, "file", f.Name("file", tree.KindLeaf))

	f = NewFormatter(false, false)
	assert.Equal(t, "dir", f.Name("dir", tree.KindBranch))
}
