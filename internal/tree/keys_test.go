package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

func TestKeyGen(t *testing.T) {
	k := NewKeyGen("main")

	assert.Equal(t, "pk:main:meta:/", k.Meta(treepath.Empty))
	assert.Equal(t, "pk:main:meta:/configs/prod", k.Meta(p("configs/prod")))
	assert.Equal(t, "pk:main:data:/a/b.conf", k.Data(p("a/b.conf")))
	assert.Equal(t, "pk:main:kids:/a", k.Kids(p("a")))
	assert.Equal(t, "pk:main:seg:prod", k.Segment("prod"))
	assert.Equal(t, "pk:main:seg:*", k.SegmentPattern())
	assert.Equal(t, "pk:main:indexed", k.Indexed())
	assert.Equal(t, "pk:*:meta:/", VolumeRootPattern())
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey("pk:main:data:/configs/prod/app.conf")
	require.NoError(t, err)
	assert.Equal(t, "main", key.Volume())
	assert.Equal(t, KeyData, key.Kind())
	assert.Equal(t, "/configs/prod/app.conf", key.Node().String())
	assert.Equal(t, "pk:main:data:/configs/prod/app.conf", key.String())

	root, err := ParseKey("pk:v:meta:/")
	require.NoError(t, err)
	assert.True(t, root.Node().IsEmpty())

	for _, bad := range []string{"", "pk:main", "fs:main:meta:/", "pk::meta:/"} {
		_, err := ParseKey(bad)
		require.ErrorIs(t, err, ErrInvalidKey, "key %q", bad)
	}
}

func TestEncodeNode(t *testing.T) {
	tests := []struct {
		name string
		path treepath.Path
		want string
	}{
		{"root", treepath.Empty, "/"},
		{"plain", p("configs/prod"), "/configs/prod"},
		{"query segment", treepath.FromSegments([]string{"a", "?x"}), "/a/?x"},
		{"query inside segment", treepath.FromSegments([]string{"a?x"}), "/a?x"},
		{"scheme token", treepath.FromSegments([]string{"http:/", "h"}), "/http:%2F/h"},
		{"percent", treepath.FromSegments([]string{"100%"}), "/100%25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeNode(tt.path)
			assert.Equal(t, tt.want, got)

			back, err := DecodeNode(got)
			require.NoError(t, err)
			assert.Equal(t, tt.path.Segments(), back.Segments())
		})
	}

	for _, bad := range []string{"", "a", "/a//b", "/%zz"} {
		_, err := DecodeNode(bad)
		require.ErrorIs(t, err, ErrInvalidKey, "node %q", bad)
	}
}

func TestParseKeyKeepsQuerySegment(t *testing.T) {
	key := NewKeyGen("main").For(KeyMeta, treepath.FromSegments([]string{"a", "?x"}))
	assert.Equal(t, "pk:main:meta:/a/?x", key.String())

	parsed, err := ParseKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "?x"}, parsed.Node().Segments())
}

func TestKeyMarshalsAsKeyName(t *testing.T) {
	key := NewKeyGen("main").For(KeyMeta, p("x"))

	data, err := json.Marshal(key)
	require.NoError(t, err)
	assert.JSONEq(t, `"pk:main:meta:/x"`, string(data))

	var decoded Key
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, key.Segments(), decoded.Segments())
	require.ErrorIs(t, json.Unmarshal([]byte(`"fs:main"`), &decoded), ErrInvalidKey)

	out, err := yaml.Marshal(key)
	require.NoError(t, err)
	assert.Contains(t, string(out), "pk:main:meta:/x")

	var fromYAML Key
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, key.Segments(), fromYAML.Segments())
}

func TestKeyIsAFlavor(t *testing.T) {
	key := NewKeyGen("main").For(KeyMeta, p("a"))
	deeper := treepath.JoinPath(key, p("b"))
	assert.Equal(t, "pk:main:meta:/a/b", deeper.String())
	assert.Equal(t, "pk:main:meta:/", treepath.WithoutLast(key).String())
}

func TestValidateVolume(t *testing.T) {
	require.NoError(t, ValidateVolume("main"))
	require.NoError(t, ValidateVolume("team-1"))
	for _, bad := range []string{"", "a:b", "a/b", "a b", "*"} {
		require.ErrorIs(t, ValidateVolume(bad), ErrInvalidVolume, "volume %q", bad)
	}
}

func TestResolve(t *testing.T) {
	cwd := p("home/me")
	tests := []struct {
		input string
		want  string
	}{
		{"", "/home/me"},
		{".", "/home/me"},
		{"docs", "/home/me/docs"},
		{"../you", "/home/you"},
		{"../../..", "/"},
		{"/etc//x/", "/etc/x"},
		{`\etc\y`, "/etc/y"},
		{"./a/./b/..", "/home/me/a"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(cwd, tt.input).String())
		})
	}
}

func TestNodeError(t *testing.T) {
	err := nodeErr("rm", p("a/b"), ErrNotFound)
	assert.Equal(t, "rm: /a/b: no such node", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}
