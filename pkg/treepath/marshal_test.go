package treepath

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type document struct {
	Home  Path `json:"home" yaml:"home"`
	Site  URL  `json:"site" yaml:"site"`
	Extra Path `json:"extra,omitempty" yaml:"extra,omitempty"`
}

func TestJSON(t *testing.T) {
	doc := document{Home: From("users", "me"), Site: ParseURL("https://h/x")}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"home":"/users/me","site":"https://h/x","extra":"/"}`, string(data))

	var back document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Home.Equal(doc.Home))
	assert.Equal(t, "https", back.Site.Scheme())

	var fromArray document
	require.NoError(t, json.Unmarshal([]byte(`{"home":["a/b"," c "],"site":null}`), &fromArray))
	assert.Equal(t, []string{"a", "b", "c"}, fromArray.Home.Segments())
	assert.True(t, fromArray.Site.IsEmpty())

	require.Error(t, json.Unmarshal([]byte(`{"home":7}`), &fromArray))
}

func TestYAML(t *testing.T) {
	doc := document{Home: From("users", "me"), Site: ParseURL("http://h")}
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	var back document
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.True(t, back.Home.Equal(doc.Home))
	assert.True(t, back.Site.Equal(doc.Site))

	var seq document
	require.NoError(t, yaml.Unmarshal([]byte("home:\n  - a\n  - b/c\n"), &seq))
	assert.Equal(t, "/a/b/c", seq.Home.String())

	err = yaml.Unmarshal([]byte("home:\n  key: value\n"), &seq)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestText(t *testing.T) {
	text, err := From(`C:\a`).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "C:/a", string(text))

	var p Path
	require.NoError(t, p.UnmarshalText([]byte("//x//y")))
	assert.Equal(t, "/x/y", p.String())

	r := Unmarshal[route]("a/b")
	assert.Equal(t, "/a/b", r.String())
}
