package tree

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rowantrollope/pathkit/pkg/treepath"
)

// Namespace prefixes every key written by the tree.
const Namespace = "pk"

// Key kinds.
const (
	KeyMeta    = "meta"
	KeyData    = "data"
	KeyKids    = "kids"
	KeySegment = "seg"
)

// Key is a Redis key name expressed as a path: the namespace, the volume
// and the key kind, followed by the segments of the node it belongs to.
type Key struct {
	treepath.Path
}

var _ treepath.Flavor[Key] = Key{}

func (Key) FromSegments(segments []string) Key {
	return Key{treepath.Path{}.FromSegments(segments)}
}

// Volume returns the volume the key belongs to.
func (k Key) Volume() string {
	v, _ := k.At(1)
	return v
}

// Kind returns the key kind (meta, data, kids or seg).
func (k Key) Kind() string {
	v, _ := k.At(2)
	return v
}

// Node returns the node path the key refers to.
func (k Key) Node() treepath.Path {
	return treepath.FromSegments(k.ElementsFrom(3))
}

// String renders the key as stored in Redis,
// e.g. pk:main:meta:/configs/prod.
func (k Key) String() string {
	return strings.Join(k.FirstN(3), ":") + ":" + EncodeNode(k.Node())
}

// MarshalText writes the Redis key name rather than the path rendering.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a Redis key name.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// UnmarshalJSON parses a JSON string holding a Redis key name.
func (k *Key) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("key: %w", err)
	}
	return k.UnmarshalText([]byte(s))
}

// MarshalYAML writes the Redis key name as a scalar.
func (k Key) MarshalYAML() (any, error) {
	return k.String(), nil
}

// UnmarshalYAML parses a scalar holding a Redis key name.
func (k *Key) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("key: %w", err)
	}
	return k.UnmarshalText([]byte(s))
}

// ParseKey parses a Redis key name produced by KeyGen.
func ParseKey(s string) (Key, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) != 4 || parts[0] != Namespace || parts[1] == "" || parts[2] == "" {
		return Key{}, fmt.Errorf("%q: %w", s, ErrInvalidKey)
	}
	node, err := DecodeNode(parts[3])
	if err != nil {
		return Key{}, fmt.Errorf("%q: %w", s, err)
	}
	head := treepath.Build[Key](parts[:3])
	return treepath.JoinPath(head, node), nil
}

var nodeEscaper = strings.NewReplacer("%", "%25", "/", "%2F")

// EncodeNode names node p inside key names and index sets: a slash before
// each raw segment, with '%' and '/' in segments percent-escaped. Unlike the
// path renderings it never merges segments, so distinct paths get distinct
// names. The root encodes as "/".
func EncodeNode(p treepath.Path) string {
	if p.IsEmpty() {
		return treepath.Separator
	}
	var b strings.Builder
	for _, seg := range p.Segments() {
		b.WriteString(treepath.Separator)
		b.WriteString(nodeEscaper.Replace(seg))
	}
	return b.String()
}

// DecodeNode reverses EncodeNode.
func DecodeNode(s string) (treepath.Path, error) {
	if s == treepath.Separator {
		return treepath.Empty, nil
	}
	if !strings.HasPrefix(s, treepath.Separator) {
		return treepath.Empty, fmt.Errorf("node %q: %w", s, ErrInvalidKey)
	}
	raw := strings.Split(s[1:], treepath.Separator)
	segs := make([]string, len(raw))
	for i, r := range raw {
		seg, err := url.PathUnescape(r)
		if err != nil || seg == "" {
			return treepath.Empty, fmt.Errorf("node %q: %w", s, ErrInvalidKey)
		}
		segs[i] = seg
	}
	return treepath.FromSegments(segs), nil
}

// KeyGen generates Redis key names for a given volume.
type KeyGen struct {
	Volume string
}

// NewKeyGen creates a KeyGen for the given volume.
func NewKeyGen(volume string) *KeyGen {
	return &KeyGen{Volume: volume}
}

// For returns the key of the given kind for node p.
func (k *KeyGen) For(kind string, p treepath.Path) Key {
	return treepath.JoinPath(treepath.Build[Key]([]string{Namespace, k.Volume, kind}), p)
}

// Meta returns the metadata key for a node.
// e.g., pk:main:meta:/configs/prod
func (k *KeyGen) Meta(p treepath.Path) string {
	return k.For(KeyMeta, p).String()
}

// Data returns the value key for a leaf.
// e.g., pk:main:data:/configs/prod/app.conf
func (k *KeyGen) Data(p treepath.Path) string {
	return k.For(KeyData, p).String()
}

// Kids returns the child-name set key for a branch.
// e.g., pk:main:kids:/configs
func (k *KeyGen) Kids(p treepath.Path) string {
	return k.For(KeyKids, p).String()
}

// Segment returns the index set key for a segment.
// e.g., pk:main:seg:prod
func (k *KeyGen) Segment(segment string) string {
	return Namespace + ":" + k.Volume + ":" + KeySegment + ":" + segment
}

// Indexed returns the key of the set of every indexed node.
// e.g., pk:main:indexed
func (k *KeyGen) Indexed() string {
	return Namespace + ":" + k.Volume + ":indexed"
}

// SegmentPattern returns a SCAN pattern matching every segment set of the volume.
func (k *KeyGen) SegmentPattern() string {
	return Namespace + ":" + k.Volume + ":" + KeySegment + ":*"
}

// VolumeRootPattern returns a SCAN pattern to discover all volumes.
func VolumeRootPattern() string {
	return Namespace + ":*:" + KeyMeta + ":/"
}

// ValidateVolume rejects names that would break the key layout.
func ValidateVolume(name string) error {
	if name == "" || strings.ContainsAny(name, ":/*?[] \t\n") {
		return fmt.Errorf("%q: %w", name, ErrInvalidVolume)
	}
	return nil
}
