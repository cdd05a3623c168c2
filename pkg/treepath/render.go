package treepath

import (
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// absolutePattern matches renderings that are absolute on their own: drive
// letters and http(s) URLs.
var absolutePattern = regexp.MustCompile(`^[a-zA-Z]:|^https?://`)

// RelativeString joins the segments with "/". The empty path renders as "".
//
// Every "/?" in the joined form is rewritten to "?", so a segment that starts
// with "?" attaches to its predecessor as a query string:
//
//	From("api", "users", "?id=1").RelativeString() // api/users?id=1
func (p Path) RelativeString() string {
	joined := strings.Join(p.segments, Separator)
	return strings.ReplaceAll(joined, "/?", "?")
}

// AbsoluteString is RelativeString prefixed with "/", unless it already
// starts with a drive letter ("C:") or an http(s) scheme.
func (p Path) AbsoluteString() string {
	rel := p.RelativeString()
	if absolutePattern.MatchString(rel) {
		return rel
	}
	return Separator + rel
}

// String returns the absolute rendering.
func (p Path) String() string {
	return p.AbsoluteString()
}

// Equal reports whether both paths have the same absolute rendering.
// Differently built paths that render identically are equal.
func (p Path) Equal(other Segmenter) bool {
	if other == nil {
		return false
	}
	return p.AbsoluteString() == Path{segments: segmentsOf(other)}.AbsoluteString()
}

// Hash returns a 64-bit hash of the absolute rendering. Equal paths hash
// equally.
func (p Path) Hash() uint64 {
	return xxhash.Sum64String(p.AbsoluteString())
}

// Key returns a comparable identity for use as a map key. It is the absolute
// rendering.
func (p Path) Key() string {
	return p.AbsoluteString()
}
