package treepath

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rowantrollope/pathkit/pkg/filename"
)

// First returns the first segment, or false for the empty path.
func (p Path) First() (string, bool) {
	return p.At(0)
}

// Last returns the final segment, or false for the empty path.
func (p Path) Last() (string, bool) {
	return p.At(len(p.segments) - 1)
}

// At returns the segment at pos, or false when pos is out of range.
func (p Path) At(pos int) (string, bool) {
	if pos < 0 || pos >= len(p.segments) {
		return "", false
	}
	return p.segments[pos], true
}

// FirstN returns up to n leading segments. n is clamped to [0, Len()].
func (p Path) FirstN(n int) []string {
	n = clamp(n, len(p.segments))
	return slices.Clone(p.segments[:n:n])
}

// ElementsFrom returns the segments from pos onwards. pos is clamped to
// [0, Len()].
func (p Path) ElementsFrom(pos int) []string {
	pos = clamp(pos, len(p.segments))
	return slices.Clone(p.segments[pos:])
}

// ExceptLast returns every segment but the final one.
func (p Path) ExceptLast() []string {
	return p.FirstN(len(p.segments) - 1)
}

// ElementsAfter returns the segments that follow prefix. Every segment of
// prefix must equal the segment at the same position in p; membership alone
// is not enough. A mismatch wraps ErrInvalidArgument.
//
//	From("a", "b", "c").ElementsAfter(From("a", "b")) // [c]
func (p Path) ElementsAfter(prefix Segmenter) ([]string, error) {
	pre := baseSegments(prefix)
	if !hasPrefix(p.segments, pre) {
		return nil, fmt.Errorf("%w: %s is not a prefix of %s",
			ErrInvalidArgument, Path{segments: pre}.AbsoluteString(), p.AbsoluteString())
	}
	return slices.Clone(p.segments[len(pre):]), nil
}

// StartsWith reports whether the leading segments of p equal those of other.
// Every path starts with itself and with the empty path.
func (p Path) StartsWith(other Segmenter) bool {
	return hasPrefix(p.segments, baseSegments(other))
}

// EndsWith reports whether the trailing segments of p equal those of other.
func (p Path) EndsWith(other Segmenter) bool {
	suffix := baseSegments(other)
	if len(suffix) > len(p.segments) {
		return false
	}
	offset := len(p.segments) - len(suffix)
	for i, seg := range suffix {
		if p.segments[offset+i] != seg {
			return false
		}
	}
	return true
}

// Contains reports whether el is one of the segments.
func (p Path) Contains(el string) bool {
	return slices.Contains(p.segments, el)
}

// ContainsAll reports whether the relative rendering of els occurs inside
// the relative rendering of p.
//
// This is a substring test, not a segment-aligned one:
// From("abc", "d").ContainsAll("c", "d") is true.
func (p Path) ContainsAll(els ...string) bool {
	return strings.Contains(p.RelativeString(), From(els...).RelativeString())
}

// IndexOf returns the position of the first segment equal to el, or -1.
func (p Path) IndexOf(el string) int {
	return slices.Index(p.segments, el)
}

// IsFile reports whether the final segment looks like a file name.
func (p Path) IsFile() bool {
	last, ok := p.Last()
	return ok && filename.IsFile(last)
}

// Extension returns the extension of the final segment without the dot, or
// "" when it has none.
func (p Path) Extension() string {
	last, _ := p.Last()
	return filename.Extension(last)
}

func hasPrefix(segs, prefix []string) bool {
	if len(prefix) > len(segs) {
		return false
	}
	for i, seg := range prefix {
		if segs[i] != seg {
			return false
		}
	}
	return true
}

func clamp(n, upper int) int {
	if n < 0 {
		return 0
	}
	if n > upper {
		return upper
	}
	return n
}
