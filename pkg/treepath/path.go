package treepath

import (
	"fmt"
	"slices"
)

// Path is an immutable, normalized sequence of segments.
//
// The zero value is the empty path; it renders as "" (relative) and "/"
// (absolute). Path holds a slice and is therefore not comparable with ==;
// use Equal, or Key when a map key is needed.
type Path struct {
	segments []string
}

// Empty is the path without segments.
var Empty = Path{}

// From normalizes each element and concatenates the results.
//
//	From("a/b", " c ", "http://x") // [a b c http:/ x]
func From(elements ...string) Path {
	var segs []string
	for _, el := range elements {
		segs = appendString(segs, el)
	}
	return Path{segments: segs}
}

// Of is From for arbitrary path-like input (see Normalize).
func Of(elements ...any) (Path, error) {
	segs, err := normalizeAll(elements)
	if err != nil {
		return Empty, err
	}
	return Path{segments: segs}, nil
}

// MustOf is like Of but panics on invalid input.
func MustOf(elements ...any) Path {
	p, err := Of(elements...)
	if err != nil {
		panic(fmt.Sprintf("treepath.MustOf: %v", err))
	}
	return p
}

// FromSegments wraps an already-normalized segment sequence. The slice is
// copied; the segments themselves are trusted as they are.
func FromSegments(segments []string) Path {
	return Path{segments: slices.Clone(segments)}
}

// FromSegments implements Flavor. It takes ownership of segments, which must
// already be normalized; Build hands it a private copy.
func (Path) FromSegments(segments []string) Path {
	return Path{segments: segments}
}

// Segments returns a copy of the segment sequence.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// value gives package code access to the Path embedded in a flavor without
// copying its segments.
func (p Path) value() Path {
	return p
}

type valuer interface {
	value() Path
}

// segmentsOf returns the segments of s, borrowing the backing slice when s
// is a Path or embeds one. Callers must not modify the result.
func segmentsOf(s Segmenter) []string {
	if v, ok := s.(valuer); ok {
		return v.value().segments
	}
	return s.Segments()
}
