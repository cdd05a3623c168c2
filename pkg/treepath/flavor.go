package treepath

import (
	"slices"

	"github.com/rowantrollope/pathkit/pkg/strtemplate"
)

// Flavor is implemented by concrete path types that can be rebuilt from a
// segment sequence. FromSegments is called on the zero value of P and must
// not read its receiver; it may keep the slice it is given.
//
// A flavor usually embeds Path:
//
//	type Route struct{ treepath.Path }
//
//	func (Route) FromSegments(s []string) Route {
//		return Route{treepath.Path{}.FromSegments(s)}
//	}
//
// after which treepath.Join(route, "x") returns a Route.
type Flavor[P any] interface {
	Segmenter
	FromSegments(segments []string) P
}

// Build constructs a P from already-normalized segments. The slice is copied.
func Build[P Flavor[P]](segments []string) P {
	return build[P](slices.Clone(segments))
}

// New normalizes elements and constructs a P from the result.
func New[P Flavor[P]](elements ...any) (P, error) {
	segs, err := normalizeAll(elements)
	if err != nil {
		var zero P
		return zero, err
	}
	return build[P](segs), nil
}

// Join returns base followed by the normalized elements. A zero or nil base
// yields a path built from elements alone.
func Join[P Flavor[P]](base P, elements ...any) (P, error) {
	segs, err := normalizeAll(elements)
	if err != nil {
		var zero P
		return zero, err
	}
	return build[P](concat(baseSegments(base), segs)), nil
}

// JoinPath returns base followed by the segments of other, copied without
// re-normalization.
func JoinPath[P Flavor[P]](base P, other Segmenter) P {
	return build[P](concat(baseSegments(base), baseSegments(other)))
}

// Prepend returns the normalized elements followed by base.
func Prepend[P Flavor[P]](base P, elements ...any) (P, error) {
	segs, err := normalizeAll(elements)
	if err != nil {
		var zero P
		return zero, err
	}
	return build[P](concat(segs, baseSegments(base))), nil
}

// PrependPath returns the segments of other followed by base.
func PrependPath[P Flavor[P]](base P, other Segmenter) P {
	return build[P](concat(baseSegments(other), baseSegments(base)))
}

// WithoutLast returns p without its final segment. An empty p is returned
// as is.
func WithoutLast[P Flavor[P]](p P) P {
	segs := baseSegments(p)
	if len(segs) == 0 {
		return p
	}
	return build[P](slices.Clone(segs[:len(segs)-1]))
}

// JoinCustomized fills the "{}" placeholders of template with vars, then
// joins the result to base.
func JoinCustomized[P Flavor[P]](base P, template string, vars ...any) P {
	segs := NormalizeString(strtemplate.Customize(template, vars...))
	return build[P](concat(baseSegments(base), segs))
}

// PrependCustomized fills the "{}" placeholders of template with vars, then
// prepends the result to base.
func PrependCustomized[P Flavor[P]](base P, template string, vars ...any) P {
	segs := NormalizeString(strtemplate.Customize(template, vars...))
	return build[P](concat(segs, baseSegments(base)))
}

func build[P Flavor[P]](segments []string) P {
	var zero P
	return zero.FromSegments(segments)
}

// baseSegments treats a nil Segmenter as the empty path.
func baseSegments(s Segmenter) []string {
	if s == nil || isNilPointer(s) {
		return nil
	}
	return segmentsOf(s)
}

// concat always allocates, so the result never aliases a or b.
func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
