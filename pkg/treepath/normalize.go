package treepath

import (
	"fmt"
	"reflect"
	"strings"
)

// Separator is the segment delimiter of every rendering.
const Separator = "/"

// Scheme prefixes recognized at the start of a string input, longest first,
// and the pseudo-segment each one is stored as.
var schemes = []struct {
	prefix string
	token  string
}{
	{prefix: "https://", token: "https:/"},
	{prefix: "http://", token: "http:/"},
}

// Segmenter is implemented by every value that carries already-normalized
// segments. Normalize copies them verbatim.
type Segmenter interface {
	Segments() []string
}

// Normalize turns path-like input into its canonical segment sequence.
//
// Accepted input is a string, any Segmenter (its segments are taken as they
// are), a fmt.Stringer, or a slice or array of any of these, flattened
// recursively. nil input and unsupported types wrap ErrInvalidArgument.
func Normalize(input any) ([]string, error) {
	out, err := appendNormalized(nil, input)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// NormalizeString is Normalize for a single string. It cannot fail.
func NormalizeString(s string) []string {
	out := appendString(nil, s)
	if out == nil {
		out = []string{}
	}
	return out
}

func normalizeAll(elements []any) ([]string, error) {
	var out []string
	for i, el := range elements {
		var err error
		out, err = appendNormalized(out, el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return out, nil
}

func appendNormalized(dst []string, input any) ([]string, error) {
	switch v := input.(type) {
	case nil:
		return dst, fmt.Errorf("%w: nil path input", ErrInvalidArgument)
	case string:
		return appendString(dst, v), nil
	case []string:
		for _, s := range v {
			dst = appendString(dst, s)
		}
		return dst, nil
	case []any:
		for _, el := range v {
			var err error
			if dst, err = appendNormalized(dst, el); err != nil {
				return dst, err
			}
		}
		return dst, nil
	case Segmenter:
		if isNilPointer(v) {
			return dst, fmt.Errorf("%w: nil %T", ErrInvalidArgument, v)
		}
		return append(dst, segmentsOf(v)...), nil
	case fmt.Stringer:
		if isNilPointer(v) {
			return dst, fmt.Errorf("%w: nil %T", ErrInvalidArgument, v)
		}
		return appendString(dst, v.String()), nil
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			var err error
			if dst, err = appendNormalized(dst, rv.Index(i).Interface()); err != nil {
				return dst, err
			}
		}
		return dst, nil
	case reflect.String:
		return appendString(dst, rv.String()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return dst, fmt.Errorf("%w: nil %T", ErrInvalidArgument, input)
		}
		return appendNormalized(dst, rv.Elem().Interface())
	}
	return dst, fmt.Errorf("%w: unsupported path input %T", ErrInvalidArgument, input)
}

func appendString(dst []string, s string) []string {
	s = strings.ReplaceAll(s, `\`, Separator)
	trimmed := strings.TrimSpace(s)

	for _, sc := range schemes {
		if trimmed == sc.token {
			return append(dst, sc.token)
		}
		if strings.HasPrefix(trimmed, sc.prefix) {
			dst = append(dst, sc.token)
			s = trimmed[len(sc.prefix):]
			break
		}
	}

	for _, tok := range strings.Split(collapseSeparators(s), Separator) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			dst = append(dst, tok)
		}
	}
	return dst
}

// collapseSeparators squeezes every run of '/' into one.
func collapseSeparators(s string) string {
	if !strings.Contains(s, "//") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	prevSep := false
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			if prevSep {
				continue
			}
			prevSep = true
		} else {
			prevSep = false
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
