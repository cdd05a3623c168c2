package treepath

import "strings"

// URL is the flavor of Path used for http(s) resources. The first segment is
// the scheme token and the second the host:
//
//	u := ParseURL("https://example.com/api").JoinedWith("users").WithQuery("id=7")
//	u.String() // https://example.com/api/users?id=7
type URL struct {
	Path
}

var _ Flavor[URL] = URL{}

// ParseURL normalizes s into a URL.
func ParseURL(s string) URL {
	return URL{From(s)}
}

// FromSegments implements Flavor.
func (URL) FromSegments(segments []string) URL {
	return URL{Path{segments: segments}}
}

// Scheme returns "http" or "https", or "" when the path has no scheme token.
func (u URL) Scheme() string {
	first, _ := u.First()
	for _, sc := range schemes {
		if first == sc.token {
			return strings.TrimSuffix(sc.token, ":/")
		}
	}
	return ""
}

// Host returns the segment after the scheme, or "" without a scheme.
func (u URL) Host() string {
	if u.Scheme() == "" {
		return ""
	}
	host, _ := u.At(1)
	return host
}

// Resource returns the path below the host. Without a scheme it is the whole
// path.
func (u URL) Resource() Path {
	if u.Scheme() == "" {
		return u.Path
	}
	return Path{segments: u.ElementsFrom(2)}
}

// WithQuery appends query as a trailing "?query" segment, which renders
// attached to the previous segment. Slashes inside query are percent-encoded.
func (u URL) WithQuery(query string) URL {
	query = strings.TrimPrefix(strings.TrimSpace(query), "?")
	if query == "" {
		return u
	}
	query = strings.ReplaceAll(query, Separator, "%2F")
	return URL{Path{segments: concat(u.segments, []string{"?" + query})}}
}

// JoinedWith returns u followed by the normalized elements.
func (u URL) JoinedWith(elements ...string) URL {
	return URL{u.Path.JoinedWith(elements...)}
}

// WithoutLast returns u without its final segment.
func (u URL) WithoutLast() URL {
	return WithoutLast(u)
}
