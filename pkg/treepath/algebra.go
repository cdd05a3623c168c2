package treepath

// Join returns p followed by the normalized elements.
func (p Path) Join(elements ...any) (Path, error) {
	return Join(p, elements...)
}

// JoinedWith is Join for string elements, which cannot fail.
//
//	From("a", "b").JoinedWith("c", "d").AbsoluteString() // /a/b/c/d
func (p Path) JoinedWith(elements ...string) Path {
	return Path{segments: concat(p.segments, From(elements...).segments)}
}

// JoinPath returns p followed by the segments of other.
func (p Path) JoinPath(other Segmenter) Path {
	return JoinPath(p, other)
}

// Prepend returns the normalized elements followed by p.
func (p Path) Prepend(elements ...any) (Path, error) {
	return Prepend(p, elements...)
}

// PrependedWith is Prepend for string elements.
func (p Path) PrependedWith(elements ...string) Path {
	return Path{segments: concat(From(elements...).segments, p.segments)}
}

// PrependPath returns the segments of other followed by p.
func (p Path) PrependPath(other Segmenter) Path {
	return PrependPath(p, other)
}

// WithoutLast returns p without its final segment.
func (p Path) WithoutLast() Path {
	return WithoutLast(p)
}

// JoinCustomized interpolates template with vars and joins the result.
//
//	From("users").JoinCustomized("{}/posts/{}", 7, 42) // /users/7/posts/42
func (p Path) JoinCustomized(template string, vars ...any) Path {
	return JoinCustomized(p, template, vars...)
}

// PrependCustomized interpolates template with vars and prepends the result.
func (p Path) PrependCustomized(template string, vars ...any) Path {
	return PrependCustomized(p, template, vars...)
}
