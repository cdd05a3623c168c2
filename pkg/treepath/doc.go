// Package treepath provides an immutable, normalized representation of
// slash-delimited paths together with an algebra for composing them.
//
// A Path is an ordered sequence of segments. Input is normalized on the way
// in: backslashes become slashes, runs of separators collapse, every token is
// trimmed and empty tokens are dropped. A leading http:// or https:// is kept
// as a single scheme pseudo-segment ("http:/") so URL-like paths render back
// unchanged.
//
//	p := treepath.From("a", " b ", "c//d")
//	p.Segments()        // [a b c d]
//	p.AbsoluteString()  // /a/b/c/d
//	p.RelativeString()  // a/b/c/d
//
// Paths are values and never change after construction. Join, Prepend and
// WithoutLast return new paths; accessors that hand out segments return
// copies. Two paths are equal when their absolute renderings are identical.
//
// Concrete path flavors (URL, or types defined by other packages) embed Path
// and implement Flavor, which lets the package-level generic functions (Join,
// Prepend, WithoutLast, Build...) return the caller's own type. Flavors chosen
// at runtime are built through the process-wide registry (ConstructorFor).
//
// Errors:
//
//   - ErrInvalidArgument: nil or unsupported input to normalization, or a
//     prefix that does not positionally match in ElementsAfter.
//   - ErrConstruction: a type without a FromSegments([]string) method was
//     handed to the dynamic registry.
package treepath
