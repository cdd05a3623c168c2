package treepath

import "errors"

var (
	// ErrInvalidArgument indicates input that cannot be turned into segments,
	// or a prefix that does not match the path it is applied to.
	ErrInvalidArgument = errors.New("treepath: invalid argument")

	// ErrConstruction indicates a path type that cannot be built from a
	// segment sequence. It points at a defect in the type's definition.
	ErrConstruction = errors.New("treepath: cannot construct path type")
)
