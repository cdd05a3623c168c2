package treepath

import (
	"fmt"
	"reflect"
	"sync"
)

// Constructor builds a value of one concrete path type from an
// already-normalized segment sequence.
type Constructor func(segments []string) Segmenter

// constructors caches one Constructor per reflect.Type. Entries are added on
// first use and never removed. Resolving twice yields equivalent
// constructors, so racing writers are harmless.
var constructors sync.Map

var (
	segmenterType = reflect.TypeOf((*Segmenter)(nil)).Elem()
	segmentsType  = reflect.TypeOf([]string(nil))
)

// ConstructorFor returns the Constructor of t, resolving and caching it on
// first use. t must have a FromSegments([]string) t method, which every
// Flavor does. Otherwise the error wraps ErrConstruction; failures are not
// cached.
//
// Prefer Build when the type is known at compile time.
func ConstructorFor(t reflect.Type) (Constructor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrConstruction)
	}
	if c, ok := constructors.Load(t); ok {
		return c.(Constructor), nil
	}
	c, err := resolveConstructor(t)
	if err != nil {
		return nil, err
	}
	actual, _ := constructors.LoadOrStore(t, c)
	return actual.(Constructor), nil
}

// MustConstructorFor is like ConstructorFor but panics when t cannot be built.
func MustConstructorFor(t reflect.Type) Constructor {
	c, err := ConstructorFor(t)
	if err != nil {
		panic(err)
	}
	return c
}

// Construct builds a value of type t from segments, which are copied.
func Construct(t reflect.Type, segments []string) (Segmenter, error) {
	c, err := ConstructorFor(t)
	if err != nil {
		return nil, err
	}
	return c(concat(nil, segments)), nil
}

// TypeOf returns the reflect.Type of P, for use with ConstructorFor.
func TypeOf[P Segmenter]() reflect.Type {
	return reflect.TypeOf((*P)(nil)).Elem()
}

func resolveConstructor(t reflect.Type) (Constructor, error) {
	if t.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: %s is an interface", ErrConstruction, t)
	}
	if !t.Implements(segmenterType) {
		return nil, fmt.Errorf("%w: %s does not implement Segmenter", ErrConstruction, t)
	}
	m, ok := t.MethodByName("FromSegments")
	if !ok {
		return nil, fmt.Errorf("%w: %s has no FromSegments method", ErrConstruction, t)
	}
	mt := m.Type // receiver is the first input
	if mt.NumIn() != 2 || mt.In(1) != segmentsType || mt.NumOut() != 1 || mt.Out(0) != t {
		return nil, fmt.Errorf("%w: %s.FromSegments must have signature func([]string) %s",
			ErrConstruction, t, t)
	}

	receiver := reflect.Zero(t)
	fn := m.Func
	return func(segments []string) Segmenter {
		out := fn.Call([]reflect.Value{receiver, reflect.ValueOf(segments)})
		return out[0].Interface().(Segmenter)
	}, nil
}
