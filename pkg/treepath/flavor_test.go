package treepath

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// route is a flavor defined the way callers outside the package do it.
type route struct {
	Path
}

func (route) FromSegments(s []string) route {
	return route{Path{}.FromSegments(s)}
}

// broken carries segments but cannot be rebuilt from them.
type broken struct{}

func (broken) Segments() []string { return nil }

// mistyped has FromSegments with the wrong result type.
type mistyped struct{ Path }

func (mistyped) FromSegments(s []string) Path { return Path{segments: s} }

func TestGenericAlgebraKeepsFlavor(t *testing.T) {
	r := Build[route]([]string{"api", "v1"})

	joined, err := Join(r, "users", "7")
	require.NoError(t, err)
	assert.IsType(t, route{}, joined)
	assert.Equal(t, "/api/v1/users/7", joined.AbsoluteString())

	prepended, err := Prepend(r, "https://h")
	require.NoError(t, err)
	assert.Equal(t, "https://h/api/v1", prepended.String())

	assert.Equal(t, "/api", WithoutLast(r).String())
	assert.Equal(t, "/api/v1/x", JoinPath(r, From("x")).String())
	assert.Equal(t, "/x/api/v1", PrependPath(r, From("x")).String())
	assert.Equal(t, "/api/v1/users/3", JoinCustomized(r, "users/{}", 3).String())
	assert.Equal(t, "/v2/api/v1", PrependCustomized(r, "v{}", 2).String())

	var zero route
	fresh, err := Join(zero, "a")
	require.NoError(t, err)
	assert.Equal(t, "/a", fresh.String())

	n, err := New[route]("a/b")
	require.NoError(t, err)
	assert.Equal(t, 2, n.Len())

	_, err = New[route](nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBuildCopiesSegments(t *testing.T) {
	src := []string{"a", "b"}
	r := Build[route](src)
	src[0] = "mutated"
	assert.Equal(t, "/a/b", r.String())
}

func TestURLFlavor(t *testing.T) {
	u := ParseURL("https://example.com/api").JoinedWith("users").WithQuery("?id=7")
	assert.Equal(t, "https://example.com/api/users?id=7", u.String())
	assert.Equal(t, "https", u.Scheme())
	assert.Equal(t, "example.com", u.Host())
	assert.Equal(t, "/api/users?id=7", u.Resource().String())

	assert.Equal(t, "https://example.com/api", u.WithoutLast().WithoutLast().String())
	assert.Equal(t, u, u.WithQuery(""))
	assert.Equal(t, "http://h?a=b%2Fc", ParseURL("http://h").WithQuery("a=b/c").String())

	plain := ParseURL("a/b")
	assert.Equal(t, "", plain.Scheme())
	assert.Equal(t, "", plain.Host())
	assert.Equal(t, "/a/b", plain.Resource().String())
}

func TestConstructorFor(t *testing.T) {
	c, err := ConstructorFor(TypeOf[route]())
	require.NoError(t, err)
	built := c([]string{"x", "y"})
	assert.IsType(t, route{}, built)
	assert.Equal(t, []string{"x", "y"}, built.Segments())

	again, err := ConstructorFor(TypeOf[route]())
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(c).Pointer(), reflect.ValueOf(again).Pointer())

	u, err := Construct(TypeOf[URL](), []string{"http:/", "h"})
	require.NoError(t, err)
	assert.Equal(t, "http://h", u.(URL).String())

	p, err := Construct(TypeOf[Path](), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, "/a", p.(Path).String())
}

func TestConstructorForFailures(t *testing.T) {
	for _, typ := range []reflect.Type{
		nil,
		TypeOf[broken](),
		TypeOf[mistyped](),
		TypeOf[Segmenter](),
		reflect.TypeOf(42),
	} {
		_, err := ConstructorFor(typ)
		require.Error(t, err, "type %v", typ)
		assert.True(t, errors.Is(err, ErrConstruction))
	}

	_, err := Construct(TypeOf[broken](), nil)
	require.ErrorIs(t, err, ErrConstruction)
	assert.Panics(t, func() { MustConstructorFor(TypeOf[broken]()) })
}

func TestConstructorForConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := ConstructorFor(TypeOf[URL]())
			if err != nil {
				errs <- err
				return
			}
			if got := c([]string{"a"}).(URL).String(); got != "/a" {
				errs <- errors.New("unexpected rendering " + got)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
