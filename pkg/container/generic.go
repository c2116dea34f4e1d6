package container

import (
	"fmt"
	"reflect"
)

// Make resolves the abstract of T and asserts the result.
//
//	repo, err := container.Make[UserRepository](c)
func Make[T any](c *Container, params ...any) (T, error) {
	return MakeNamed[T](c, DeclareOf[T](c), params...)
}

// MakeNamed resolves abstract and asserts the result to T.
func MakeNamed[T any](c *Container, abstract string, params ...any) (T, error) {
	v, err := c.resolve(abstract, params)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](abstract, v)
}

func MustMake[T any](c *Container, params ...any) T {
	v, err := Make[T](c, params...)
	if err != nil {
		panic(err)
	}
	return v
}

func CreateOf[T any](c *Container, params ...any) (T, error) {
	abstract := DeclareOf[T](c)
	v, err := c.create(abstract, false, params)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](abstract, v)
}

// Invoke calls fn and asserts its result.
func Invoke[T any](c *Container, fn any, params ...any) (T, error) {
	v, err := c.Call(fn, params...)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](fmt.Sprintf("%T", fn), v)
}

// BindType binds abstract A to concrete C, which must implement A.
func BindType[A, C any](c *Container, shared bool) error {
	a, concrete := typeOf[A](), typeOf[C]()
	if a.Kind() == reflect.Interface && !concrete.Implements(a) {
		return ErrInvalidFactory.
			WithDetail("abstract", TypeName(a)).
			WithDetail("reason", concrete.String()+" does not implement it")
	}
	return c.Bind(DeclareOf[A](c), concrete, shared)
}

func ShareType[A, C any](c *Container) error {
	return BindType[A, C](c, true)
}

// OnType registers a listener for every instance assignable to T.
func OnType[T any](c *Container, stage Stage, fn func(instance T, c *Container)) {
	c.On(DeclareOf[T](c), stage, func(instance any, c *Container) {
		if v, ok := instance.(T); ok {
			fn(v, c)
		}
	})
}

// DeclareOf makes T buildable by name and returns its abstract.
func DeclareOf[T any](c *Container) string {
	return c.k.types.learn(typeOf[T]())
}

func cast[T any](abstract string, v any) (T, error) {
	if v == nil {
		var zero T
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return t, ErrUnresolvedDependency.
			WithDetail("abstract", abstract).
			WithDetail("reason", fmt.Sprintf("got %T, want %s", v, typeOf[T]()))
	}
	return t, nil
}
