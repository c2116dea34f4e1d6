package container

import (
	"fmt"
	"reflect"

	"github.com/shuldan/kernel/pkg/errors"
)

// match builds the argument list for descs from params. Named values win for
// their slot; typed slots take an assignable positional value or are resolved
// from the container; untyped slots then take the remaining positional values
// in order. Matching typed slots first keeps the result independent of the
// order in which parameters are declared.
func (c *Container) match(owner string, descs []Descriptor, params []any) ([]reflect.Value, error) {
	pool := newArgPool(params)
	args := make([]reflect.Value, len(descs))
	filled := make([]bool, len(descs))

	for i, d := range descs {
		if v, ok := pool.take(d.Name); ok {
			arg, err := assign(owner, i, d, v)
			if err != nil {
				return nil, err
			}
			args[i], filled[i] = arg, true
			continue
		}
		if d.Declared == nil {
			continue
		}

		if v, ok := pool.takeInstance(d.Declared); ok {
			args[i], filled[i] = reflect.ValueOf(v), true
			continue
		}

		v, err := c.resolveDeclared(d.Declared)
		if err != nil {
			if d.Optional && errors.Is(err, ErrUnresolvedDependency) {
				if args[i], err = defaultValue(owner, i, d); err != nil {
					return nil, err
				}
				filled[i] = true
				continue
			}
			return nil, err
		}
		if args[i], err = assign(owner, i, d, v); err != nil {
			return nil, err
		}
		filled[i] = true
	}

	for i, d := range descs {
		if filled[i] {
			continue
		}

		var err error
		switch {
		case d.Variadic:
			args[i], err = variadic(owner, i, d, pool.rest(d.Type.Elem()))
		default:
			v, ok := pool.next()
			switch {
			case ok:
				args[i], err = assign(owner, i, d, v)
			case d.Optional:
				args[i], err = defaultValue(owner, i, d)
			default:
				err = ErrMissingNamedParameter.
					WithDetail("parameter", label(i, d)).
					WithDetail("owner", owner)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return args, nil
}

func (c *Container) resolveDeclared(t reflect.Type) (any, error) {
	if t == containerType || t == diContainerType {
		return c, nil
	}
	return c.resolve(c.k.types.learn(t), nil)
}

func assign(owner string, i int, d Descriptor, v any) (reflect.Value, error) {
	if v == nil {
		switch d.Type.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(d.Type), nil
		}
		return reflect.Value{}, mismatch(owner, i, d, "nil")
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(d.Type) {
		return rv, nil
	}
	if convertible(rv.Kind(), d.Type.Kind()) {
		return rv.Convert(d.Type), nil
	}
	return reflect.Value{}, mismatch(owner, i, d, rv.Type().String())
}

func defaultValue(owner string, i int, d Descriptor) (reflect.Value, error) {
	if d.HasDefault {
		return assign(owner, i, d, d.Default)
	}
	return reflect.Zero(d.Type), nil
}

func variadic(owner string, i int, d Descriptor, values []any) (reflect.Value, error) {
	slice := reflect.MakeSlice(d.Type, 0, len(values))
	elem := Descriptor{Name: d.Name, Type: d.Type.Elem()}
	for _, v := range values {
		rv, err := assign(owner, i, elem, v)
		if err != nil {
			return reflect.Value{}, err
		}
		slice = reflect.Append(slice, rv)
	}
	return slice, nil
}

func convertible(from, to reflect.Kind) bool {
	return (isNumeric(from) && isNumeric(to)) || (from == reflect.String && to == reflect.String)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func mismatch(owner string, i int, d Descriptor, value string) error {
	return ErrArgumentMismatch.
		WithDetail("value", value).
		WithDetail("type", d.Type.String()).
		WithDetail("parameter", label(i, d)).
		WithDetail("owner", owner)
}

func label(i int, d Descriptor) string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("#%d", i)
}
