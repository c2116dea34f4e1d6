package container

import (
	"fmt"
	"reflect"
	"sync"
)

// Callable is a func together with the parameter names, defaults and optional
// flags that Go reflection cannot recover on its own.
//
//	send := container.Func(mailer.Send, "to", "subject").Default("subject", "(none)")
//	c.Call(send, container.Named("to", "ops@example.com"))
type Callable struct {
	fn       reflect.Value
	names    []string
	defaults map[string]any
	optional map[string]bool

	once  sync.Once
	descs []Descriptor
	err   error
}

// Func wraps fn. names are assigned to fn's parameters in order; parameters
// past the end of names stay unnamed.
func Func(fn any, names ...string) *Callable {
	return &Callable{
		fn:       reflect.ValueOf(fn),
		names:    names,
		defaults: make(map[string]any),
		optional: make(map[string]bool),
	}
}

// Default makes the named parameter optional with the given value.
func (c *Callable) Default(name string, value any) *Callable {
	c.defaults[name] = value
	return c
}

// Optional makes the named parameter optional with its zero value.
func (c *Callable) Optional(name string) *Callable {
	c.optional[name] = true
	return c
}

func (c *Callable) valid() bool {
	return c.fn.IsValid() && c.fn.Kind() == reflect.Func && !c.fn.IsNil()
}

func (c *Callable) typeName() string {
	if !c.fn.IsValid() {
		return "<nil>"
	}
	return c.fn.Type().String()
}

func (c *Callable) describe(r *reflector) ([]Descriptor, error) {
	c.once.Do(func() {
		t := c.fn.Type()
		if len(c.names) > t.NumIn() {
			c.err = fmt.Errorf("%d names given for %d parameters", len(c.names), t.NumIn())
			return
		}

		base := r.describeFunc(t)
		descs := make([]Descriptor, len(base))
		copy(descs, base)

		known := make(map[string]bool, len(c.names))
		for i, name := range c.names {
			descs[i].Name = name
			known[name] = true
		}
		for name := range c.optional {
			if !known[name] {
				c.err = fmt.Errorf("optional parameter %q is not named", name)
				return
			}
		}
		for name := range c.defaults {
			if !known[name] {
				c.err = fmt.Errorf("default for %q names no parameter", name)
				return
			}
		}

		for i := range descs {
			name := descs[i].Name
			if v, ok := c.defaults[name]; ok && name != "" {
				descs[i].Optional = true
				descs[i].Default = v
				descs[i].HasDefault = true
			}
			if c.optional[name] && name != "" {
				descs[i].Optional = true
			}
		}
		c.descs = descs
	})
	return c.descs, c.err
}

func (c *Callable) call(args []reflect.Value) []reflect.Value {
	if c.fn.Type().IsVariadic() {
		return c.fn.CallSlice(args)
	}
	return c.fn.Call(args)
}

// asCallable accepts a *Callable or any non-nil func value.
func asCallable(v any) (*Callable, bool) {
	switch fn := v.(type) {
	case nil:
		return nil, false
	case *Callable:
		return fn, fn != nil && fn.valid()
	}
	c := Func(v)
	return c, c.valid()
}

// results splits a call's return values into a value and a trailing error.
// No value gives nil, one gives that value, several give []any.
func results(out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}
	return values, nil
}
