package container

import (
	"reflect"
	"strings"
)

// NamedArg is an argument addressed to a parameter by name. Any other value
// passed to Resolve, Create or Call is positional.
type NamedArg struct {
	Name  string
	Value any
}

// Named builds a named argument. Names match parameter names case-insensitively.
//
//	c.Call(send, container.Named("subject", "hi"))
func Named(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

type argPool struct {
	positional []any
	used       []bool
	named      map[string]any
}

func newArgPool(params []any) *argPool {
	p := &argPool{}
	for _, param := range params {
		if n, ok := param.(NamedArg); ok {
			if p.named == nil {
				p.named = make(map[string]any)
			}
			p.named[strings.ToLower(n.Name)] = n.Value
			continue
		}
		p.positional = append(p.positional, param)
	}
	p.used = make([]bool, len(p.positional))
	return p
}

func (p *argPool) take(name string) (any, bool) {
	if name == "" || p.named == nil {
		return nil, false
	}
	key := strings.ToLower(name)
	v, ok := p.named[key]
	if ok {
		delete(p.named, key)
	}
	return v, ok
}

// takeInstance consumes the first unused positional value assignable to t.
func (p *argPool) takeInstance(t reflect.Type) (any, bool) {
	for i, v := range p.positional {
		if p.used[i] || v == nil {
			continue
		}
		if reflect.TypeOf(v).AssignableTo(t) {
			p.used[i] = true
			return v, true
		}
	}
	return nil, false
}

func (p *argPool) next() (any, bool) {
	for i, v := range p.positional {
		if !p.used[i] {
			p.used[i] = true
			return v, true
		}
	}
	return nil, false
}

// rest consumes every unused positional value assignable or convertible to
// elem.
func (p *argPool) rest(elem reflect.Type) []any {
	var out []any
	for i, v := range p.positional {
		if p.used[i] {
			continue
		}
		if v == nil {
			p.used[i] = true
			out = append(out, v)
			continue
		}
		if t := reflect.TypeOf(v); t.AssignableTo(elem) || convertible(t.Kind(), elem.Kind()) {
			p.used[i] = true
			out = append(out, v)
		}
	}
	return out
}
