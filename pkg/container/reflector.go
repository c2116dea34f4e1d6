package container

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
)

// Descriptor is the reflected shape of one constructor or callable parameter.
// Declared is nil for scalar and untyped slots.
type Descriptor struct {
	Name       string
	Type       reflect.Type
	Declared   reflect.Type
	Optional   bool
	Default    any
	HasDefault bool
	Variadic   bool

	index []int
}

// DeclaredName is the abstract of the declared type, or "" for untyped slots.
func (d Descriptor) DeclaredName() string {
	return TypeName(d.Declared)
}

type structInfo struct {
	descs []Descriptor
	err   error
}

// reflector caches descriptors per type. Descriptors depend only on the
// type, so closures sharing a signature share an entry.
type reflector struct {
	mu      sync.RWMutex
	funcs   map[reflect.Type][]Descriptor
	structs map[reflect.Type]structInfo
}

func newReflector() *reflector {
	return &reflector{
		funcs:   make(map[reflect.Type][]Descriptor),
		structs: make(map[reflect.Type]structInfo),
	}
}

func (r *reflector) describeFunc(t reflect.Type) []Descriptor {
	r.mu.RLock()
	descs, ok := r.funcs[t]
	r.mu.RUnlock()
	if ok {
		return descs
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if descs, ok = r.funcs[t]; ok {
		return descs
	}

	descs = make([]Descriptor, t.NumIn())
	for i := range descs {
		in := t.In(i)
		descs[i] = Descriptor{Type: in, Declared: declaredType(in)}
		if t.IsVariadic() && i == t.NumIn()-1 {
			descs[i].Declared = nil
			descs[i].Optional = true
			descs[i].Variadic = true
		}
	}
	r.funcs[t] = descs
	return descs
}

// describeStruct turns the exported fields of a struct type into descriptors.
//
//	type Mailer struct {
//	    Transport Transport                    // typed, required
//	    From      string    `default:"noreply"` // untyped, optional
//	    Retries   int       `inject:"name=attempts,optional"`
//	    cache     map[string]string             // unexported, ignored
//	    Debug     bool      `inject:"-"`         // skipped
//	}
func (r *reflector) describeStruct(t reflect.Type) ([]Descriptor, error) {
	r.mu.RLock()
	info, ok := r.structs[t]
	r.mu.RUnlock()
	if ok {
		return info.descs, info.err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if info, ok = r.structs[t]; ok {
		return info.descs, info.err
	}

	info = structInfo{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		opts := parseInjectTag(field.Tag.Get("inject"))
		if opts.skip {
			continue
		}

		d := Descriptor{
			Name:     field.Name,
			Type:     field.Type,
			Declared: declaredType(field.Type),
			Optional: opts.optional,
			index:    field.Index,
		}
		if opts.name != "" {
			d.Name = opts.name
		}

		if literal, ok := field.Tag.Lookup("default"); ok {
			value, err := decodeDefault(literal, field.Type)
			if err != nil {
				info.err = ErrInvalidFactory.
					WithDetail("abstract", TypeName(t)).
					WithDetail("reason", "bad default for field "+field.Name).
					WithCause(err)
				break
			}
			d.Optional = true
			d.Default = value
			d.HasDefault = true
		}

		info.descs = append(info.descs, d)
	}

	if info.err != nil {
		info.descs = nil
	}
	r.structs[t] = info
	return info.descs, info.err
}

func decodeDefault(literal string, t reflect.Type) (any, error) {
	switch {
	case t == durationType:
		d, err := time.ParseDuration(literal)
		return d, err
	case t.Kind() == reflect.String:
		return reflect.ValueOf(literal).Convert(t).Interface(), nil
	}

	ptr := reflect.New(t)
	if err := yaml.Unmarshal([]byte(literal), ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

type tagOptions struct {
	skip     bool
	optional bool
	name     string
}

// parseInjectTag reads `inject:"-"`, `inject:"optional"`, `inject:"name=x"`
// and comma separated combinations.
func parseInjectTag(tag string) tagOptions {
	opts := tagOptions{}
	if tag == "-" {
		opts.skip = true
		return opts
	}

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "optional":
			opts.optional = true
		case strings.HasPrefix(part, "name="):
			opts.name = strings.TrimPrefix(part, "name=")
		}
	}
	return opts
}
