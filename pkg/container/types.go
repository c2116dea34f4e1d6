package container

import (
	"reflect"
	"sync"
	"time"

	"github.com/shuldan/kernel/pkg/contracts"
)

var (
	containerType   = reflect.TypeOf((*Container)(nil))
	diContainerType = reflect.TypeOf((*contracts.DIContainer)(nil)).Elem()
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
	durationType    = reflect.TypeOf(time.Duration(0))

	// structs that behave like scalars and are never built by the container
	valueTypes = map[reflect.Type]bool{
		reflect.TypeOf(time.Time{}): true,
	}
)

// TypeName returns the abstract under which t is registered: "<pkgpath>.<Name>"
// for named types, "*" + element name for pointers, t.String() otherwise.
//
//	container.TypeName(reflect.TypeOf(&sql.DB{})) // "*database/sql.DB"
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr && t.Name() == "" {
		return "*" + TypeName(t.Elem())
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// KeyOf returns TypeName for T. Interfaces are named by the interface itself:
//
//	container.KeyOf[contracts.Logger]() // ".../pkg/contracts.Logger"
func KeyOf[T any]() string {
	return TypeName(typeOf[T]())
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// declaredType reports the type constraint of a parameter, or nil when the
// parameter is a scalar or untyped slot.
func declaredType(t reflect.Type) reflect.Type {
	if valueTypes[t] {
		return nil
	}
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() > 0 {
			return t
		}
	case reflect.Struct:
		return t
	case reflect.Ptr:
		if t.Elem().Kind() == reflect.Struct && !valueTypes[t.Elem()] {
			return t
		}
	}
	return nil
}

type typeTable struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

func newTypeTable() *typeTable {
	return &typeTable{types: make(map[string]reflect.Type)}
}

func (tt *typeTable) learn(t reflect.Type) string {
	name := TypeName(t)

	tt.mu.RLock()
	_, known := tt.types[name]
	tt.mu.RUnlock()
	if known {
		return name
	}

	tt.mu.Lock()
	tt.types[name] = t
	tt.mu.Unlock()
	return name
}

func (tt *typeTable) lookup(name string) (reflect.Type, bool) {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	t, ok := tt.types[name]
	return t, ok
}
