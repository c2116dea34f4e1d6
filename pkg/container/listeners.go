package container

import (
	"reflect"
	"sync"
)

type Stage int

const (
	// Before listeners run before the instance is handed back.
	Before Stage = iota
	// After listeners run once every Before listener has seen the instance.
	After
)

func (s Stage) String() string {
	if s == Before {
		return "before"
	}
	return "after"
}

type Listener func(instance any, c *Container)

type listenerEntry struct {
	name string
	fn   Listener
}

type listeners struct {
	mu      sync.RWMutex
	byStage [2][]listenerEntry
}

func newListeners() *listeners {
	return &listeners{}
}

func (l *listeners) add(name string, stage Stage, fn Listener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byStage[stage] = append(l.byStage[stage], listenerEntry{name: name, fn: fn})
}

func (l *listeners) named(name string, stage Stage) []Listener {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Listener
	for _, e := range l.byStage[stage] {
		if e.name == name {
			out = append(out, e.fn)
		}
	}
	return out
}

func (l *listeners) snapshot(stage Stage) []listenerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]listenerEntry, len(l.byStage[stage]))
	copy(out, l.byStage[stage])
	return out
}

// fire runs every listener whose name is the requested or canonical abstract,
// or denotes a type the instance is assignable to. Each listener runs at most
// once per resolution.
func (l *listeners) fire(types *typeTable, requested, canonical string, instance any, c *Container) {
	var runtime reflect.Type
	if instance != nil {
		runtime = reflect.TypeOf(instance)
	}

	matches := func(name string) bool {
		if name == requested || name == canonical {
			return true
		}
		if runtime == nil {
			return false
		}
		if t, ok := types.lookup(name); ok {
			return runtime.AssignableTo(t)
		}
		return TypeName(runtime) == name
	}

	for _, stage := range []Stage{Before, After} {
		for _, e := range l.snapshot(stage) {
			if matches(e.name) {
				e.fn(instance, c)
			}
		}
	}
}

// On registers fn for instances resolved under name, or whose runtime type is
// assignable to the type name denotes. Matching by assignability needs the
// container to know the type: an interface name only matches once it has
// been declared (Declare, DeclareOf, WithTypes) or learned from a binding or
// field. OnType declares the type itself. An unknown name still matches an
// instance whose concrete type has exactly that name.
func (c *Container) On(name string, stage Stage, fn Listener) {
	c.k.listeners.add(name, stage, fn)
}

// Listeners returns the listeners registered under exactly name.
func (c *Container) Listeners(name string, stage Stage) []Listener {
	return c.k.listeners.named(name, stage)
}
