package container

import (
	"sort"
	"strings"
	"sync"
)

// binding is the registered rule for one abstract: a callable factory, a
// one-level remap to another type name, or neither (autowire the abstract).
type binding struct {
	abstract string
	callable *Callable
	target   string
	shared   bool
}

func (b *binding) kind() string {
	switch {
	case b.callable != nil:
		return "callable"
	case b.target != "":
		return "type"
	default:
		return "self"
	}
}

type cached struct {
	value    any
	explicit bool
}

type registry struct {
	mu        sync.RWMutex
	bindings  map[string]*binding
	aliases   map[string]string
	instances map[string]cached
	inflight  map[string]int
}

func newRegistry() *registry {
	return &registry{
		bindings:  make(map[string]*binding),
		aliases:   make(map[string]string),
		instances: make(map[string]cached),
		inflight:  make(map[string]int),
	}
}

func (r *registry) bind(b *binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.aliases, b.abstract)
	delete(r.instances, b.abstract)
	r.bindings[b.abstract] = b
}

func (r *registry) instance(abstract string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.aliases, abstract)
	r.instances[abstract] = cached{value: value, explicit: true}
}

func (r *registry) alias(abstract, alias string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := []string{alias, abstract}
	for current := abstract; ; {
		if current == alias {
			return ErrAliasCycle.WithDetail("path", strings.Join(path, " -> "))
		}
		next, ok := r.aliases[current]
		if !ok {
			break
		}
		path = append(path, next)
		current = next
	}

	r.aliases[alias] = abstract
	return nil
}

// canonical follows the alias chain from name until no alias remains.
func (r *registry) canonical(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{name: true}
	path := []string{name}
	for {
		next, ok := r.aliases[name]
		if !ok {
			return name, nil
		}
		path = append(path, next)
		if seen[next] {
			return "", ErrAliasCycle.WithDetail("path", strings.Join(path, " -> "))
		}
		seen[next] = true
		name = next
	}
}

func (r *registry) lookup(abstract string) (*binding, cached, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[abstract]
	return r.bindings[abstract], inst, ok
}

// store caches value for a shared binding unless another goroutine got there
// first or the abstract was rebound while value was being built. It returns
// the instance callers should use and whether value was cached.
func (r *registry) store(abstract string, b *binding, value any) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.instances[abstract]; ok {
		return existing.value, false
	}
	if r.bindings[abstract] != b {
		return value, false
	}
	r.instances[abstract] = cached{value: value}
	return value, true
}

// enter counts one more build of abstract in progress, refusing when limit
// builds are already running.
func (r *registry) enter(abstract string, limit int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight[abstract] >= limit {
		return false
	}
	r.inflight[abstract]++
	return true
}

func (r *registry) leave(abstract string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight[abstract]--; r.inflight[abstract] <= 0 {
		delete(r.inflight, abstract)
	}
}

func (r *registry) bound(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, hasBinding := r.bindings[name]
	_, hasAlias := r.aliases[name]
	_, hasInstance := r.instances[name]
	return hasBinding || hasAlias || hasInstance
}

func (r *registry) resolved(abstract string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.instances[abstract]
	return ok
}

func (r *registry) forget(abstract string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, abstract)
	delete(r.instances, abstract)
}

func (r *registry) keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(r.bindings)+len(r.instances))
	out := make([]string, 0, len(r.bindings)+len(r.instances))
	for k := range r.bindings {
		seen[k] = true
		out = append(out, k)
	}
	for k := range r.instances {
		if !seen[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
