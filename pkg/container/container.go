package container

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/shuldan/kernel/pkg/contracts"
)

type kernel struct {
	id        uuid.UUID
	registry  *registry
	types     *typeTable
	reflector *reflector
	listeners *listeners
	logger    contracts.Logger

	reentryLimit int
}

func (k *kernel) trace(msg string, args ...any) {
	if k.logger != nil {
		k.logger.Trace(msg, append(args, "container", k.id.String())...)
	}
}

func (k *kernel) debug(msg string, args ...any) {
	if k.logger != nil {
		k.logger.Debug(msg, append(args, "container", k.id.String())...)
	}
}

// Container resolves abstracts to instances. Handles passed into factories
// share the root's state and additionally carry the chain of abstracts being
// resolved, which is how re-entrant resolution is detected.
type Container struct {
	k     *kernel
	chain []string
}

var _ contracts.DIContainer = (*Container)(nil)

func New(opts ...Option) *Container {
	k := &kernel{
		id:        uuid.New(),
		registry:  newRegistry(),
		types:     newTypeTable(),
		reflector: newReflector(),
		listeners: newListeners(),

		reentryLimit: defaultReentryLimit,
	}
	for _, opt := range opts {
		opt(k)
	}

	c := &Container{k: k}
	c.k.registry.instance(contracts.ContainerName, c)
	c.k.types.learn(containerType)
	return c
}

// ID identifies the container in log records.
func (c *Container) ID() string {
	return c.k.id.String()
}

// Bind registers factory for abstract. factory is one of:
//
//	nil                    build abstract itself by autowiring
//	func / *Callable       invoke it, filling its parameters like Call
//	reflect.Type           build that type instead (one level)
//	string                 build the type with that name instead (one level)
func (c *Container) Bind(abstract string, factory any, shared bool) error {
	if abstract == "" {
		return ErrInvalidFactory.
			WithDetail("abstract", `""`).
			WithDetail("reason", "empty abstract")
	}

	b, err := c.binding(abstract, factory, shared)
	if err != nil {
		return err
	}
	c.k.registry.bind(b)
	c.k.trace("binding registered", "abstract", abstract, "kind", b.kind(), "shared", shared)
	return nil
}

func (c *Container) Share(abstract string, factory any) error {
	return c.Bind(abstract, factory, true)
}

func (c *Container) binding(abstract string, factory any, shared bool) (*binding, error) {
	b := &binding{abstract: abstract, shared: shared}

	switch f := factory.(type) {
	case nil:
	case string:
		if f != abstract {
			b.target = f
		}
	case reflect.Type:
		if name := c.k.types.learn(f); name != abstract {
			b.target = name
		}
	default:
		fn, ok := asCallable(factory)
		if !ok {
			return nil, ErrInvalidFactory.
				WithDetail("abstract", abstract).
				WithDetail("reason", fmt.Sprintf("%T is neither a func nor a type", factory))
		}
		t := fn.fn.Type()
		if t.NumOut() == 0 || t.Out(0) == errorType {
			return nil, ErrInvalidFactory.
				WithDetail("abstract", abstract).
				WithDetail("reason", "factory "+t.String()+" returns no value")
		}
		if _, err := fn.describe(c.k.reflector); err != nil {
			return nil, ErrInvalidFactory.
				WithDetail("abstract", abstract).
				WithDetail("reason", err.Error())
		}
		c.k.types.learn(t.Out(0))
		b.callable = fn
	}
	return b, nil
}

// Instance registers obj as the instance of abstract. It is returned by every
// later Resolve, whatever the parameters.
func (c *Container) Instance(abstract string, obj any) error {
	if abstract == "" {
		return ErrInvalidFactory.
			WithDetail("abstract", `""`).
			WithDetail("reason", "empty abstract")
	}
	if obj != nil {
		c.k.types.learn(reflect.TypeOf(obj))
	}
	c.k.registry.instance(abstract, obj)
	c.k.trace("instance registered", "abstract", abstract)
	return nil
}

// Alias makes alias resolve as abstract.
func (c *Container) Alias(abstract, alias string) error {
	if err := c.k.registry.alias(abstract, alias); err != nil {
		return err
	}
	c.k.trace("alias registered", "abstract", abstract, "alias", alias)
	return nil
}

// Bound reports whether name has a binding, an alias or an instance.
func (c *Container) Bound(name string) bool {
	return c.k.registry.bound(name)
}

// Resolved reports whether an instance of name already exists.
func (c *Container) Resolved(name string) bool {
	canonical, err := c.k.registry.canonical(name)
	if err != nil {
		return false
	}
	return c.k.registry.resolved(canonical)
}

// Forget drops the binding and any instance of abstract. Aliases pointing at
// it are kept.
func (c *Container) Forget(abstract string) {
	c.k.registry.forget(abstract)
	c.k.trace("binding forgotten", "abstract", abstract)
}

// Bindings lists every abstract with a binding or an instance, sorted.
func (c *Container) Bindings() []string {
	return c.k.registry.keys()
}

// Declare makes types buildable by name and returns their abstracts.
func (c *Container) Declare(types ...reflect.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = c.k.types.learn(t)
	}
	return names
}

// Describe returns the parameters of target: a func, a *Callable, a
// reflect.Type or a known type name. Only struct and pointer-to-struct types
// have parameters of their own.
func (c *Container) Describe(target any) ([]Descriptor, error) {
	var t reflect.Type
	switch v := target.(type) {
	case reflect.Type:
		t = v
	case string:
		known, ok := c.k.types.lookup(v)
		if !ok {
			return nil, ErrUnresolvedDependency.
				WithDetail("abstract", v).
				WithDetail("reason", "unknown type name")
		}
		t = known
	default:
		fn, ok := asCallable(target)
		if !ok {
			return nil, ErrNotCallable.WithDetail("type", fmt.Sprintf("%T", target))
		}
		return fn.describe(c.k.reflector)
	}

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || valueTypes[t] {
		return []Descriptor{}, nil
	}
	return c.k.reflector.describeStruct(t)
}

func (c *Container) Resolve(abstract string, params ...any) (any, error) {
	return c.resolve(abstract, params)
}

func (c *Container) resolve(abstract string, params []any) (any, error) {
	canonical, err := c.k.registry.canonical(abstract)
	if err != nil {
		return nil, err
	}

	b, inst, ok := c.k.registry.lookup(canonical)
	if ok && (inst.explicit || len(params) == 0) {
		return inst.value, nil
	}

	if c.building(canonical) {
		return nil, ErrCircularResolution.
			WithDetail("abstract", canonical).
			WithDetail("path", c.path(canonical))
	}

	value, err := c.guarded(canonical, b, params)
	if err != nil {
		return nil, err
	}

	if b != nil && b.shared && len(params) == 0 {
		value, _ = c.k.registry.store(canonical, b, value)
	}
	c.k.debug("resolved", "abstract", abstract, "canonical", canonical, "depth", len(c.chain))

	c.k.listeners.fire(c.k.types, abstract, canonical, value, c)
	return value, nil
}

// guarded builds canonical on a handle extended by canonical. The in-flight
// count catches re-entry through handles that do not carry the chain, such
// as a root container captured by a factory closure.
func (c *Container) guarded(canonical string, b *binding, params []any) (any, error) {
	if !c.k.registry.enter(canonical, c.k.reentryLimit) {
		return nil, ErrCircularResolution.
			WithDetail("abstract", canonical).
			WithDetail("path", fmt.Sprintf("%s re-entered %d times", canonical, c.k.reentryLimit))
	}
	defer c.k.registry.leave(canonical)

	return c.push(canonical).build(canonical, b, params)
}

// Create always builds a new instance of abstract. It never reads or writes
// the shared cache and never invokes a callable factory, so a factory may
// call Create on its own abstract. A binding to another type is followed one
// level.
func (c *Container) Create(abstract string, params ...any) (any, error) {
	return c.create(abstract, false, params)
}

// CreateExact is Create without following a type binding.
func (c *Container) CreateExact(abstract string, params ...any) (any, error) {
	return c.create(abstract, true, params)
}

func (c *Container) create(abstract string, exact bool, params []any) (any, error) {
	target := abstract
	if !exact {
		if b, _, _ := c.k.registry.lookup(abstract); b != nil && b.target != "" {
			target = b.target
		}
	}
	return c.buildType(target, params)
}

func (c *Container) build(canonical string, b *binding, params []any) (any, error) {
	switch {
	case b != nil && b.callable != nil:
		return c.invoke(canonical, b.callable, params)
	case b != nil && b.target != "":
		return c.buildType(b.target, params)
	default:
		return c.buildType(canonical, params)
	}
}

func (c *Container) invoke(abstract string, fn *Callable, params []any) (any, error) {
	descs, err := fn.describe(c.k.reflector)
	if err != nil {
		return nil, ErrInvalidFactory.
			WithDetail("abstract", abstract).
			WithDetail("reason", err.Error())
	}

	args, err := c.match(abstract, descs, params)
	if err != nil {
		return nil, err
	}

	value, err := results(fn.call(args))
	if err != nil {
		return nil, ErrFactoryFailed.WithDetail("abstract", abstract).WithCause(err)
	}
	return value, nil
}

func (c *Container) buildType(name string, params []any) (any, error) {
	t, ok := c.k.types.lookup(name)
	if !ok {
		return nil, ErrUnresolvedDependency.
			WithDetail("abstract", name).
			WithDetail("reason", "no binding and no known type")
	}

	switch {
	case t.Kind() == reflect.Struct && !valueTypes[t]:
		v, err := c.buildStruct(name, t, params)
		if err != nil {
			return nil, err
		}
		return v.Elem().Interface(), nil
	case t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct && !valueTypes[t.Elem()]:
		v, err := c.buildStruct(name, t.Elem(), params)
		if err != nil {
			return nil, err
		}
		return v.Interface(), nil
	case t.Kind() == reflect.Interface:
		return nil, ErrUnresolvedDependency.
			WithDetail("abstract", name).
			WithDetail("reason", "interface has no binding")
	default:
		return nil, ErrUnresolvedDependency.
			WithDetail("abstract", name).
			WithDetail("reason", t.Kind().String()+" cannot be autowired")
	}
}

func (c *Container) buildStruct(owner string, t reflect.Type, params []any) (reflect.Value, error) {
	descs, err := c.k.reflector.describeStruct(t)
	if err != nil {
		return reflect.Value{}, err
	}

	args, err := c.match(owner, descs, params)
	if err != nil {
		return reflect.Value{}, err
	}

	v := reflect.New(t)
	for i, d := range descs {
		v.Elem().FieldByIndex(d.index).Set(args[i])
	}
	return v, nil
}

// Call invokes callable, a func or *Callable, filling its parameters from
// params and the container. A trailing non-nil error result is returned as is.
func (c *Container) Call(callable any, params ...any) (any, error) {
	fn, ok := asCallable(callable)
	if !ok {
		return nil, ErrNotCallable.WithDetail("type", fmt.Sprintf("%T", callable))
	}

	owner := fn.typeName()
	descs, err := fn.describe(c.k.reflector)
	if err != nil {
		return nil, ErrInvalidFactory.
			WithDetail("abstract", owner).
			WithDetail("reason", err.Error())
	}

	args, err := c.match(owner, descs, params)
	if err != nil {
		return nil, err
	}
	return results(fn.call(args))
}

// CallMethod resolves abstract and calls its exported method.
func (c *Container) CallMethod(abstract, method string, params ...any) (any, error) {
	target, err := c.resolve(abstract, nil)
	if err != nil {
		return nil, err
	}

	m := reflect.ValueOf(target).MethodByName(method)
	if !m.IsValid() {
		return nil, ErrMethodNotFound.
			WithDetail("method", method).
			WithDetail("abstract", abstract)
	}
	return c.Call(m.Interface(), params...)
}

// Provide returns a handle that resolves abstract, or calls method on it,
// when invoked.
func (c *Container) Provide(abstract, method string) *Deferred {
	return &Deferred{c: c, abstract: abstract, method: method}
}

func (c *Container) push(abstract string) *Container {
	chain := make([]string, len(c.chain), len(c.chain)+1)
	copy(chain, c.chain)
	return &Container{k: c.k, chain: append(chain, abstract)}
}

func (c *Container) building(abstract string) bool {
	for _, name := range c.chain {
		if name == abstract {
			return true
		}
	}
	return false
}

func (c *Container) path(abstract string) string {
	return strings.Join(append(append([]string{}, c.chain...), abstract), " -> ")
}
