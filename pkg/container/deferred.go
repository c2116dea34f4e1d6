package container

// Deferred resolves an abstract, or calls one of its methods, when invoked.
type Deferred struct {
	c        *Container
	abstract string
	method   string
}

func (d *Deferred) Abstract() string { return d.abstract }

func (d *Deferred) Method() string { return d.method }

// Invoke passes params to Resolve when no method was given, or to the
// method call otherwise.
func (d *Deferred) Invoke(params ...any) (any, error) {
	if d.method == "" {
		return d.c.resolve(d.abstract, params)
	}
	return d.c.CallMethod(d.abstract, d.method, params...)
}
