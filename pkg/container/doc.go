// Package container builds object graphs from named bindings, struct
// autowiring and argument matching.
//
// Abstracts are strings. Types are named with TypeName or KeyOf:
//
//	c := container.New()
//	_ = container.ShareType[Notifier, *MailNotifier](c)
//	n, err := container.Make[Notifier](c)
//
// A struct is built by filling its exported fields. Interface, struct and
// pointer-to-struct fields are resolved from the container; other fields take
// the positional or named arguments given to Resolve, Create or Call:
//
//	type MailNotifier struct {
//	    Transport Transport
//	    From      string        `default:"noreply@example.com"`
//	    Timeout   time.Duration `default:"5s"`
//	    Subject   string        `inject:"name=subject,optional"`
//	}
//
//	c.Resolve(container.KeyOf[*MailNotifier](), container.Named("from", "ops@example.com"))
//
// Factories may ask the container for other abstracts through a
// *Container or contracts.DIContainer parameter. Resolving the abstract that
// is being built through that handle fails with ErrCircularResolution;
// Create on the same abstract is allowed because it never calls a factory.
// A factory that resolves its own abstract through a container captured in a
// closure is stopped once the abstract has too many builds in flight (see
// WithReentryLimit), also with ErrCircularResolution.
package container
