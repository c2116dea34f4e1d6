package container

import (
	"reflect"

	"github.com/shuldan/kernel/pkg/contracts"
)

type Option func(*kernel)

// WithLogger enables trace and debug records for registrations and
// resolutions. Without it the container does not log.
func WithLogger(logger contracts.Logger) Option {
	return func(k *kernel) {
		k.logger = logger
	}
}

// WithTypes declares types up front so they can be resolved by name.
func WithTypes(types ...reflect.Type) Option {
	return func(k *kernel) {
		for _, t := range types {
			k.types.learn(t)
		}
	}
}

const defaultReentryLimit = 1024

// WithReentryLimit caps how many builds of one abstract may be in progress
// at once across all goroutines. Past the cap Resolve fails with
// ErrCircularResolution instead of recursing without end. The default is
// 1024.
func WithReentryLimit(n int) Option {
	return func(k *kernel) {
		if n > 0 {
			k.reentryLimit = n
		}
	}
}
