package app

import (
	"sync"

	"github.com/shuldan/kernel/pkg/contracts"
	"github.com/shuldan/kernel/pkg/errors"
)

type registry struct {
	modules []contracts.AppModule
	names   map[string]bool
	mu      sync.RWMutex
}

func NewRegistry() contracts.AppRegistry {
	return &registry{names: make(map[string]bool)}
}

func (r *registry) Register(module contracts.AppModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.names[module.Name()] {
		return ErrDuplicateModule.WithDetail("module", module.Name())
	}
	r.names[module.Name()] = true
	r.modules = append(r.modules, module)
	return nil
}

func (r *registry) All() []contracts.AppModule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]contracts.AppModule, len(r.modules))
	copy(result, r.modules)
	return result
}

// Shutdown stops every module in reverse registration order and joins the
// failures.
func (r *registry) Shutdown(ctx contracts.AppContext) error {
	return stopModules(ctx, r.All())
}

func stopModules(ctx contracts.AppContext, modules []contracts.AppModule) error {
	var errs []error
	for i := len(modules) - 1; i >= 0; i-- {
		if err := modules[i].Stop(ctx); err != nil {
			errs = append(errs, ErrModuleStop.
				WithDetail("module", modules[i].Name()).
				WithCause(err))
		}
	}
	return errors.Join(errs...)
}
