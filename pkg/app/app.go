package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
)

type app struct {
	container       contracts.DIContainer
	registry        contracts.AppRegistry
	info            AppInfo
	appCtx          *appContext
	appCtxMu        sync.RWMutex
	isRunning       int32
	shutdownTimeout time.Duration
	ready           chan struct{}
}

type Option func(*app)

func WithGracefulTimeout(timeout time.Duration) Option {
	return func(a *app) {
		a.shutdownTimeout = timeout
	}
}

// New builds an application around c. A nil container or registry is
// replaced by a fresh one.
func New(info AppInfo, c contracts.DIContainer, registry contracts.AppRegistry, opts ...Option) contracts.App {
	if c == nil {
		c = container.New()
	}
	if registry == nil {
		registry = NewRegistry()
	}

	a := &app{
		container:       c,
		registry:        registry,
		info:            info,
		shutdownTimeout: 10 * time.Second,
		ready:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *app) Register(module contracts.AppModule) error {
	return a.registry.Register(module)
}

func (a *app) getAppCtx() *appContext {
	a.appCtxMu.RLock()
	defer a.appCtxMu.RUnlock()
	return a.appCtx
}

func (a *app) setAppCtx(ctx *appContext) {
	a.appCtxMu.Lock()
	defer a.appCtxMu.Unlock()
	a.appCtx = ctx
}

// Run registers every module with the container, starts them in order and
// blocks until the context is stopped or a termination signal arrives. The
// app context is available from the container as "app.context".
func (a *app) Run() error {
	if !atomic.CompareAndSwapInt32(&a.isRunning, 0, 1) {
		return ErrAppRun.WithDetail("reason", "application is already running")
	}

	ctx := newAppContext(a.info, a.container, a.registry)
	a.setAppCtx(ctx)

	if err := a.container.Instance(contracts.AppContextName, contracts.AppContext(ctx)); err != nil {
		ctx.Stop()
		return ErrAppRun.WithDetail("reason", "app context not registered").WithCause(err)
	}

	modules := a.registry.All()
	for _, module := range modules {
		if err := module.Register(a.container); err != nil {
			ctx.Stop()
			return ErrModuleRegister.
				WithDetail("module", module.Name()).
				WithCause(err)
		}
	}

	for i, module := range modules {
		if err := module.Start(ctx); err != nil {
			ctx.Stop()
			_ = stopModules(ctx, modules[:i])
			return ErrModuleStart.
				WithDetail("module", module.Name()).
				WithCause(err)
		}
	}

	go setupSignalHandler(ctx)
	close(a.ready)

	<-ctx.Ctx().Done()
	return a.shutdown(ctx)
}

func (a *app) shutdown(ctx *appContext) error {
	if a.shutdownTimeout <= 0 {
		return a.registry.Shutdown(ctx)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.registry.Shutdown(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-shutdownCtx.Done():
		return ErrAppStop.WithDetail("reason", "graceful shutdown timed out after "+a.shutdownTimeout.String())
	}
}

func setupSignalHandler(ctx *appContext) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		ctx.stop(fmt.Errorf("received %s", sig))
	case <-ctx.Ctx().Done():
	}
}
