package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shuldan/kernel/pkg/contracts"
)

type AppInfo struct {
	AppName     string
	Version     string
	Environment string
}

// errStopped is the cancellation cause when Stop is called directly.
var errStopped = errors.New("application stopped")

// appContext is registered in the container as contracts.AppContextName, so
// factories can depend on it like on any other instance.
type appContext struct {
	info      AppInfo
	ctx       context.Context
	cancel    context.CancelCauseFunc
	container contracts.DIContainer
	registry  contracts.AppRegistry
	started   time.Time

	once    sync.Once
	mu      sync.RWMutex
	stopped time.Time
}

var _ contracts.AppContext = (*appContext)(nil)

func newAppContext(info AppInfo, container contracts.DIContainer, registry contracts.AppRegistry) *appContext {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &appContext{
		info:      info,
		ctx:       ctx,
		cancel:    cancel,
		container: container,
		registry:  registry,
		started:   time.Now(),
	}
}

func (c *appContext) Ctx() context.Context               { return c.ctx }
func (c *appContext) Container() contracts.DIContainer   { return c.container }
func (c *appContext) AppRegistry() contracts.AppRegistry { return c.registry }
func (c *appContext) AppName() string                    { return c.info.AppName }
func (c *appContext) Version() string                    { return c.info.Version }
func (c *appContext) Environment() string                { return c.info.Environment }
func (c *appContext) StartTime() time.Time               { return c.started }

func (c *appContext) StopTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopped
}

func (c *appContext) IsRunning() bool {
	return c.ctx.Err() == nil
}

func (c *appContext) Stop() {
	c.stop(errStopped)
}

// stop cancels the context once; later calls keep the first cause, which
// context.Cause(ctx.Ctx()) reports.
func (c *appContext) stop(cause error) {
	c.once.Do(func() {
		c.mu.Lock()
		c.stopped = time.Now()
		c.mu.Unlock()
		c.cancel(cause)
	})
}
