package contracts

import (
	"context"
	"time"
)

const (
	AppContextName       = "app.context"
	ContainerName        = "container"
	ConfigModuleName     = "config"
	LoggerModuleName     = "logger"
	DatabaseModuleName   = "database"
	RedisModuleName      = "redis"
	ContainerManifestKey = "container"
)

// DIContainer is the container surface handed to modules and factories.
// Positional arguments are plain values; named arguments are built with
// container.Named.
type DIContainer interface {
	Bind(abstract string, factory any, shared bool) error
	Share(abstract string, factory any) error
	Instance(abstract string, instance any) error
	Alias(abstract, alias string) error
	Bound(name string) bool
	Resolved(name string) bool
	Resolve(abstract string, params ...any) (any, error)
	Create(abstract string, params ...any) (any, error)
	Call(callable any, params ...any) (any, error)
}

type AppContext interface {
	Ctx() context.Context
	Container() DIContainer
	AppName() string
	Version() string
	Environment() string
	StartTime() time.Time
	StopTime() time.Time
	IsRunning() bool
	Stop()
	AppRegistry() AppRegistry
}

type AppModule interface {
	Name() string
	Register(container DIContainer) error
	Start(ctx AppContext) error
	Stop(ctx AppContext) error
}

type AppRegistry interface {
	Register(module AppModule) error
	All() []AppModule
	Shutdown(ctx AppContext) error
}

type App interface {
	Register(module AppModule) error
	Run() error
}
