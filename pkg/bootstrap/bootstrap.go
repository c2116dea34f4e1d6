package bootstrap

import (
	"os"
	"time"

	"github.com/shuldan/kernel/pkg/app"
	"github.com/shuldan/kernel/pkg/cache"
	"github.com/shuldan/kernel/pkg/config"
	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
	"github.com/shuldan/kernel/pkg/database"
	"github.com/shuldan/kernel/pkg/logger"
)

// Bootstrap assembles an application: a container, the config module and
// whichever framework modules are enabled, in registration order.
type Bootstrap struct {
	appName         string
	appVersion      string
	appEnvironment  string
	envPrefix       string
	configPaths     []string
	defaults        config.MapLoader
	containerOpts   []container.Option
	modules         []contracts.AppModule
	gracefulTimeout time.Duration
}

func New(appName string, appVersion string, envPrefix string, configPaths ...string) *Bootstrap {
	appEnvironment := os.Getenv("APP_ENVIRONMENT")
	if appEnvironment == "" {
		appEnvironment = "development"
	}

	return &Bootstrap{
		appName:         appName,
		appVersion:      appVersion,
		appEnvironment:  appEnvironment,
		envPrefix:       envPrefix,
		configPaths:     configPaths,
		gracefulTimeout: 30 * time.Second,
	}
}

func (b *Bootstrap) WithGracefulTimeout(timeout time.Duration) *Bootstrap {
	b.gracefulTimeout = timeout
	return b
}

// WithDefaults sets configuration values that files and environment
// variables override.
func (b *Bootstrap) WithDefaults(values map[string]any) *Bootstrap {
	b.defaults = values
	return b
}

func (b *Bootstrap) WithContainerOptions(opts ...container.Option) *Bootstrap {
	b.containerOpts = append(b.containerOpts, opts...)
	return b
}

func (b *Bootstrap) WithLogger(opts ...logger.Option) *Bootstrap {
	return b.WithModule(logger.NewModule(opts...))
}

func (b *Bootstrap) WithDatabase() *Bootstrap {
	return b.WithModule(database.NewModule())
}

func (b *Bootstrap) WithRedis() *Bootstrap {
	return b.WithModule(cache.NewModule())
}

func (b *Bootstrap) WithModule(m contracts.AppModule) *Bootstrap {
	b.modules = append(b.modules, m)
	return b
}

func (b *Bootstrap) configModule() contracts.AppModule {
	loaders := []config.Loader{
		config.NewYamlConfigLoader(b.configPaths...),
		config.NewJSONConfigLoader(b.configPaths...),
		config.NewEnvConfigLoader(b.envPrefix),
	}
	if b.defaults != nil {
		loaders = append([]config.Loader{b.defaults}, loaders...)
	}
	return config.NewModuleWithLoader(config.NewTemplateLoader(config.NewChainLoader(loaders...)))
}

// CreateApp returns the application and the container it resolves from.
func (b *Bootstrap) CreateApp() (contracts.App, *container.Container, error) {
	c := container.New(b.containerOpts...)
	a := app.New(
		app.AppInfo{
			AppName:     b.appName,
			Version:     b.appVersion,
			Environment: b.appEnvironment,
		},
		c,
		app.NewRegistry(),
		app.WithGracefulTimeout(b.gracefulTimeout),
	)

	for _, module := range append([]contracts.AppModule{b.configModule()}, b.modules...) {
		if err := a.Register(module); err != nil {
			return nil, nil, err
		}
	}
	return a, c, nil
}
