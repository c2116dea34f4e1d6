package config

import (
	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
)

type module struct {
	loader Loader
}

// NewModule loads YAML and JSON files from paths, then PREFIX_ environment
// variables, and renders templates in the merged values.
func NewModule(envPrefix string, paths ...string) contracts.AppModule {
	return NewModuleWithLoader(NewTemplateLoader(NewChainLoader(
		NewYamlConfigLoader(paths...),
		NewJSONConfigLoader(paths...),
		NewEnvConfigLoader(envPrefix),
	)))
}

func NewModuleWithLoader(loader Loader) contracts.AppModule {
	return &module{loader: loader}
}

func (m *module) Name() string {
	return contracts.ConfigModuleName
}

func (m *module) Register(c contracts.DIContainer) error {
	key := container.KeyOf[contracts.Config]()
	if err := c.Share(key, container.Func(m.build)); err != nil {
		return err
	}
	return c.Alias(key, contracts.ConfigModuleName)
}

func (m *module) build() (contracts.Config, error) {
	values, err := m.loader.Load()
	if err != nil {
		return nil, ErrLoadFailed.WithCause(err)
	}
	return NewMapConfig(values), nil
}

// Start applies the container manifest found in the configuration.
func (m *module) Start(ctx contracts.AppContext) error {
	c := ctx.Container()
	v, err := c.Resolve(contracts.ConfigModuleName)
	if err != nil {
		return err
	}
	return container.ApplyManifest(c, v.(contracts.Config))
}

func (m *module) Stop(_ contracts.AppContext) error {
	return nil
}
