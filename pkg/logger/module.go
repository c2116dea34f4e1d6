package logger

import (
	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
)

type module struct {
	opts []Option
}

func NewModule(opts ...Option) contracts.AppModule {
	return &module{opts: opts}
}

func (m *module) Name() string {
	return contracts.LoggerModuleName
}

// Register shares contracts.Logger under its type key and aliases it as
// "logger". Level and format are read from the "logger" config section when
// a config is bound; explicit options win over config.
func (m *module) Register(c contracts.DIContainer) error {
	key := container.KeyOf[contracts.Logger]()
	factory := container.Func(m.build, "config").Optional("config")
	if err := c.Share(key, factory); err != nil {
		return err
	}
	return c.Alias(key, contracts.LoggerModuleName)
}

func (m *module) build(cfg contracts.Config) (contracts.Logger, error) {
	var opts []Option
	if cfg != nil {
		if sub, ok := cfg.GetSub(contracts.LoggerModuleName); ok {
			opts = append(opts, fromConfig(sub)...)
		}
	}
	return NewLogger(append(opts, m.opts...)...)
}

func (m *module) Start(_ contracts.AppContext) error {
	return nil
}

func (m *module) Stop(_ contracts.AppContext) error {
	return nil
}
