package config

import "github.com/shuldan/kernel/pkg/contracts"

type Loader interface {
	Load() (map[string]any, error)
}

// MapLoader serves fixed values, usually defaults placed first in a chain.
type MapLoader map[string]any

func (m MapLoader) Load() (map[string]any, error) {
	return cloneDeep(m), nil
}

func NewMapConfig(values map[string]any) contracts.Config {
	if values == nil {
		values = make(map[string]any)
	}
	return &MapConfig{values: values}
}

func cloneDeep(m map[string]any) map[string]any {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			v = cloneDeep(sub)
		}
		cp[k] = v
	}
	return cp
}
