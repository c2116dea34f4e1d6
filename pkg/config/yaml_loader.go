package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// YamlConfigLoader reads the first existing .yaml or .yml file among its paths.
type YamlConfigLoader struct {
	paths []string
}

func NewYamlConfigLoader(paths ...string) *YamlConfigLoader {
	return &YamlConfigLoader{paths: filterExt(paths, ".yaml", ".yml")}
}

func (l *YamlConfigLoader) Load() (map[string]any, error) {
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var values map[string]any
		if err = yaml.UnmarshalWithOptions(data, &values, yaml.UseJSONUnmarshaler()); err != nil {
			return nil, ErrParseYAML.
				WithDetail("path", path).
				WithDetail("reason", err.Error()).
				WithCause(err)
		}
		if values == nil {
			values = make(map[string]any)
		}
		return values, nil
	}

	return nil, ErrNoConfigSource.WithDetail("loader", "yaml")
}
