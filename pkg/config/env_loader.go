package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvConfigLoader maps PREFIX_SECTION__KEY=value to section.key. Values that
// parse as bool, int or float are typed.
type EnvConfigLoader struct {
	prefix string
}

func NewEnvConfigLoader(prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{prefix: prefix}
}

func (l *EnvConfigLoader) Load() (map[string]any, error) {
	values := make(map[string]any)

	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, l.prefix) {
			continue
		}

		path := strings.ToLower(strings.TrimPrefix(key, l.prefix))
		path = strings.ReplaceAll(path, "__", ".")
		if path == "" {
			continue
		}
		setNested(values, path, typed(value))
	}

	return values, nil
}

func typed(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

func setNested(m map[string]any, key string, value any) {
	keys := strings.Split(key, ".")
	last := len(keys) - 1

	current := m
	for i, k := range keys {
		if i == last {
			current[k] = value
			return
		}
		next, ok := current[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[k] = next
		}
		current = next
	}
}
