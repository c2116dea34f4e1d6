package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shuldan/kernel/pkg/contracts"
)

// MapConfig is the contracts.Config over a merged loader result. Sections are
// map[string]any; YAML documents may also carry map[any]any.
type MapConfig struct {
	values map[string]any
}

var _ contracts.Config = (*MapConfig)(nil)

func (c *MapConfig) Has(path string) bool {
	_, ok := c.find(path)
	return ok
}

func (c *MapConfig) Get(path string) any {
	v, _ := c.find(path)
	return v
}

func (c *MapConfig) GetString(path string, defaultVal ...string) string {
	v, ok := c.find(path)
	switch {
	case !ok:
		return first(defaultVal)
	case v == nil:
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (c *MapConfig) GetInt(path string, defaultVal ...int) int {
	v, ok := c.find(path)
	if !ok {
		return first(defaultVal)
	}
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	n, ok := number(v)
	if !ok || n < math.MinInt || n > math.MaxInt {
		return first(defaultVal)
	}
	return int(n)
}

func (c *MapConfig) GetBool(path string, defaultVal ...bool) bool {
	v, ok := c.find(path)
	if !ok {
		return first(defaultVal)
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "on", "yes", "y":
			return true
		case "false", "0", "off", "no", "n":
			return false
		}
		return first(defaultVal)
	}
	if n, ok := number(v); ok {
		return n != 0
	}
	return first(defaultVal)
}

func (c *MapConfig) GetDuration(path string, defaultVal ...time.Duration) time.Duration {
	v, ok := c.find(path)
	if !ok {
		return first(defaultVal)
	}
	if d, ok := duration(v); ok {
		return d
	}
	return first(defaultVal)
}

func (c *MapConfig) Keys(path string) []string {
	section := c.values
	if path != "" {
		v, ok := c.find(path)
		if !ok {
			return nil
		}
		if section, ok = asSection(v); !ok {
			return nil
		}
	}

	keys := make([]string, 0, len(section))
	for k := range section {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *MapConfig) GetSub(path string) (contracts.Config, bool) {
	v, ok := c.find(path)
	if !ok {
		return nil, false
	}
	section, ok := asSection(v)
	if !ok {
		return nil, false
	}
	return NewMapConfig(section), true
}

func (c *MapConfig) All() map[string]any {
	return cloneDeep(c.values)
}

func (c *MapConfig) find(path string) (any, bool) {
	var current any = c.values
	for _, key := range strings.Split(path, ".") {
		section, ok := asSection(current)
		if !ok {
			return nil, false
		}
		if current, ok = section[key]; !ok {
			return nil, false
		}
	}
	return current, true
}

func asSection(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// number widens the numeric kinds the loaders produce. YAML yields uint64
// and int64, JSON float64, environment variables int or float64.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func duration(v any) (time.Duration, bool) {
	switch d := v.(type) {
	case time.Duration:
		return d, true
	case string:
		if parsed, err := time.ParseDuration(strings.TrimSpace(d)); err == nil {
			return parsed, true
		}
	}
	if n, ok := number(v); ok {
		return time.Duration(n * float64(time.Second)), true
	}
	return 0, false
}

func first[T any](values []T) T {
	var zero T
	if len(values) > 0 {
		return values[0]
	}
	return zero
}
