package config

import (
	"reflect"
	"testing"
	"time"
)

func TestMapConfig_Get(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"app": map[string]any{
			"port": 8080,
		},
		"db": nil,
	})

	if cfg.Get("app.port") != 8080 {
		t.Errorf("expected app.port = 8080, got %v", cfg.Get("app.port"))
	}
	if cfg.Get("unknown") != nil {
		t.Errorf("expected unknown = nil, got %v", cfg.Get("unknown"))
	}
	if !cfg.Has("db") {
		t.Error("expected Has('db') = true (even if nil)")
	}
	if cfg.Has("app.port.value") {
		t.Error("expected Has('app.port.value') = false")
	}
}

func TestMapConfig_TypedGetters(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"string":  "hello",
		"int":     42,
		"int64":   int64(7),
		"uint64":  uint64(9),
		"float":   3.5,
		"numeric": "12",
		"yes":     "on",
	})

	if got := cfg.GetString("int"); got != "42" {
		t.Errorf("GetString(int) = %q", got)
	}
	if got := cfg.GetString("missing", "default"); got != "default" {
		t.Errorf("GetString(missing) = %q", got)
	}
	if got := cfg.GetInt("float"); got != 3 {
		t.Errorf("GetInt(float) = %d", got)
	}
	if got := cfg.GetInt("numeric"); got != 12 {
		t.Errorf("GetInt(numeric) = %d", got)
	}
	if got := cfg.GetInt("string", 5); got != 5 {
		t.Errorf("GetInt(string) = %d, expected default", got)
	}
	if got := cfg.GetInt("int64"); got != 7 {
		t.Errorf("GetInt(int64) = %d", got)
	}
	if got := cfg.GetInt("uint64"); got != 9 {
		t.Errorf("GetInt(uint64) = %d", got)
	}
	if !cfg.GetBool("yes") {
		t.Error("GetBool(yes) = false")
	}
	if cfg.GetBool("string", true) != true {
		t.Error("GetBool(string) must fall back to the default")
	}
}

func TestMapConfig_GetDuration(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"text":    "1h30m",
		"seconds": 90,
		"yaml":    uint64(2),
		"float":   0.5,
		"numeric": "15",
		"native":  3 * time.Millisecond,
		"bad":     "soon",
	})

	tests := map[string]time.Duration{
		"text":    90 * time.Minute,
		"seconds": 90 * time.Second,
		"yaml":    2 * time.Second,
		"float":   500 * time.Millisecond,
		"numeric": 15 * time.Second,
		"native":  3 * time.Millisecond,
		"bad":     time.Minute,
		"missing": time.Minute,
	}
	for key, want := range tests {
		if got := cfg.GetDuration(key, time.Minute); got != want {
			t.Errorf("GetDuration(%s) = %v, want %v", key, got, want)
		}
	}
}

func TestMapConfig_Keys(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"database": map[string]any{
			"connections": map[string]any{"replica": 1, "main": 2},
			"legacy":      map[any]any{"b": 1, "a": 2},
		},
		"name": "app",
	})

	if got := cfg.Keys(""); !reflect.DeepEqual(got, []string{"database", "name"}) {
		t.Errorf("Keys(\"\") = %v", got)
	}
	if got := cfg.Keys("database.connections"); !reflect.DeepEqual(got, []string{"main", "replica"}) {
		t.Errorf("Keys(connections) = %v", got)
	}
	if got := cfg.Keys("database.legacy"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys(legacy) = %v", got)
	}
	if got := cfg.Keys("name"); got != nil {
		t.Errorf("Keys(scalar) = %v, want nil", got)
	}
	if got := cfg.GetInt("database.legacy.b"); got != 1 {
		t.Errorf("expected paths through map[any]any, got %d", got)
	}
}

func TestMapConfig_GetSub(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"database": map[string]any{
			"connections": map[string]any{
				"main": map[string]any{"driver": "sqlite3"},
			},
		},
		"name": "app",
	})

	sub, ok := cfg.GetSub("database.connections")
	if !ok {
		t.Fatal("expected sub config")
	}
	if got := sub.GetString("main.driver"); got != "sqlite3" {
		t.Errorf("expected main.driver = sqlite3, got %q", got)
	}
	if _, ok := cfg.GetSub("name"); ok {
		t.Error("expected GetSub on a scalar to fail")
	}
}

func TestMapConfig_AllIsCopy(t *testing.T) {
	cfg := NewMapConfig(map[string]any{"a": 1, "s": map[string]any{"b": 1}})
	all := cfg.All()
	all["a"] = 2
	all["s"].(map[string]any)["b"] = 2

	if cfg.GetInt("a") != 1 || cfg.GetInt("s.b") != 1 {
		t.Error("All() must not expose the backing maps")
	}
}
