package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shuldan/kernel/pkg/config"
	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
)

type userStore struct {
	DB *sql.DB
}

func newContainer(t *testing.T, values map[string]any) *container.Container {
	t.Helper()
	c := container.New()
	if err := config.NewModuleWithLoader(config.MapLoader(values)).Register(c); err != nil {
		t.Fatalf("config Register failed: %v", err)
	}
	return c
}

func sqliteConfig() map[string]any {
	return map[string]any{
		"database": map[string]any{
			"default": "main",
			"connections": map[string]any{
				"main": map[string]any{
					"driver": "sqlite",
					"dsn":    ":memory:",
					"pool": map[string]any{
						"max_open_connections": 1,
						"conn_max_lifetime":    "30m",
						"ping_timeout":         2,
					},
				},
				"reports": map[string]any{
					"driver": "sqlite3",
					"dsn":    ":memory:",
				},
			},
		},
	}
}

func TestModule_SharesConnections(t *testing.T) {
	c := newContainer(t, sqliteConfig())
	m := NewModule()
	if err := m.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if c.Resolved(ConnectionKey("main")) {
		t.Fatal("connections must open lazily")
	}

	db, err := container.Make[*sql.DB](c)
	if err != nil {
		t.Fatalf("default connection not resolvable: %v", err)
	}
	var one int
	if err := db.QueryRowContext(context.Background(), "SELECT 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("query failed: %v", err)
	}
	if stats := db.Stats(); stats.MaxOpenConnections != 1 {
		t.Errorf("pool settings not applied: %+v", stats)
	}

	alias, _ := c.Resolve(contracts.DatabaseModuleName)
	if alias != db {
		t.Error(`"database" must resolve to the shared default connection`)
	}

	store, err := container.Make[*userStore](c)
	if err != nil {
		t.Fatalf("autowiring *sql.DB failed: %v", err)
	}
	if store.DB != db {
		t.Error("struct field must receive the default connection")
	}

	if c.Resolved(ConnectionKey("reports")) {
		t.Error("unused connection must not be opened")
	}

	if err := m.Stop(nil); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := db.PingContext(context.Background()); err == nil {
		t.Error("Stop must close opened connections")
	}
	if len(m.pool.connections) != 0 {
		t.Error("pool must be empty after Stop")
	}
}

func TestModule_RegisterErrors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   error
	}{
		{"no database section", map[string]any{"app": "x"}, ErrConfigNotFound},
		{"no connections", map[string]any{"database": map[string]any{"default": "main"}}, ErrConnectionsNotFound},
		{"unknown default", map[string]any{"database": map[string]any{
			"default":     "other",
			"connections": map[string]any{"main": map[string]any{"driver": "sqlite3", "dsn": ":memory:"}},
		}}, ErrConnectionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContainer(t, tt.values)
			if err := NewModule().Register(c); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if err := NewModule().Register(container.New()); !errors.Is(err, ErrResolveConfig) {
		t.Errorf("without config: expected ErrResolveConfig, got %v", err)
	}
}

func TestModule_ResolveErrors(t *testing.T) {
	c := newContainer(t, map[string]any{
		"database": map[string]any{
			"connections": map[string]any{
				"bad":     map[string]any{"driver": "mysql", "dsn": "user@tcp(host"},
				"missing": map[string]any{"driver": "sqlite3"},
				"odd":     map[string]any{"driver": "oracle", "dsn": "x"},
			},
		},
	})
	if err := NewModule().Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := c.Resolve(ConnectionKey("bad")); !errors.Is(err, ErrInvalidDSN) {
		t.Errorf("expected ErrInvalidDSN, got %v", err)
	}
	if _, err := c.Resolve(ConnectionKey("missing")); !errors.Is(err, container.ErrMissingNamedParameter) {
		t.Errorf("expected ErrMissingNamedParameter, got %v", err)
	}
	if _, err := c.Resolve(ConnectionKey("odd")); !errors.Is(err, ErrUnsupportedDriver) {
		t.Errorf("expected ErrUnsupportedDriver, got %v", err)
	}
}

func TestSettings_FromSection(t *testing.T) {
	c := container.New()
	_ = c.Bind(settingsKey("x"), settingsType, false)

	v, err := c.Resolve(settingsKey("x"), settingsArgs(config.NewMapConfig(map[string]any{
		"driver": "postgres",
		"dsn":    "postgres://u:p@localhost:5432/app",
		"pool": map[string]any{
			"max_idle_connections": uint64(2),
			"retry_delay":          "250ms",
			"conn_max_idle_time":   60,
		},
	}))...)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	s := v.(*Settings)
	if s.Driver != "postgres" || s.MaxIdleConns != 2 || s.MaxOpenConns != 25 {
		t.Errorf("unexpected settings %+v", s)
	}
	if s.RetryDelay != 250*time.Millisecond || s.ConnMaxIdleTime != time.Minute || s.PingTimeout != 5*time.Second {
		t.Errorf("unexpected durations %+v", s)
	}
}

func TestNormalize(t *testing.T) {
	driver, dsn, err := normalize("main", "PostgreSQL", "postgres://u:p@localhost:5432/app?sslmode=disable")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if driver != "postgres" || !strings.Contains(dsn, "host=localhost") || !strings.Contains(dsn, "dbname=app") {
		t.Errorf("unexpected postgres DSN %q (%s)", dsn, driver)
	}

	if driver, _, err = normalize("main", "mysql", "user:pass@tcp(127.0.0.1:3306)/app?parseTime=true"); err != nil || driver != "mysql" {
		t.Errorf("valid mysql DSN rejected: %v", err)
	}
	if driver, _, _ = normalize("main", "sqlite", "file.db"); driver != "sqlite3" {
		t.Errorf("expected sqlite3, got %s", driver)
	}
}
