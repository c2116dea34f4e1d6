package database

import (
	"context"
	"database/sql"
	"reflect"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
)

// Settings describes one connection. The module builds it through the
// container from the connection's config section, so every field can be
// overridden by name and unset fields take their tag defaults.
type Settings struct {
	Driver          string        `inject:"name=driver"`
	DSN             string        `inject:"name=dsn"`
	MaxOpenConns    int           `inject:"name=max_open_connections" default:"25"`
	MaxIdleConns    int           `inject:"name=max_idle_connections" default:"5"`
	ConnMaxLifetime time.Duration `inject:"name=conn_max_lifetime" default:"1h"`
	ConnMaxIdleTime time.Duration `inject:"name=conn_max_idle_time" default:"5m"`
	PingTimeout     time.Duration `inject:"name=ping_timeout" default:"5s"`
	RetryAttempts   int           `inject:"name=retry_attempts" default:"0"`
	RetryDelay      time.Duration `inject:"name=retry_delay" default:"1s"`
}

var settingsType = reflect.TypeOf(&Settings{})

var durationKeys = map[string]bool{
	"conn_max_lifetime":  true,
	"conn_max_idle_time": true,
	"ping_timeout":       true,
	"retry_delay":        true,
}

// Open opens and pings a pool for s, retrying RetryAttempts times.
func Open(ctx context.Context, name string, s *Settings) (*sql.DB, error) {
	driver, dsn, err := normalize(name, s.Driver, s.DSN)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		var db *sql.DB
		db, err = sql.Open(driver, dsn)
		if err == nil {
			db.SetMaxOpenConns(s.MaxOpenConns)
			db.SetMaxIdleConns(s.MaxIdleConns)
			db.SetConnMaxLifetime(s.ConnMaxLifetime)
			db.SetConnMaxIdleTime(s.ConnMaxIdleTime)

			pingCtx, cancel := context.WithTimeout(ctx, s.PingTimeout)
			err = db.PingContext(pingCtx)
			cancel()
			if err == nil {
				return db, nil
			}
			_ = db.Close()
		}

		if attempt >= s.RetryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ErrFailedToOpenDatabase.WithDetail("name", name).WithCause(ctx.Err())
		case <-time.After(s.RetryDelay):
		}
	}

	return nil, ErrFailedToOpenDatabase.WithDetail("name", name).WithCause(err)
}

// normalize maps driver aliases to registered driver names and checks the
// DSN with the driver's own parser. postgres:// URLs are turned into
// key=value form.
func normalize(name, driver, dsn string) (string, string, error) {
	switch strings.ToLower(driver) {
	case "mysql":
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return "", "", ErrInvalidDSN.WithDetail("driver", "mysql").WithDetail("name", name).WithCause(err)
		}
		return "mysql", dsn, nil
	case "postgres", "postgresql", "pgsql":
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			converted, err := pq.ParseURL(dsn)
			if err != nil {
				return "", "", ErrInvalidDSN.WithDetail("driver", "postgres").WithDetail("name", name).WithCause(err)
			}
			dsn = converted
		}
		return "postgres", dsn, nil
	case "sqlite", "sqlite3":
		return "sqlite3", dsn, nil
	default:
		return "", "", ErrUnsupportedDriver.WithDetail("driver", driver).WithDetail("name", name)
	}
}

// settingsArgs turns a connection section into named arguments. Keys of the
// nested "pool" section are flattened into the same namespace.
func settingsArgs(section contracts.Config) []any {
	var args []any
	add := func(cfg contracts.Config, key string) {
		if durationKeys[key] {
			args = append(args, container.Named(key, cfg.GetDuration(key)))
			return
		}
		args = append(args, container.Named(key, cfg.Get(key)))
	}

	for _, key := range section.Keys("") {
		if key != "pool" {
			add(section, key)
			continue
		}
		if pool, ok := section.GetSub(key); ok {
			for _, pk := range pool.Keys("") {
				add(pool, pk)
			}
		}
	}
	return args
}
