package database

import (
	"context"
	"database/sql"

	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
)

// ConnectionKey is the abstract the pool of connection name is shared under.
func ConnectionKey(name string) string {
	return contracts.DatabaseModuleName + ".connections." + name
}

func settingsKey(name string) string {
	return contracts.DatabaseModuleName + ".settings." + name
}

type Module struct {
	pool *pool
}

func NewModule() *Module {
	return &Module{pool: newPool()}
}

func (m *Module) Name() string {
	return contracts.DatabaseModuleName
}

// Register shares one lazily opened *sql.DB per entry of
// database.connections and points "database" and *sql.DB at the default one:
//
//	database:
//	  default: main
//	  connections:
//	    main:
//	      driver: sqlite3
//	      dsn: ":memory:"
//	      pool:
//	        max_open_connections: 10
//	        conn_max_lifetime: 1h
func (m *Module) Register(c contracts.DIContainer) error {
	raw, err := c.Resolve(contracts.ConfigModuleName)
	if err != nil {
		return ErrResolveConfig.WithCause(err)
	}
	cfg, ok := raw.(contracts.Config)
	if !ok {
		return ErrResolveConfig
	}

	dbCfg, ok := cfg.GetSub(contracts.DatabaseModuleName)
	if !ok {
		return ErrConfigNotFound
	}
	connections, ok := dbCfg.GetSub("connections")
	if !ok {
		return ErrConnectionsNotFound
	}

	var names []string
	for _, name := range connections.Keys("") {
		if _, ok := connections.GetSub(name); ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ErrConnectionsNotFound
	}

	for _, name := range names {
		section, _ := connections.GetSub(name)
		if err := m.register(c, name, section); err != nil {
			return err
		}
	}

	def := dbCfg.GetString("default", names[0])
	if !c.Bound(ConnectionKey(def)) {
		return ErrConnectionNotFound.WithDetail("name", def)
	}
	if err := c.Alias(ConnectionKey(def), contracts.DatabaseModuleName); err != nil {
		return err
	}
	return c.Alias(ConnectionKey(def), container.KeyOf[*sql.DB]())
}

func (m *Module) register(c contracts.DIContainer, name string, section contracts.Config) error {
	if err := c.Bind(settingsKey(name), settingsType, false); err != nil {
		return err
	}

	args := settingsArgs(section)
	open := func(dc contracts.DIContainer) (*sql.DB, error) {
		s, err := dc.Resolve(settingsKey(name), args...)
		if err != nil {
			return nil, err
		}
		db, err := Open(context.Background(), name, s.(*Settings))
		if err != nil {
			return nil, err
		}
		m.pool.track(name, db)
		return db, nil
	}
	return c.Share(ConnectionKey(name), open)
}

func (m *Module) Start(_ contracts.AppContext) error {
	return nil
}

// Stop closes the connections that were opened.
func (m *Module) Stop(_ contracts.AppContext) error {
	return m.pool.closeAll()
}
