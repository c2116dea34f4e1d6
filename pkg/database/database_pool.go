package database

import (
	"database/sql"
	"sync"

	"github.com/shuldan/kernel/pkg/errors"
)

// pool tracks the connections the container has opened so that Stop closes
// exactly those.
type pool struct {
	mu          sync.Mutex
	connections map[string]*sql.DB
}

func newPool() *pool {
	return &pool{connections: make(map[string]*sql.DB)}
}

func (p *pool) track(name string, db *sql.DB) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connections[name] = db
}

func (p *pool) closeAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for name, db := range p.connections {
		if err := db.Close(); err != nil {
			errs = append(errs, ErrCloseDatabase.WithDetail("name", name).WithCause(err))
		}
	}
	p.connections = make(map[string]*sql.DB)
	return errors.Join(errs...)
}
