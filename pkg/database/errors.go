package database

import "github.com/shuldan/kernel/pkg/errors"

var newDatabaseCode = errors.WithPrefix("DATABASE")

var (
	ErrResolveConfig        = newDatabaseCode().New("failed to resolve configuration")
	ErrConfigNotFound       = newDatabaseCode().New("database configuration not found")
	ErrConnectionsNotFound  = newDatabaseCode().New("no connections configured under database.connections")
	ErrConnectionNotFound   = newDatabaseCode().New("default connection {{.name}} is not configured")
	ErrUnsupportedDriver    = newDatabaseCode().New("unsupported driver {{.driver}} for connection {{.name}}")
	ErrInvalidDSN           = newDatabaseCode().New("invalid {{.driver}} DSN for connection {{.name}}")
	ErrFailedToOpenDatabase = newDatabaseCode().New("failed to open connection {{.name}}")
	ErrCloseDatabase        = newDatabaseCode().New("failed to close connection {{.name}}")
)
