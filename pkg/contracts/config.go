package contracts

import "time"

// Config is a read-only tree of values addressed by dotted paths such as
// "database.connections.main.dsn". Getters fall back to the optional default
// when the path is missing or the value cannot be coerced.
type Config interface {
	Has(path string) bool
	Get(path string) any

	GetString(path string, defaultVal ...string) string
	GetInt(path string, defaultVal ...int) int
	GetBool(path string, defaultVal ...bool) bool

	// GetDuration accepts Go duration strings ("1h30m") and bare numbers,
	// which are seconds.
	GetDuration(path string, defaultVal ...time.Duration) time.Duration

	// Keys lists the keys of the section at path in sorted order. An empty
	// path lists the top level.
	Keys(path string) []string

	GetSub(path string) (Config, bool)
	All() map[string]any
}
