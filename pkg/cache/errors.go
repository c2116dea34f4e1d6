package cache

import "github.com/shuldan/kernel/pkg/errors"

var newCacheCode = errors.WithPrefix("CACHE")

var (
	ErrRedisConfigNotFound = newCacheCode().New("redis configuration not found")
	ErrAddressNotSet       = newCacheCode().New("redis address is not configured")
	ErrCloseClient         = newCacheCode().New("failed to close redis client")
)
