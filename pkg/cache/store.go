package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a key prefixed view over a redis client. It is autowired by the
// container: Client receives the shared client through its redis.Cmdable
// alias.
type Store struct {
	Client redis.Cmdable
	Prefix string        `inject:"name=prefix" default:""`
	TTL    time.Duration `inject:"name=ttl" default:"0s"`
}

func (s *Store) key(k string) string {
	return s.Prefix + k
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.Client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.Client.Set(ctx, s.key(key), value, s.TTL).Err()
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}
	return s.Client.Del(ctx, prefixed...).Err()
}
