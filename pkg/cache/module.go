package cache

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shuldan/kernel/pkg/container"
	"github.com/shuldan/kernel/pkg/contracts"
)

type module struct{}

func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return contracts.RedisModuleName
}

// Register shares a *redis.Client built from the "redis" config section and
// aliases it as "redis" and redis.Cmdable. A *Store using redis.prefix and
// redis.ttl is shared as well.
//
//	redis:
//	  address: localhost:6379
//	  db: 0
//	  prefix: "app:"
func (m *module) Register(c contracts.DIContainer) error {
	key := container.KeyOf[*redis.Client]()
	if err := c.Share(key, container.Func(newClient, "config")); err != nil {
		return err
	}
	if err := c.Alias(key, contracts.RedisModuleName); err != nil {
		return err
	}
	if err := c.Alias(key, container.KeyOf[redis.Cmdable]()); err != nil {
		return err
	}
	return c.Share(container.KeyOf[*Store](), container.Func(newStore, "config", "c"))
}

func newClient(cfg contracts.Config) (*redis.Client, error) {
	sub, ok := cfg.GetSub(contracts.RedisModuleName)
	if !ok {
		return nil, ErrRedisConfigNotFound
	}
	addr := sub.GetString("address")
	if addr == "" {
		return nil, ErrAddressNotSet
	}

	return redis.NewClient(&redis.Options{
		Addr:        addr,
		Username:    sub.GetString("username"),
		Password:    sub.GetString("password"),
		DB:          sub.GetInt("db"),
		PoolSize:    sub.GetInt("pool_size"),
		DialTimeout: sub.GetDuration("dial_timeout", 5*time.Second),
	}), nil
}

func newStore(cfg contracts.Config, c *container.Container) (*Store, error) {
	var params []any
	if sub, ok := cfg.GetSub(contracts.RedisModuleName); ok {
		if sub.Has("prefix") {
			params = append(params, container.Named("prefix", sub.GetString("prefix")))
		}
		if sub.Has("ttl") {
			params = append(params, container.Named("ttl", sub.GetDuration("ttl")))
		}
	}
	return container.CreateOf[*Store](c, params...)
}

func (m *module) Start(_ contracts.AppContext) error {
	return nil
}

// Stop closes the client if it was ever resolved.
func (m *module) Stop(ctx contracts.AppContext) error {
	c := ctx.Container()
	key := container.KeyOf[*redis.Client]()
	if !c.Resolved(key) {
		return nil
	}

	v, err := c.Resolve(key)
	if err != nil {
		return err
	}
	if err := v.(*redis.Client).Close(); err != nil {
		return ErrCloseClient.WithCause(err)
	}
	return nil
}
