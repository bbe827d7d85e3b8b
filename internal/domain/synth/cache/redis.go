package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"podcastforge-server-go/internal/platform/config"
)

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis builds a redis-backed cache so multiple server instances share
// rendered segments. Expiry is delegated to redis TTLs.
func NewRedis(cfg config.CacheConfig) (Cache, error) {
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "synth:segment:"
	}
	return &redisCache{
		client: client,
		ttl:    effectiveTTL(cfg.TTL),
		prefix: prefix,
	}, nil
}

func (c *redisCache) key(k string) string {
	return c.prefix + k
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	audio, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return audio, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, audio []byte) error {
	return c.client.Set(ctx, c.key(key), audio, c.ttl).Err()
}

func (c *redisCache) Close(context.Context) error {
	return c.client.Close()
}
