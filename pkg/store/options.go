package store

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Option is a functional option for configuring a store.
type Option func(*storeConfig)

type storeConfig struct {
	path        string
	redisClient *redis.Client
	redisPrefix string
	ttl         time.Duration
}

// WithPath sets the file location for the file and sqlite stores.
func WithPath(path string) Option {
	return func(c *storeConfig) {
		c.path = path
	}
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) Option {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisPrefix sets the key prefix used by the Redis store.
func WithRedisPrefix(prefix string) Option {
	return func(c *storeConfig) {
		c.redisPrefix = prefix
	}
}

// WithTTL sets an expiry for Redis keys. Zero keeps keys forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *storeConfig) {
		c.ttl = ttl
	}
}
