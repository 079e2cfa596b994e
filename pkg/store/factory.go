package store

import "strings"

// Type names a store driver.
type Type string

const (
	TypeMemory Type = "memory"
	TypeFile   Type = "file"
	TypeSQLite Type = "sqlite"
	TypeRedis  Type = "redis"
)

// New creates a Store of the given type.
// The file and sqlite drivers require WithPath; redis requires WithRedisClient.
func New(storeType Type, opts ...Option) (Store, error) {
	cfg := &storeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storeType {
	case TypeMemory:
		return NewMemoryStore(), nil

	case TypeFile:
		if strings.TrimSpace(cfg.path) == "" {
			return nil, ErrInvalidConfig
		}
		return NewFileStore(cfg.path)

	case TypeSQLite:
		if strings.TrimSpace(cfg.path) == "" {
			return nil, ErrInvalidConfig
		}
		return NewSQLiteStore(cfg.path)

	case TypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return NewRedisStore(cfg.redisClient, cfg.redisPrefix, cfg.ttl), nil

	default:
		return nil, ErrInvalidStoreType
	}
}
