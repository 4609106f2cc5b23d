// Package sessions persists the per-session repetition state.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"mindcare/support-chat/types"
)

// Common errors for session store operations.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidStoreType = errors.New("invalid store type")
)

// StoreType represents the type of session store.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

const defaultTTL = 24 * time.Hour

// Store loads and saves SessionState by session id.
type Store interface {
	// Get returns nil (not an error) when the session is unknown or expired.
	Get(ctx context.Context, id string) (*types.SessionState, error)

	// Put stores state, refreshing its expiry.
	Put(ctx context.Context, state *types.SessionState) error

	// Delete drops a session. Unknown ids are not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources.
	Close() error
}

// StoreOption is a functional option for configuring a session store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	redisClient *redis.Client
	ttl         time.Duration
	now         func() time.Time
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithTTL sets how long an idle session is kept.
func WithTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.ttl = ttl
	}
}

// WithClock overrides time.Now for the memory store.
func WithClock(now func() time.Time) StoreOption {
	return func(c *storeConfig) {
		c.now = now
	}
}

// NewStore creates a Store of the given type.
// For Redis, requires WithRedisClient.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	cfg := &storeConfig{ttl: defaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.ttl <= 0 {
		cfg.ttl = defaultTTL
	}

	switch storeType {
	case StoreTypeMemory:
		return NewMemoryStore(cfg.ttl, cfg.now), nil
	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return NewRedisStore(cfg.redisClient, cfg.ttl), nil
	default:
		return nil, ErrInvalidStoreType
	}
}
