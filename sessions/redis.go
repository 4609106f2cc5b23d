package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindcare/support-chat/types"
)

// Redis key prefix for sessions
const sessionKeyPrefix = "chat-session:"

// RedisStore keeps sessions in Redis so several server processes share them.
// Every key carries the idle TTL, refreshed on read and write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, id string) (*types.SessionState, error) {
	key := s.key(id)
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}

	var state types.SessionState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	if state.MessageCounts == nil {
		state.MessageCounts = make(map[string]int)
	}
	if state.UsedResponses == nil {
		state.UsedResponses = make(map[string][]string)
	}

	// Refresh TTL on read
	_ = s.client.Expire(ctx, key, s.ttl).Err()

	return &state, nil
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, state *types.SessionState) error {
	state.UpdatedAt = time.Now()
	val, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", state.ID, err)
	}
	if err := s.client.Set(ctx, s.key(state.ID), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session %s: %w", state.ID, err)
	}
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return sessionKeyPrefix + id
}

// NewRedisClient parses a redis:// URL and checks the server is reachable.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return client, nil
}
