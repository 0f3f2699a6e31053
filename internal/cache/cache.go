package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a JSON read-through cache over Redis. A nil client disables
// caching; every operation becomes a no-op miss so callers never branch.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore builds the cache store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Store{client: client, ttl: ttl}
}

// GetJSON loads a cached value into dest. Returns false on miss or any
// redis/decoding failure; a broken cache must never break a read path.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) bool {
	if s == nil || s.client == nil {
		return false
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

// SetJSON stores a value under the configured TTL.
func (s *Store) SetJSON(ctx context.Context, key string, val any) error {
	if s == nil || s.client == nil {
		return nil
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, s.ttl).Err()
}

// InvalidatePrefix removes every key under a prefix. Used after admin writes
// so public listings observe the change immediately.
func (s *Store) InvalidatePrefix(ctx context.Context, prefix string) error {
	if s == nil || s.client == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil
			}
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
