package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKVTTL is how long persisted values live without being rewritten.
// Navigation contexts are rewritten on every mutation, so active sessions
// never expire mid-use.
const DefaultKVTTL = 30 * 24 * time.Hour

// KVStore is a Valkey-backed key-value store satisfying the engine's KV
// contract.
type KVStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewKVStore creates a KVStore with the default TTL.
func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client, ttl: DefaultKVTTL}
}

// Get returns the stored value for key and whether it was present.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key, refreshing the TTL.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}
