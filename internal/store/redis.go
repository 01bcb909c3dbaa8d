package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the ephemeral store with a shared Redis instance so that all
// service replicas observe the same tokens, codes and pending comments.
// Expiry is delegated to Redis key TTLs.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing Redis client.
func NewRedis(client *redis.Client) *Redis { return &Redis{client: client} }

// Save writes the value under its namespaced key, replacing any prior
// entry and its TTL.
func (r *Redis) Save(ctx context.Context, namespace, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, entryKey(namespace, key), value, ttl).Err()
}

// Get returns the stored value or ErrNotFound once the key expired or was
// never written.
func (r *Redis) Get(ctx context.Context, namespace, key string) (string, error) {
	v, err := r.client.Get(ctx, entryKey(namespace, key)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Remove deletes the entry. Removing an absent key is not an error.
func (r *Redis) Remove(ctx context.Context, namespace, key string) error {
	return r.client.Del(ctx, entryKey(namespace, key)).Err()
}
