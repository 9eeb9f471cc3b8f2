package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Idempotency keys live in their own namespace so a cleanup can target
// them with a single SCAN pattern.
const idempotencyPrefix = "finbook:idempotency:"

// lockPlaceholder marks a key whose first request is still in flight.
const lockPlaceholder = "in-flight"

// IdempotencyStore implements usecase.IdempotencyStore on Redis. Entries
// expire after the configured TTL so replays are bounded in time as well
// as in storage.
type IdempotencyStore struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewIdempotencyStore creates a store whose entries expire after
// defaultTTL when the caller does not supply one.
func NewIdempotencyStore(client *redis.Client, defaultTTL time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, defaultTTL: defaultTTL}
}

// CheckAndSet returns the cached response when the key is already known.
// A nil response locks a fresh key with a placeholder so concurrent
// retries of the same request observe it as seen.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := idempotencyPrefix + key
	ttl = s.ttlOrDefault(ttl)

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		return true, existing, nil
	}
	if !errors.Is(err, redis.Nil) {
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	locked, err := s.client.SetNX(ctx, fullKey, lockPlaceholder, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !locked {
		// Lost the race; surface whatever the winner stored.
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, nil, err
		}
		return true, existing, nil
	}

	return false, nil, nil
}

// Update replaces the placeholder with the final response and refreshes
// the expiry.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyPrefix+key, response, s.ttlOrDefault(ttl)).Err()
}

func (s *IdempotencyStore) ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return s.defaultTTL
}
