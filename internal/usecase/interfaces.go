package usecase

import (
	"context"
	"time"
)

// BlobStore persists whole collections as opaque serialized blobs under
// fixed string keys.
type BlobStore interface {
	// Load returns the blob stored under key, or domain.ErrCollectionNotFound
	// if the key has never been written.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Saver accepts asynchronous collection saves. Implementations apply saves
// in enqueue order; callers never block on the underlying store.
type Saver interface {
	Save(key string, data []byte)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
