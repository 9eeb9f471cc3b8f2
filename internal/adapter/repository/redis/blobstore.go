package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/iho/finbook/internal/domain"
)

// BlobStore implements usecase.BlobStore on Redis. Each collection lives in
// a single value under its fixed key.
type BlobStore struct {
	client *redis.Client
	prefix string
}

// NewBlobStore creates a new BlobStore.
func NewBlobStore(client *redis.Client) *BlobStore {
	return &BlobStore{
		client: client,
		prefix: "collection:",
	}
}

// Load retrieves the collection blob stored under key.
func (s *BlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save stores the collection blob under key, without expiry.
func (s *BlobStore) Save(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.prefix+key, data, 0).Err()
}
