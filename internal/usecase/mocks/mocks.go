// Package mocks provides hand-written test doubles for the usecase
// interfaces.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/finbook/internal/domain"
)

// MockBlobStore is a map-backed implementation of usecase.BlobStore.
type MockBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	LoadFunc func(ctx context.Context, key string) ([]byte, error)
	SaveFunc func(ctx context.Context, key string, data []byte) error
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{blobs: make(map[string][]byte)}
}

func (m *MockBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.blobs[key]; ok {
		return data, nil
	}
	return nil, domain.ErrCollectionNotFound
}

func (m *MockBlobStore) Save(ctx context.Context, key string, data []byte) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, key, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

// Seed stores a blob directly, bypassing any SaveFunc override.
func (m *MockBlobStore) Seed(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
}

// MockSaver records saves synchronously in enqueue order.
type MockSaver struct {
	mu    sync.Mutex
	saves []SavedBlob

	SaveFunc func(key string, data []byte)
}

// SavedBlob is one recorded save.
type SavedBlob struct {
	Key  string
	Data []byte
}

func NewMockSaver() *MockSaver {
	return &MockSaver{}
}

func (m *MockSaver) Save(key string, data []byte) {
	if m.SaveFunc != nil {
		m.SaveFunc(key, data)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, SavedBlob{Key: key, Data: data})
}

// Saves returns all recorded saves in order.
func (m *MockSaver) Saves() []SavedBlob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SavedBlob(nil), m.saves...)
}

// Last returns the most recent save for key, or nil.
func (m *MockSaver) Last(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.saves) - 1; i >= 0; i-- {
		if m.saves[i].Key == key {
			return m.saves[i].Data
		}
	}
	return nil
}

// MockIDGenerator hands out sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%d", m.next)
}

// MockIdempotencyStore is a map-backed implementation of
// usecase.IdempotencyStore.
type MockIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{entries: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.entries[key]; ok {
		return true, existing, nil
	}
	m.entries[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = response
	return nil
}
