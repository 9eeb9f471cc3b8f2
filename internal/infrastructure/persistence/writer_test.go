package persistence_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finbook/internal/infrastructure/persistence"
)

type recordingStore struct {
	mu    sync.Mutex
	keys  []string
	blobs map[string][]byte

	saveErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{blobs: make(map[string][]byte)}
}

func (s *recordingStore) Load(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (s *recordingStore) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.keys = append(s.keys, key)
	s.blobs[key] = data
	return nil
}

func (s *recordingStore) savedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

func (s *recordingStore) blob(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobs[key]
}

func TestWriter_AppliesSavesInOrder(t *testing.T) {
	store := newRecordingStore()
	writer := persistence.NewWriter(persistence.Config{
		Store:  store,
		Logger: zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go writer.Start(ctx)

	writer.Save("transactions", []byte(`[1]`))
	writer.Save("groups", []byte(`[2]`))
	writer.Save("TOURS_DATA", []byte(`[3]`))

	require.Eventually(t, func() bool {
		return len(store.savedKeys()) == 3
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"transactions", "groups", "TOURS_DATA"}, store.savedKeys())
}

func TestWriter_CoalescesSupersededPayloads(t *testing.T) {
	store := newRecordingStore()
	writer := persistence.NewWriter(persistence.Config{
		Store:  store,
		Logger: zerolog.Nop(),
	})

	// Enqueue twice before the worker runs; only the newest payload must
	// reach the store.
	writer.Save("transactions", []byte(`old`))
	writer.Save("transactions", []byte(`new`))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go writer.Start(ctx)

	require.Eventually(t, func() bool {
		return len(store.savedKeys()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []byte(`new`), store.blob("transactions"))

	// Nothing else trickles in afterwards.
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, store.savedKeys(), 1)
}

func TestWriter_ReportsExhaustedRetries(t *testing.T) {
	store := newRecordingStore()
	store.saveErr = errors.New("store down")

	var mu sync.Mutex
	var failedKey string
	writer := persistence.NewWriter(persistence.Config{
		Store:          store,
		Logger:         zerolog.Nop(),
		MaxElapsedTime: 50 * time.Millisecond,
		OnError: func(key string, err error) {
			mu.Lock()
			failedKey = key
			mu.Unlock()
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go writer.Start(ctx)

	writer.Save("groups", []byte(`[]`))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return failedKey == "groups"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWriter_DrainsOnShutdown(t *testing.T) {
	store := newRecordingStore()
	writer := persistence.NewWriter(persistence.Config{
		Store:  store,
		Logger: zerolog.Nop(),
	})

	writer.Save("transactions", []byte(`[1]`))

	// Already-cancelled context: Start must still drain the queue before
	// returning.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := writer.Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"transactions"}, store.savedKeys())
}
