package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/finbook/internal/domain"
)

func TestBlobStoreSaveAndLoad(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewBlobStore(client)
	ctx := context.Background()

	payload := []byte(`[{"id":"t1","type":"income","title":"salary"}]`)
	if err := store.Save(ctx, "transactions", payload); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(ctx, "transactions")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("expected %s, got %s", payload, got)
	}
}

func TestBlobStoreLoadMissingKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewBlobStore(client)

	_, err := store.Load(context.Background(), "TOURS_DATA")
	if !errors.Is(err, domain.ErrCollectionNotFound) {
		t.Fatalf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestBlobStoreOverwrite(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewBlobStore(client)
	ctx := context.Background()

	if err := store.Save(ctx, "groups", []byte(`[1]`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(ctx, "groups", []byte(`[2]`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(ctx, "groups")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got) != "[2]" {
		t.Fatalf("expected last write to win, got %s", got)
	}
}
