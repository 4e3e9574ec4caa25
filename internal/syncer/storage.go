package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vantage-retail/vantage-retail/internal/catalog"
)

// Redis keys for the synced generation. The checkpoint under keyState is
// written last and deleted first, so its presence always implies complete
// product and supplier payloads.
const (
	keyProducts  = "vantage:sync:products"
	keySuppliers = "vantage:sync:suppliers"
	keyState     = "vantage:sync:state"
)

// Storage persists and clears the synced generation. RedisStore is the
// production implementation; it doubles as the catalog read-side store.
type Storage interface {
	SaveDataset(ctx context.Context, products []catalog.Product, suppliers []catalog.Supplier, state SyncState) error
	SyncState(ctx context.Context) (*SyncState, error)
	Clear(ctx context.Context) error
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveDataset replaces the synced generation. The old checkpoint is dropped
// before any data key changes and the new one is written only after both
// payloads landed, so a failure mid-write leaves readers on the seed instead
// of a mixed generation.
func (s *RedisStore) SaveDataset(ctx context.Context, products []catalog.Product, suppliers []catalog.Supplier, state SyncState) error {
	if err := s.client.Del(ctx, keyState).Err(); err != nil {
		return fmt.Errorf("syncer: drop checkpoint: %w", err)
	}

	rawProducts, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("syncer: encode products: %w", err)
	}
	rawSuppliers, err := json.Marshal(suppliers)
	if err != nil {
		return fmt.Errorf("syncer: encode suppliers: %w", err)
	}
	rawState, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("syncer: encode state: %w", err)
	}

	if err := s.client.Set(ctx, keyProducts, rawProducts, 0).Err(); err != nil {
		return fmt.Errorf("syncer: save products: %w", err)
	}
	if err := s.client.Set(ctx, keySuppliers, rawSuppliers, 0).Err(); err != nil {
		return fmt.Errorf("syncer: save suppliers: %w", err)
	}
	if err := s.client.Set(ctx, keyState, rawState, 0).Err(); err != nil {
		return fmt.Errorf("syncer: save checkpoint: %w", err)
	}
	return nil
}

// SyncState returns the checkpoint, or nil when none exists.
func (s *RedisStore) SyncState(ctx context.Context) (*SyncState, error) {
	raw, err := s.client.Get(ctx, keyState).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("syncer: load checkpoint: %w", err)
	}
	var state SyncState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("syncer: decode checkpoint: %w", err)
	}
	return &state, nil
}

// Clear drops the synced generation, checkpoint first.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, keyState, keyProducts, keySuppliers).Err(); err != nil {
		return fmt.Errorf("syncer: clear synced data: %w", err)
	}
	return nil
}

// HasCheckpoint implements the catalog read-side store.
func (s *RedisStore) HasCheckpoint(ctx context.Context) (bool, error) {
	n, err := s.client.Exists(ctx, keyState).Result()
	if err != nil {
		return false, fmt.Errorf("syncer: probe checkpoint: %w", err)
	}
	return n > 0, nil
}

// SyncedProducts implements the catalog read-side store.
func (s *RedisStore) SyncedProducts(ctx context.Context) ([]catalog.Product, error) {
	raw, err := s.client.Get(ctx, keyProducts).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("syncer: load products: %w", err)
	}
	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("syncer: decode products: %w", err)
	}
	return products, nil
}

// SyncedSuppliers implements the catalog read-side store.
func (s *RedisStore) SyncedSuppliers(ctx context.Context) ([]catalog.Supplier, error) {
	raw, err := s.client.Get(ctx, keySuppliers).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("syncer: load suppliers: %w", err)
	}
	var suppliers []catalog.Supplier
	if err := json.Unmarshal(raw, &suppliers); err != nil {
		return nil, fmt.Errorf("syncer: decode suppliers: %w", err)
	}
	return suppliers, nil
}
