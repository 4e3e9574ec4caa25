package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	checkpoint bool
	products   []Product
	suppliers  []Supplier
	err        error
}

func (s *fakeStore) HasCheckpoint(ctx context.Context) (bool, error) {
	return s.checkpoint, s.err
}

func (s *fakeStore) SyncedProducts(ctx context.Context) ([]Product, error) {
	return s.products, s.err
}

func (s *fakeStore) SyncedSuppliers(ctx context.Context) ([]Supplier, error) {
	return s.suppliers, s.err
}

func testSeed() Seed {
	return Seed{
		Products:  []Product{{ID: "prod-1", SKU: "SEED-1"}},
		Suppliers: []Supplier{{ID: "sup-seed", Name: "Seed SpA"}},
		Alerts:    []Alert{{ID: "al-1"}},
		Orders:    []Order{{ID: "ord-1"}},
	}
}

func TestServiceReadsSeedWithoutCheckpoint(t *testing.T) {
	svc := NewService(&fakeStore{checkpoint: false}, testSeed())
	ctx := context.Background()

	source, err := svc.Source(ctx)
	require.NoError(t, err)
	require.Equal(t, SourceSeed, source)

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	require.Equal(t, "SEED-1", products[0].SKU)

	suppliers, err := svc.Suppliers(ctx)
	require.NoError(t, err)
	require.Equal(t, "Seed SpA", suppliers[0].Name)
}

func TestServiceSyncedOverridesSeed(t *testing.T) {
	store := &fakeStore{
		checkpoint: true,
		products:   []Product{{ID: "sync-1", SKU: "SYNC-1"}},
		suppliers:  []Supplier{{ID: "sup-1", Name: "Synced"}},
	}
	svc := NewService(store, testSeed())
	ctx := context.Background()

	source, err := svc.Source(ctx)
	require.NoError(t, err)
	require.Equal(t, SourceSynced, source)

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "SYNC-1", products[0].SKU)

	suppliers, err := svc.Suppliers(ctx)
	require.NoError(t, err)
	require.Equal(t, "Synced", suppliers[0].Name)

	// Alerts and orders always come from the seed.
	alerts, err := svc.Alerts(ctx)
	require.NoError(t, err)
	require.Equal(t, "al-1", alerts[0].ID)
}

func TestServiceNilStoreFallsBackToSeed(t *testing.T) {
	svc := NewService(nil, testSeed())
	products, err := svc.Products(context.Background())
	require.NoError(t, err)
	require.Equal(t, "SEED-1", products[0].SKU)
}

func TestServicePropagatesStoreErrors(t *testing.T) {
	svc := NewService(&fakeStore{err: errors.New("redis down")}, testSeed())
	_, err := svc.Products(context.Background())
	require.Error(t, err)
}
