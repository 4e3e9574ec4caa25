package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/vantage-retail/vantage-retail/internal/catalog"
)

// failKeyHook rejects SET commands against one key, leaving everything else
// untouched.
type failKeyHook struct {
	key string
}

func (h failKeyHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h failKeyHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "set" && len(cmd.Args()) > 1 && cmd.Args()[1] == h.key {
			return errors.New("write refused")
		}
		return next(ctx, cmd)
	}
}

func (h failKeyHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	has, err := store.HasCheckpoint(ctx)
	require.NoError(t, err)
	require.False(t, has)

	state, err := store.SyncState(ctx)
	require.NoError(t, err)
	require.Nil(t, state)

	products := []catalog.Product{{ID: "sync-1", SKU: "MLC-1", StockTotal: 12}}
	suppliers := []catalog.Supplier{{ID: "sup-1", Name: "Tecno Import"}}
	saved := SyncState{
		SyncID:         "c7c9e0f2-0000-0000-0000-000000000000",
		LastSync:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		SheetURL:       "https://docs.google.com/spreadsheets/d/x/edit",
		ProductsCount:  1,
		SuppliersCount: 1,
	}
	require.NoError(t, store.SaveDataset(ctx, products, suppliers, saved))

	has, err = store.HasCheckpoint(ctx)
	require.NoError(t, err)
	require.True(t, has)

	gotState, err := store.SyncState(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, *gotState)

	gotProducts, err := store.SyncedProducts(ctx)
	require.NoError(t, err)
	require.Equal(t, products, gotProducts)

	gotSuppliers, err := store.SyncedSuppliers(ctx)
	require.NoError(t, err)
	require.Equal(t, suppliers, gotSuppliers)
}

func TestRedisStoreSaveReplacesGeneration(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := SyncState{SyncID: "first", ProductsCount: 2}
	require.NoError(t, store.SaveDataset(ctx,
		[]catalog.Product{{ID: "sync-1"}, {ID: "sync-2"}},
		[]catalog.Supplier{{ID: "sup-1"}},
		first))

	second := SyncState{SyncID: "second", ProductsCount: 1}
	require.NoError(t, store.SaveDataset(ctx,
		[]catalog.Product{{ID: "sync-1", SKU: "NEW"}},
		[]catalog.Supplier{{ID: "sup-9"}},
		second))

	state, err := store.SyncState(ctx)
	require.NoError(t, err)
	require.Equal(t, "second", state.SyncID)

	products, err := store.SyncedProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "NEW", products[0].SKU)
}

func TestRedisStoreFailedWriteLeavesNoCheckpoint(t *testing.T) {
	mr := miniredis.RunT(t)
	clean := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = clean.Close() })
	store := NewRedisStore(clean)
	ctx := context.Background()

	seedProducts := []catalog.Product{{ID: "prod-1", SKU: "SEED-1"}}
	require.NoError(t, store.SaveDataset(ctx,
		[]catalog.Product{{ID: "sync-1", SKU: "OLD"}},
		[]catalog.Supplier{{ID: "sup-1"}},
		SyncState{SyncID: "first"}))

	// A client that refuses the suppliers write, so the save dies after the
	// products key but before the checkpoint.
	faulty := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = faulty.Close() })
	faulty.AddHook(failKeyHook{key: keySuppliers})

	err := NewRedisStore(faulty).SaveDataset(ctx,
		[]catalog.Product{{ID: "sync-1", SKU: "NEW"}},
		[]catalog.Supplier{{ID: "sup-9"}},
		SyncState{SyncID: "second"})
	require.Error(t, err)

	// The old checkpoint was dropped before any data key changed and the new
	// one never landed, so no checkpoint exists.
	has, err := store.HasCheckpoint(ctx)
	require.NoError(t, err)
	require.False(t, has)

	state, err := store.SyncState(ctx)
	require.NoError(t, err)
	require.Nil(t, state)

	// Without a checkpoint every read falls back to the seed, never to the
	// half-written generation.
	svc := catalog.NewService(store, catalog.Seed{Products: seedProducts})
	products, err := svc.Products(ctx)
	require.NoError(t, err)
	require.Equal(t, "SEED-1", products[0].SKU)
}

func TestRedisStoreClear(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDataset(ctx,
		[]catalog.Product{{ID: "sync-1"}},
		[]catalog.Supplier{{ID: "sup-1"}},
		SyncState{SyncID: "gen"}))
	require.NoError(t, store.Clear(ctx))

	has, err := store.HasCheckpoint(ctx)
	require.NoError(t, err)
	require.False(t, has)

	products, err := store.SyncedProducts(ctx)
	require.NoError(t, err)
	require.Nil(t, products)

	require.False(t, mr.Exists(keyProducts))
	require.False(t, mr.Exists(keySuppliers))
	require.False(t, mr.Exists(keyState))
}

func TestRedisStoreMissingDataReadsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	products, err := store.SyncedProducts(ctx)
	require.NoError(t, err)
	require.Nil(t, products)

	suppliers, err := store.SyncedSuppliers(ctx)
	require.NoError(t, err)
	require.Nil(t, suppliers)
}
