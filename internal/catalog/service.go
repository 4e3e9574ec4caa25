package catalog

import (
	"context"
	"fmt"
)

// Dataset generations. At most one is active, selected by the checkpoint.
const (
	SourceSeed   = "seed"
	SourceSynced = "synced"
)

// Store reads the synced generation of the dataset.
type Store interface {
	HasCheckpoint(ctx context.Context) (bool, error)
	SyncedProducts(ctx context.Context) ([]Product, error)
	SyncedSuppliers(ctx context.Context) ([]Supplier, error)
}

// Seed is the embedded fallback dataset.
type Seed struct {
	Products  []Product
	Suppliers []Supplier
	Alerts    []Alert
	Orders    []Order
}

// Service resolves the active dataset: synced overrides seed whenever a
// checkpoint exists, with no mixing between generations. Every display
// surface reads through these accessors; none touches storage directly.
type Service struct {
	store Store
	seed  Seed
}

// NewService builds the dataset service.
func NewService(store Store, seed Seed) *Service {
	return &Service{store: store, seed: seed}
}

// Source reports which generation is active.
func (s *Service) Source(ctx context.Context) (string, error) {
	synced, err := s.hasSynced(ctx)
	if err != nil {
		return "", err
	}
	if synced {
		return SourceSynced, nil
	}
	return SourceSeed, nil
}

// Products returns the active product set.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	synced, err := s.hasSynced(ctx)
	if err != nil {
		return nil, err
	}
	if !synced {
		return s.seed.Products, nil
	}
	products, err := s.store.SyncedProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: read synced products: %w", err)
	}
	return products, nil
}

// Suppliers returns the active supplier set.
func (s *Service) Suppliers(ctx context.Context) ([]Supplier, error) {
	synced, err := s.hasSynced(ctx)
	if err != nil {
		return nil, err
	}
	if !synced {
		return s.seed.Suppliers, nil
	}
	suppliers, err := s.store.SyncedSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: read synced suppliers: %w", err)
	}
	return suppliers, nil
}

// Alerts returns the alert list. Alerts are seed-only; generation is
// outside this core.
func (s *Service) Alerts(ctx context.Context) ([]Alert, error) {
	return s.seed.Alerts, nil
}

// Orders returns the seed-only order history used by trend views.
func (s *Service) Orders(ctx context.Context) ([]Order, error) {
	return s.seed.Orders, nil
}

func (s *Service) hasSynced(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}
	ok, err := s.store.HasCheckpoint(ctx)
	if err != nil {
		return false, fmt.Errorf("catalog: read checkpoint: %w", err)
	}
	return ok, nil
}
