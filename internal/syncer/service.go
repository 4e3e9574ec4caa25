package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vantage-retail/vantage-retail/internal/catalog"
	"github.com/vantage-retail/vantage-retail/internal/sheets"
)

// Tab positions inside the published spreadsheet.
const (
	productsTab  = 0
	suppliersTab = 1
)

// SheetSource fetches one spreadsheet tab. Satisfied by sheets.Client.
type SheetSource interface {
	FetchSheet(ctx context.Context, sheetID string, gid int) ([]sheets.Row, error)
}

// Status is a snapshot of the pipeline for the status endpoint.
type Status struct {
	State      State      `json:"state"`
	Error      string     `json:"error,omitempty"`
	Preview    *Preview   `json:"preview,omitempty"`
	Checkpoint *SyncState `json:"checkpoint,omitempty"`
}

// Service runs the reconciliation pipeline. All state transitions happen
// under a single mutex; only one preview or sync may be in flight.
type Service struct {
	source  SheetSource
	storage Storage
	gen     catalog.SalesGenerator
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	state   State
	preview *Preview
	lastErr string
	busy    bool
}

func NewService(source SheetSource, storage Storage, gen catalog.SalesGenerator, logger *slog.Logger) *Service {
	return &Service{
		source:  source,
		storage: storage,
		gen:     gen,
		logger:  logger,
		now:     time.Now,
		state:   StateIdle,
	}
}

// Resume re-enters the synced state when a checkpoint survives a restart.
func (s *Service) Resume(ctx context.Context) error {
	state, err := s.storage.SyncState(ctx)
	if err != nil {
		return err
	}
	if state == nil {
		return nil
	}
	s.mu.Lock()
	s.state = StateSynced
	s.mu.Unlock()
	s.logger.Info("resumed synced dataset",
		slog.String("sync_id", state.SyncID),
		slog.Int("products", state.ProductsCount))
	return nil
}

// LoadPreview fetches both tabs, validates every row and buffers the result.
// Nothing is persisted. A sheet where every product row fails validation
// routes the pipeline to the error state.
func (s *Service) LoadPreview(ctx context.Context, locator string) (*Preview, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	s.state = StateLoading
	s.lastErr = ""
	s.mu.Unlock()

	preview, err := s.loadPreview(ctx, locator)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.state = StateError
		s.preview = nil
		s.lastErr = sheets.UserMessage(err)
		if s.lastErr == "" {
			s.lastErr = err.Error()
		}
		return nil, err
	}
	s.state = StatePreview
	s.preview = preview
	return preview, nil
}

func (s *Service) loadPreview(ctx context.Context, locator string) (*Preview, error) {
	sheetID, err := sheets.ExtractSheetID(locator)
	if err != nil {
		return nil, err
	}

	var productRows, supplierRows []sheets.Row
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.source.FetchSheet(gctx, sheetID, productsTab)
		if err != nil {
			return err
		}
		productRows = rows
		return nil
	})
	g.Go(func() error {
		// The suppliers tab is optional. A failed fetch means suppliers get
		// synthesized from product rows at sync time.
		rows, err := s.source.FetchSheet(gctx, sheetID, suppliersTab)
		if err != nil {
			s.logger.Warn("suppliers tab unavailable", slog.String("error", err.Error()))
			return nil
		}
		supplierRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	products, productErrs := sheets.ValidateProductRows(productRows)
	suppliers, supplierErrs := sheets.ValidateSupplierRows(supplierRows)

	if len(products) == 0 && len(productErrs) > 0 {
		return nil, fmt.Errorf("%w: %d errors", ErrNoValidRows, len(productErrs))
	}

	s.logger.Info("preview loaded",
		slog.Int("products", len(products)),
		slog.Int("suppliers", len(suppliers)),
		slog.Int("product_errors", len(productErrs)),
		slog.Int("supplier_errors", len(supplierErrs)))

	return &Preview{
		SheetURL:       locator,
		Products:       products,
		Suppliers:      suppliers,
		ProductErrors:  productErrs,
		SupplierErrors: supplierErrs,
	}, nil
}

// Sync materializes the previewed rows into catalog records and persists them
// as the new synced generation. Blocked unless the preview passed validation
// cleanly. On a persistence failure the previous generation stays selected.
func (s *Service) Sync(ctx context.Context) (*SyncState, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.state != StatePreview || s.preview == nil {
		s.mu.Unlock()
		return nil, ErrNoPreview
	}
	if !s.preview.CanSync() {
		s.mu.Unlock()
		return nil, ErrSyncBlocked
	}
	preview := s.preview
	s.busy = true
	s.state = StateSyncing
	s.mu.Unlock()

	products := make([]catalog.Product, 0, len(preview.Products))
	for i, row := range preview.Products {
		products = append(products, catalog.BuildProduct(row, i, s.gen))
	}

	var suppliers []catalog.Supplier
	if len(preview.Suppliers) > 0 {
		suppliers = make([]catalog.Supplier, 0, len(preview.Suppliers))
		for _, row := range preview.Suppliers {
			suppliers = append(suppliers, catalog.BuildSupplier(row, products))
		}
	} else {
		suppliers = catalog.SynthesizeSuppliers(products)
	}

	state := SyncState{
		SyncID:         uuid.NewString(),
		LastSync:       s.now().UTC(),
		SheetURL:       preview.SheetURL,
		ProductsCount:  len(products),
		SuppliersCount: len(suppliers),
	}

	err := s.storage.SaveDataset(ctx, products, suppliers, state)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.state = StateError
		s.lastErr = "Sync failed while saving. Previous data was kept."
		return nil, err
	}
	s.state = StateSynced
	s.preview = nil
	s.logger.Info("sync committed",
		slog.String("sync_id", state.SyncID),
		slog.Int("products", state.ProductsCount),
		slog.Int("suppliers", state.SuppliersCount))
	return &state, nil
}

// Cancel discards the loaded preview without touching persisted data.
func (s *Service) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePreview && s.state != StateError {
		return ErrInvalidState
	}
	s.preview = nil
	s.lastErr = ""
	s.state = StateIdle
	return nil
}

// Restore drops the synced generation so reads fall back to the seed.
func (s *Service) Restore(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateSynced {
		s.mu.Unlock()
		return ErrInvalidState
	}
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = nil
	s.state = StateIdle
	s.logger.Info("synced dataset restored to seed")
	return nil
}

// Status reports the pipeline stage, the buffered preview and the persisted
// checkpoint if any.
func (s *Service) Status(ctx context.Context) (Status, error) {
	checkpoint, err := s.storage.SyncState(ctx)
	if err != nil {
		return Status{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		State:      s.state,
		Error:      s.lastErr,
		Preview:    s.preview,
		Checkpoint: checkpoint,
	}, nil
}
