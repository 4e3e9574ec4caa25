// Package syncer drives the spreadsheet reconciliation pipeline: preview,
// validation gating, atomic persistence of the synced generation, restore.
package syncer

import (
	"errors"
	"time"

	"github.com/vantage-retail/vantage-retail/internal/sheets"
)

// State names the pipeline stage. Transitions: idle → loading → preview →
// syncing → synced, error reachable from loading and syncing, cancel from
// preview, restore from synced.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StatePreview State = "preview"
	StateSyncing State = "syncing"
	StateSynced  State = "synced"
	StateError   State = "error"
)

// SyncState is the checkpoint describing the last successful reconciliation.
// Its presence selects the synced generation for every downstream read.
type SyncState struct {
	SyncID         string    `json:"sync_id"`
	LastSync       time.Time `json:"lastSync"`
	SheetURL       string    `json:"sheetUrl"`
	ProductsCount  int       `json:"productsCount"`
	SuppliersCount int       `json:"suppliersCount"`
}

// Preview buffers validated rows and accumulated errors between the loading
// and syncing stages. Nothing is persisted at this point.
type Preview struct {
	SheetURL       string               `json:"sheet_url"`
	Products       []sheets.ProductRow  `json:"products"`
	Suppliers      []sheets.SupplierRow `json:"suppliers"`
	ProductErrors  []sheets.RowError    `json:"product_errors"`
	SupplierErrors []sheets.RowError    `json:"supplier_errors"`
}

// CanSync reports whether the preview satisfies the sync gate: at least one
// valid product row and zero accumulated errors of either kind. There is no
// partial sync of only the clean rows.
func (p *Preview) CanSync() bool {
	return p != nil && len(p.Products) > 0 && len(p.ProductErrors) == 0 && len(p.SupplierErrors) == 0
}

// ErrBusy signals a pipeline run already in flight.
var ErrBusy = errors.New("syncer: pipeline busy")

// ErrNoPreview signals an action that needs a loaded preview.
var ErrNoPreview = errors.New("syncer: no preview loaded")

// ErrSyncBlocked signals the fix-errors-first gate.
var ErrSyncBlocked = errors.New("syncer: validation errors must be fixed before syncing")

// ErrNoValidRows signals a sheet where every product row failed validation.
var ErrNoValidRows = errors.New("syncer: no valid product rows")

// ErrInvalidState signals an action issued from the wrong pipeline stage.
var ErrInvalidState = errors.New("syncer: action not allowed in current state")
