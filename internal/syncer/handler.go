package syncer

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/vantage-retail/vantage-retail/internal/platform/httpx"
	"github.com/vantage-retail/vantage-retail/internal/sheets"
)

// Handler exposes the sync pipeline over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes registers the sync endpoints. Preview and commit hit the
// upstream spreadsheet, so they carry a tighter rate limit than the rest of
// the API.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(httprate.LimitByIP(10, time.Minute))
	r.Get("/status", h.handleStatus)
	r.Post("/preview", h.handlePreview)
	r.Post("/commit", h.handleCommit)
	r.Post("/cancel", h.handleCancel)
	r.Post("/restore", h.handleRestore)
}

type previewRequest struct {
	SheetURL string `json:"sheet_url" validate:"required,url"`
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "sheet_url must be a valid URL")
		return
	}

	preview, err := h.service.LoadPreview(r.Context(), req.SheetURL)
	if err != nil {
		h.logger.Warn("preview failed", slog.String("error", err.Error()))
		h.respondPreviewError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"sheet_url":       preview.SheetURL,
		"products":        preview.Products,
		"suppliers":       preview.Suppliers,
		"product_errors":  preview.ProductErrors,
		"supplier_errors": preview.SupplierErrors,
		"can_sync":        preview.CanSync(),
	})
}

func (h *Handler) respondPreviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBusy):
		httpx.Problem(w, http.StatusConflict, "Busy", "a sync operation is already in progress")
	case errors.Is(err, ErrNoValidRows):
		httpx.Problem(w, http.StatusUnprocessableEntity, "No Valid Rows",
			"no product rows passed validation, review the sheet and try again")
	case errors.Is(err, sheets.ErrInvalidLocator):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Link", sheets.UserMessage(err))
	case errors.Is(err, sheets.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", sheets.UserMessage(err))
	case errors.Is(err, sheets.ErrNotPublic):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Not Public", sheets.UserMessage(err))
	case sheets.IsFatal(err):
		httpx.Problem(w, http.StatusBadGateway, "Load Failed", sheets.UserMessage(err))
	default:
		httpx.RespondError(w, err)
	}
}

func (h *Handler) handleCommit(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Sync(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrBusy):
			httpx.Problem(w, http.StatusConflict, "Busy", "a sync operation is already in progress")
		case errors.Is(err, ErrNoPreview):
			httpx.Problem(w, http.StatusConflict, "No Preview", "load a preview before committing")
		case errors.Is(err, ErrSyncBlocked):
			httpx.Problem(w, http.StatusConflict, "Sync Blocked", "fix the validation errors before syncing")
		default:
			h.logger.Error("sync commit failed", slog.String("error", err.Error()))
			httpx.Problem(w, http.StatusInternalServerError, "Sync Failed",
				"sync failed while saving, previous data was kept")
		}
		return
	}
	httpx.JSON(w, http.StatusOK, state)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Cancel(); err != nil {
		httpx.Problem(w, http.StatusConflict, "Nothing To Cancel", "no preview is loaded")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Restore(r.Context()); err != nil {
		if errors.Is(err, ErrInvalidState) {
			httpx.Problem(w, http.StatusConflict, "Nothing To Restore", "no synced dataset is active")
			return
		}
		h.logger.Error("restore failed", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		h.logger.Error("status failed", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, status)
}
