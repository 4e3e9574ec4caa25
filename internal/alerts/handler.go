package alerts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vantage-retail/vantage-retail/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/summary", h.handleSummary)
	r.Get("/urgent-products", h.handleUrgentProducts)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	active, err := h.service.Active(r.Context())
	if err != nil {
		h.logger.Error("list alerts failed", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, active)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summarize(r.Context())
	if err != nil {
		h.logger.Error("alert summary failed", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) handleUrgentProducts(w http.ResponseWriter, r *http.Request) {
	urgent, err := h.service.UrgentProducts(r.Context())
	if err != nil {
		h.logger.Error("urgent products failed", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, urgent)
}
