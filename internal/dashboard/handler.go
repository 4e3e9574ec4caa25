package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vantage-retail/vantage-retail/internal/platform/httpx"
)

const defaultTopLimit = 10

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/kpis", h.handleKPIs)
	r.Get("/stock-distribution", h.handleStockDistribution)
	r.Get("/categories", h.handleCategories)
	r.Get("/critical-products", h.handleCriticalProducts)
	r.Get("/top-products", h.handleTopProducts)
	r.Get("/pareto", h.handlePareto)
	r.Get("/suppliers", h.handleSuppliers)
	r.Get("/suppliers/{supplierID}/products", h.handleSupplierProducts)
	r.Get("/sales-by-channel", h.handleSalesByChannel)
	r.Get("/sales-trend", h.handleSalesTrend)
	r.Get("/forecast", h.handleForecast)
	r.Get("/insights", h.handleInsights)
}

func (h *Handler) respond(w http.ResponseWriter, data any, err error, view string) {
	if err != nil {
		h.logger.Error("dashboard view failed",
			slog.String("view", view),
			slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) handleKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.service.KPIs(r.Context())
	h.respond(w, kpis, err, "kpis")
}

func (h *Handler) handleStockDistribution(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.service.StockDistribution(r.Context())
	h.respond(w, buckets, err, "stock-distribution")
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	h.respond(w, categories, err, "categories")
}

func (h *Handler) handleCriticalProducts(w http.ResponseWriter, r *http.Request) {
	critical, err := h.service.CriticalProducts(r.Context())
	h.respond(w, critical, err, "critical-products")
}

func (h *Handler) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	top, err := h.service.TopProducts(r.Context(), limit)
	h.respond(w, top, err, "top-products")
}

func (h *Handler) handlePareto(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Pareto(r.Context())
	h.respond(w, view, err, "pareto")
}

func (h *Handler) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.Suppliers(r.Context())
	h.respond(w, suppliers, err, "suppliers")
}

func (h *Handler) handleSupplierProducts(w http.ResponseWriter, r *http.Request) {
	supplierID := chi.URLParam(r, "supplierID")
	supplier, products, err := h.service.SupplierProducts(r.Context(), supplierID)
	if errors.Is(err, ErrSupplierNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "supplier "+supplierID+" does not exist")
		return
	}
	h.respond(w, map[string]any{
		"supplier": supplier,
		"products": products,
	}, err, "supplier-products")
}

func (h *Handler) handleSalesByChannel(w http.ResponseWriter, r *http.Request) {
	channels, err := h.service.SalesByChannel(r.Context())
	h.respond(w, channels, err, "sales-by-channel")
}

func (h *Handler) handleSalesTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.service.SalesTrend(r.Context())
	h.respond(w, trend, err, "sales-trend")
}

func (h *Handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Forecast(r.Context())
	h.respond(w, view, err, "forecast")
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.Insights(r.Context())
	h.respond(w, insights, err, "insights")
}
