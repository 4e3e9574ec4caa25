package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vantage-retail/vantage-retail/internal/alerts"
	"github.com/vantage-retail/vantage-retail/internal/dashboard"
	"github.com/vantage-retail/vantage-retail/internal/syncer"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	DashboardHandler *dashboard.Handler
	SyncHandler      *syncer.Handler
	AlertsHandler    *alerts.Handler
}

// NewRouter constructs the chi.Router with Vantage defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		if params.DashboardHandler != nil {
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		}
		if params.SyncHandler != nil {
			r.Route("/sync", params.SyncHandler.MountRoutes)
		}
		if params.AlertsHandler != nil {
			r.Route("/alerts", params.AlertsHandler.MountRoutes)
		}
	})

	return r
}
