package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vantage-retail/vantage-retail/internal/alerts"
	"github.com/vantage-retail/vantage-retail/internal/app"
	"github.com/vantage-retail/vantage-retail/internal/catalog"
	"github.com/vantage-retail/vantage-retail/internal/dashboard"
	"github.com/vantage-retail/vantage-retail/internal/platform/cache"
	"github.com/vantage-retail/vantage-retail/internal/seed"
	"github.com/vantage-retail/vantage-retail/internal/sheets"
	"github.com/vantage-retail/vantage-retail/internal/syncer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	seedData, err := seed.Load(time.Now())
	if err != nil {
		logger.Error("load seed dataset", slog.Any("error", err))
		os.Exit(1)
	}

	store := syncer.NewRedisStore(redisClient)
	catalogService := catalog.NewService(store, seedData)

	sheetsClient := sheets.NewClient(cfg.SheetsBaseURL, cfg.SheetsTimeout)
	salesGen := catalog.NewRandSales(cfg.SalesSeed)
	syncService := syncer.NewService(sheetsClient, store, salesGen, logger)
	if err := syncService.Resume(ctx); err != nil {
		logger.Warn("resume sync state", slog.Any("error", err))
	}
	syncHandler := syncer.NewHandler(logger, syncService)

	dashboardService := dashboard.NewService(catalogService)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	alertService := alerts.NewService(catalogService)
	alertHandler := alerts.NewHandler(logger, alertService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DashboardHandler: dashboardHandler,
		SyncHandler:      syncHandler,
		AlertsHandler:    alertHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
