package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tribe-app/matchd/internal/adapters/catalog"
	"github.com/tribe-app/matchd/internal/adapters/http/api"
	"github.com/tribe-app/matchd/internal/adapters/http/swagger"
	"github.com/tribe-app/matchd/internal/config"
	"github.com/tribe-app/matchd/internal/domain/model"
	"github.com/tribe-app/matchd/internal/engine"
	"github.com/tribe-app/matchd/internal/seed"
	"github.com/tribe-app/matchd/pkg/logger"
	"github.com/tribe-app/matchd/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	catalogMetricsRefresh = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store := catalog.NewMemStore()
	if cfg.Seed {
		if err := seed.Apply(ctx, store, time.Now()); err != nil {
			os.Stderr.WriteString("failed to seed catalog: " + err.Error() + "\n")
			return
		}
		loggerInstance.Info(ctx, "catalog seeded with sample data")
	}

	// Create and start the engine with configuration options
	eng := engine.New(
		engine.WithSource(store),
		engine.WithLogger(loggerInstance.Named("engine")),
		engine.WithTopK(cfg.TopK),
		engine.WithPoolLimit(cfg.PoolLimit),
		engine.WithMinScore(cfg.MinScore),
		engine.WithWorkers(cfg.BatchWorkers),
		engine.WithProfileWeights(cfg.ProfileWeights),
		engine.WithUniversityWeights(cfg.UniversityWeights),
	)
	if err := eng.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start engine: " + err.Error() + "\n")
		return
	}
	defer eng.Stop()

	// Keep the per-collection catalog size gauges fresh.
	go startCatalogMetricsUpdater(ctx, store)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the engine dependency.
	apiServer := api.NewServer(eng, eng, cfg.MaxLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startCatalogMetricsUpdater refreshes the catalog size gauges on a timer.
func startCatalogMetricsUpdater(ctx context.Context, store *catalog.MemStore) {
	ticker := time.NewTicker(catalogMetricsRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateCatalogMetrics(ctx, store)
		}
	}
}

// updateCatalogMetrics publishes per-collection catalog sizes.
func updateCatalogMetrics(ctx context.Context, store *catalog.MemStore) {
	for _, collection := range model.Collections() {
		metrics.UpdateCatalogSize(string(collection), store.Count(ctx, collection))
	}
}
