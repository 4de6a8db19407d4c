package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alex-user-go/events/internal/auth"
	"github.com/alex-user-go/events/internal/config"
	"github.com/alex-user-go/events/internal/geo"
	"github.com/alex-user-go/events/internal/handler"
	"github.com/alex-user-go/events/internal/middleware"
	"github.com/alex-user-go/events/internal/obs"
	"github.com/alex-user-go/events/internal/providers"
	"github.com/alex-user-go/events/internal/search"
	"github.com/alex-user-go/events/internal/search/cache"
	"github.com/alex-user-go/events/internal/search/ratelimit"
)

// Run initializes and runs the application.
func Run() error {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("EVENTS_CONFIG"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	// Initialize metrics
	metrics := obs.NewMetrics()

	// Credentials come from EVENTS_<NAME>_TOKEN variables.
	creds := newCredentialStore()

	// Initialize search façade (providers + aggregator)
	service := search.NewService(search.ServiceConfig{
		BaseURLs:    cfg.Providers.BaseURLs,
		Credentials: creds,
		Geocoder:    defaultGeocoder(),
		HTTPTimeout: cfg.Providers.HTTPTimeout.Std(),
		Options: search.Options{
			MaxResultsPerProvider: cfg.Aggregator.MaxResultsPerProvider,
			EnableDeduplication:   cfg.Aggregator.Dedup(),
			ParallelRequests:      cfg.Aggregator.Parallel(),
			ProviderTimeout:       cfg.Aggregator.ProviderTimeout.Std(),
		},
	}, metrics, logger)

	// Initialize cache
	searchCache := cache.NewCache(cfg.Cache.TTL.Std())
	defer searchCache.Close()

	// Initialize rate limiter
	limiter := ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window.Std())
	defer limiter.Close()

	// Initialize handler
	h := handler.New(service, searchCache, limiter, metrics, logger)

	// Setup routes with logging middleware
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", h.SearchHandler)
	mux.HandleFunc("GET /providers", h.ProvidersHandler)
	mux.HandleFunc("GET /capabilities", h.CapabilitiesHandler)
	mux.HandleFunc("GET /healthz", obs.HealthHandler(logger))
	mux.Handle("GET /metrics", metrics.Handler())

	// Wrap with middleware
	wrappedHandler := middleware.Logging(logger)(mux)

	// Configure server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      wrappedHandler,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		IdleTimeout:  cfg.Server.IdleTimeout.Std(),
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}

func newCredentialStore() *auth.EnvStore {
	names := make([]string, 0)
	for _, spec := range providers.CatalogSpecs(nil) {
		names = append(names, spec.Name)
	}
	return auth.NewEnvStore(names...)
}

// defaultGeocoder covers the metro areas the fixture catalogs live in.
// Deployments wanting live postal-code resolution swap in a real resolver.
func defaultGeocoder() geo.Geocoder {
	return geo.StaticGeocoder{
		"60601": {Latitude: 41.8858, Longitude: -87.6229},
		"60614": {Latitude: 41.9227, Longitude: -87.6533},
		"60622": {Latitude: 41.9020, Longitude: -87.6780},
		"10001": {Latitude: 40.7506, Longitude: -73.9972},
		"94103": {Latitude: 37.7726, Longitude: -122.4099},
	}
}
