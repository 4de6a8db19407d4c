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
)

// catalogEvent is the normalized shape the aggregator's REST client expects.
type catalogEvent struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Venue       string  `json:"venue"`
	Address     string  `json:"address"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type catalogResponse struct {
	Events     []catalogEvent `json:"events"`
	TotalCount int            `json:"total_count"`
	HasMore    bool           `json:"has_more"`
}

var errCatalogUnavailable = errors.New("catalog unavailable")

func main() {
	port := getEnv("PORT", "9001")
	catalogType := getEnv("CATALOG_TYPE", "ticketing")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var handler http.Handler

	switch catalogType {
	case "ticketing":
		handler = NewTicketingCatalog()
	case "community":
		handler = NewCommunityCatalog()
	case "music":
		handler = NewMusicCatalog()
	default:
		logger.Error("unknown catalog type", "type", catalogType)
		os.Exit(1)
	}
	logger.Info("starting mock catalog", "type", catalogType, "port", port)

	// Setup routes
	mux := http.NewServeMux()
	mux.Handle("/events", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write healthz response", "error", err)
		}
	})

	// Configure server
	addr := ":" + port
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", addr)
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
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
