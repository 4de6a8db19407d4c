package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"
)

// TicketingCatalog simulates a large ticketing vendor: stadium and arena
// events, 100ms base latency, 10% failure rate.
type TicketingCatalog struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// NewTicketingCatalog creates a new TicketingCatalog.
func NewTicketingCatalog() *TicketingCatalog {
	return &TicketingCatalog{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

func (c *TicketingCatalog) search(ctx context.Context, category string) ([]catalogEvent, error) {
	// Simulate random latency (50ms to 200ms)
	latency := time.Duration(50+c.rng.Intn(150)) * time.Millisecond

	select {
	case <-time.After(latency):
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}

	// Simulate 10% failure rate
	if c.rng.Float64() < 0.1 {
		return nil, errCatalogUnavailable
	}

	return filterByCategory(c.generateEvents(), category), nil
}

func (c *TicketingCatalog) generateEvents() []catalogEvent {
	base := time.Now().UTC().Truncate(24 * time.Hour)

	return []catalogEvent{
		{
			ID:          "1000234",
			Title:       "Summer Stadium Tour",
			Description: "National touring act, one night only",
			Venue:       "Riverfront Stadium",
			Address:     "100 Stadium Way",
			Category:    "Music",
			Date:        base.AddDate(0, 0, 3).Add(19 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8827,
			Longitude:   -87.6233,
		},
		{
			ID:          "1000518",
			Title:       "Championship Quarterfinal",
			Description: "Home side hosts the quarterfinal",
			Venue:       "Riverfront Stadium",
			Address:     "100 Stadium Way",
			Category:    "Sports",
			Date:        base.AddDate(0, 0, 8).Add(18 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8827,
			Longitude:   -87.6233,
		},
		{
			ID:          "1000771",
			Title:       "Arena Ice Spectacular",
			Description: "Family show, two performances daily",
			Venue:       "Lakeside Arena",
			Address:     "2300 Arena Dr",
			Category:    "Family",
			Date:        base.AddDate(0, 0, 15).Add(14 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8706,
			Longitude:   -87.6183,
		},
	}
}

// ServeHTTP handles HTTP requests for this catalog.
func (c *TicketingCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := requireLocation(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events, err := c.search(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeCatalogResponse(w, c.logger, events)
}

// requireLocation enforces the location parameters every catalog needs.
func requireLocation(r *http.Request) error {
	q := r.URL.Query()
	postal := strings.TrimSpace(q.Get("postal_code"))
	lat := strings.TrimSpace(q.Get("lat"))
	lng := strings.TrimSpace(q.Get("lng"))

	if postal == "" && (lat == "" || lng == "") {
		return fmt.Errorf("postal_code or lat/lng required")
	}
	if strings.TrimSpace(q.Get("radius")) == "" {
		return fmt.Errorf("radius required")
	}
	return nil
}

func filterByCategory(events []catalogEvent, category string) []catalogEvent {
	category = strings.TrimSpace(category)
	if category == "" {
		return events
	}
	out := make([]catalogEvent, 0, len(events))
	for _, e := range events {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out
}

func writeCatalogResponse(w http.ResponseWriter, logger *slog.Logger, events []catalogEvent) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := catalogResponse{
		Events:     events,
		TotalCount: len(events),
		HasMore:    false,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
