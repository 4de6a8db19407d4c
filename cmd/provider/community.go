package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"
)

// CommunityCatalog simulates a community listings vendor: workshops, markets
// and meetups. Faster than the ticketing vendor but flakier (15% failures).
type CommunityCatalog struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// NewCommunityCatalog creates a new CommunityCatalog.
func NewCommunityCatalog() *CommunityCatalog {
	return &CommunityCatalog{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

func (c *CommunityCatalog) search(ctx context.Context, category string) ([]catalogEvent, error) {
	// Simulate random latency (20ms to 100ms)
	latency := time.Duration(20+c.rng.Intn(80)) * time.Millisecond

	select {
	case <-time.After(latency):
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}

	// Simulate 15% failure rate
	if c.rng.Float64() < 0.15 {
		return nil, errCatalogUnavailable
	}

	return filterByCategory(c.generateEvents(), category), nil
}

func (c *CommunityCatalog) generateEvents() []catalogEvent {
	base := time.Now().UTC().Truncate(24 * time.Hour)

	return []catalogEvent{
		{
			ID:          "wk-4481",
			Title:       "Intro to Woodworking",
			Description: "Hands-on beginner workshop",
			Venue:       "Makers Guild",
			Address:     "58 Canal St",
			Category:    "Workshop",
			Date:        base.AddDate(0, 0, 2).Add(10 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8892,
			Longitude:   -87.6351,
		},
		{
			ID:          "mk-0193",
			Title:       "Night Market",
			Description: "Street food and local vendors",
			Venue:       "Pilsen Plaza",
			Address:     "1800 S Racine Ave",
			Category:    "Food & Drink",
			Date:        base.AddDate(0, 0, 4).Add(17 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8578,
			Longitude:   -87.6566,
		},
		{
			ID:          "mu-7730",
			Title:       "Go Developers Meetup",
			Description: "Monthly talks and hallway track",
			Venue:       "Innovation Hall",
			Address:     "900 W Fulton Market",
			Category:    "Tech",
			Date:        base.AddDate(0, 0, 10).Add(18 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8868,
			Longitude:   -87.6487,
		},
		{
			ID:          "mk-0201",
			Title:       "Summer Stadium Tour",
			Description: "Community listing for the stadium show",
			Venue:       "Riverfront Stadium",
			Address:     "100 Stadium Way",
			Category:    "Music",
			Date:        base.AddDate(0, 0, 3).Add(19 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8827,
			Longitude:   -87.6233,
		},
	}
}

// ServeHTTP handles HTTP requests for this catalog.
func (c *CommunityCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
