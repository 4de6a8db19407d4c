package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"
)

// MusicCatalog simulates a concert discovery vendor. Slow tail latency to
// exercise the aggregator's per-provider timeout.
type MusicCatalog struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// NewMusicCatalog creates a new MusicCatalog.
func NewMusicCatalog() *MusicCatalog {
	return &MusicCatalog{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

func (c *MusicCatalog) search(ctx context.Context, category string) ([]catalogEvent, error) {
	// Mostly quick, but 5% of requests stall for several seconds.
	latency := time.Duration(30+c.rng.Intn(120)) * time.Millisecond
	if c.rng.Float64() < 0.05 {
		latency = time.Duration(3+c.rng.Intn(5)) * time.Second
	}

	select {
	case <-time.After(latency):
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}

	return filterByCategory(c.generateEvents(), category), nil
}

func (c *MusicCatalog) generateEvents() []catalogEvent {
	base := time.Now().UTC().Truncate(24 * time.Hour)

	return []catalogEvent{
		{
			ID:          "show-88811",
			Title:       "Basement Tapes Live",
			Description: "Local four-piece, doors at eight",
			Venue:       "The Empty Bottle",
			Address:     "1035 N Western Ave",
			Category:    "Music",
			Date:        base.AddDate(0, 0, 1).Add(20 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8998,
			Longitude:   -87.6871,
		},
		{
			ID:          "show-90210",
			Title:       "Summer Stadium Tour",
			Description: "Tour stop as listed by the artist",
			Venue:       "Riverfront Stadium",
			Address:     "100 Stadium Way",
			Category:    "Music",
			Date:        base.AddDate(0, 0, 3).Add(19 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8827,
			Longitude:   -87.6233,
		},
		{
			ID:          "show-91455",
			Title:       "Vinyl Night: Soul Classics",
			Description: "All-vinyl DJ set, no cover",
			Venue:       "Harborview Rooftop",
			Address:     "505 N Lake Shore Dr",
			Category:    "Music",
			Date:        base.AddDate(0, 0, 6).Add(21 * time.Hour).Format(time.RFC3339),
			Latitude:    41.8918,
			Longitude:   -87.6133,
		},
	}
}

// ServeHTTP handles HTTP requests for this catalog.
func (c *MusicCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
