package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/alex-user-go/events/internal/auth"
	"github.com/alex-user-go/events/internal/geo"
	"github.com/alex-user-go/events/internal/obs"
	"github.com/alex-user-go/events/internal/providers"
	"github.com/alex-user-go/events/internal/search/types"
)

// ServiceConfig fixes the provider set and aggregator limits in one place.
type ServiceConfig struct {
	// BaseURLs maps catalog names to backend URLs; catalogs without one
	// serve fixtures only.
	BaseURLs    map[string]string
	Credentials auth.CredentialStore
	Geocoder    geo.Geocoder
	// HTTPTimeout bounds each catalog backend call.
	HTTPTimeout time.Duration
	Options     Options
}

// Service is the search façade: the full catalog set in priority order
// wrapped around one Aggregator. It holds no logic of its own.
type Service struct {
	agg *Aggregator
}

// NewService builds the standard provider set and wraps it.
func NewService(cfg ServiceConfig, metrics *obs.Metrics, logger *slog.Logger) *Service {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	provs := providers.BuildCatalogs(cfg.BaseURLs, cfg.Credentials, cfg.Geocoder, cfg.HTTPTimeout, logger)
	return NewServiceWithProviders(provs, cfg.Options, metrics, logger)
}

// NewServiceWithProviders wraps an explicit provider set. Tests use this to
// build isolated instances.
func NewServiceWithProviders(provs []providers.Provider, opts Options, metrics *obs.Metrics, logger *slog.Logger) *Service {
	return &Service{agg: NewAggregator(provs, opts, metrics, logger)}
}

// Search forwards to the aggregator.
func (s *Service) Search(ctx context.Context, params types.SearchParams) (*types.SearchResult, error) {
	return s.agg.Search(ctx, params)
}

// FilterByTimeframe forwards to the pure timeframe filter.
func (s *Service) FilterByTimeframe(events []types.Event, timeframe string) []types.Event {
	return FilterByTimeframe(events, timeframe)
}

// AvailableProviders returns currently-available provider names in priority
// order.
func (s *Service) AvailableProviders() []string {
	return s.agg.AvailableProviders()
}

// ProviderCapabilities returns capability metadata for every registered
// provider.
func (s *Service) ProviderCapabilities() map[string]types.Capabilities {
	return s.agg.ProviderCapabilities()
}
