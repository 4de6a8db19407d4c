package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alex-user-go/events/internal/auth"
	"github.com/alex-user-go/events/internal/geo"
	"github.com/alex-user-go/events/internal/search/types"
)

// CatalogSpec describes one upstream catalog: identity, registry priority,
// declared capabilities, and where its backend lives.
type CatalogSpec struct {
	Name         string
	Prefix       string
	Priority     int
	Capabilities types.Capabilities
	BaseURL      string
}

// CatalogProvider adapts one upstream event catalog to the Provider contract.
// With a credential present it queries the live backend; without one, or when
// the live call fails, it serves its fixture dataset so the aggregator still
// gets a well-formed result.
type CatalogProvider struct {
	spec     CatalogSpec
	client   *restClient
	creds    auth.CredentialStore
	geocoder geo.Geocoder
	fixtures []wireEvent
	logger   *slog.Logger
}

// NewCatalogProvider creates a provider for the given catalog spec.
func NewCatalogProvider(
	spec CatalogSpec,
	creds auth.CredentialStore,
	geocoder geo.Geocoder,
	fixtures []wireEvent,
	timeout time.Duration,
	logger *slog.Logger,
) *CatalogProvider {
	return &CatalogProvider{
		spec:     spec,
		client:   newRESTClient(spec.BaseURL, timeout),
		creds:    creds,
		geocoder: geocoder,
		fixtures: fixtures,
		logger:   logger,
	}
}

// Name returns the catalog's display name.
func (p *CatalogProvider) Name() string { return p.spec.Name }

// Priority returns the catalog's registry priority.
func (p *CatalogProvider) Priority() int { return p.spec.Priority }

// Capabilities returns the catalog's declared capabilities.
func (p *CatalogProvider) Capabilities() types.Capabilities { return p.spec.Capabilities }

// Available reports whether the provider can serve a search, live or from
// fixtures. No network I/O.
func (p *CatalogProvider) Available() bool {
	return p.creds.Connected(p.spec.Name) || len(p.fixtures) > 0
}

// Search queries the catalog. A connected provider hits its backend and falls
// back to fixtures on failure; a disconnected provider serves fixtures
// directly. Empty results are not errors.
func (p *CatalogProvider) Search(ctx context.Context, params types.SearchParams) (*types.SearchResult, error) {
	token, connected := p.creds.Token(p.spec.Name)

	if connected {
		wire, err := p.client.searchEvents(ctx, params, token)
		if err == nil {
			return p.normalize(ctx, wire.Events, params, wire.HasMore), nil
		}
		if len(p.fixtures) == 0 {
			return nil, fmt.Errorf("%s: %w", p.spec.Name, err)
		}
		p.logger.Warn("catalog request failed, serving fixtures",
			"provider", p.spec.Name,
			"error", err)
	}

	if len(p.fixtures) == 0 {
		return nil, fmt.Errorf("%s: %w", p.spec.Name, ErrProviderUnavailable)
	}

	matched := filterFixtures(p.fixtures, params)
	return p.normalize(ctx, matched, params, false), nil
}

// normalize maps wire events into the provider-agnostic shape, prefixing IDs
// and computing distance from the search origin when it can be resolved.
func (p *CatalogProvider) normalize(ctx context.Context, wire []wireEvent, params types.SearchParams, hasMore bool) *types.SearchResult {
	origin, haveOrigin := p.origin(ctx, params)

	events := make([]types.Event, 0, len(wire))
	for _, w := range wire {
		title := strings.TrimSpace(w.Title)
		if title == "" {
			continue
		}
		date, err := time.Parse(time.RFC3339, strings.TrimSpace(w.Date))
		if err != nil {
			// Drop entries whose date cannot resolve to an instant.
			continue
		}

		var distance float64
		if haveOrigin && (w.Latitude != 0 || w.Longitude != 0) {
			distance = geo.Distance(origin, geo.Point{Latitude: w.Latitude, Longitude: w.Longitude})
		}

		events = append(events, types.Event{
			ID:            p.spec.Prefix + "_" + strings.TrimSpace(w.ID),
			Title:         title,
			Description:   strings.TrimSpace(w.Description),
			Venue:         strings.TrimSpace(w.Venue),
			Address:       strings.TrimSpace(w.Address),
			Category:      strings.TrimSpace(w.Category),
			Date:          date.UTC().Format(time.RFC3339),
			DistanceMiles: distance,
		})
	}

	return &types.SearchResult{
		Events:     events,
		TotalCount: len(events),
		HasMore:    hasMore,
		Source:     p.spec.Name,
	}
}

func (p *CatalogProvider) origin(ctx context.Context, params types.SearchParams) (geo.Point, bool) {
	if params.HasCoordinates() {
		return geo.Point{Latitude: params.Latitude, Longitude: params.Longitude}, true
	}
	if p.geocoder == nil {
		return geo.Point{}, false
	}
	pt, err := p.geocoder.Resolve(ctx, params.PostalCode)
	if err != nil {
		// Unknown origin just means distances stay at the 0 sentinel.
		return geo.Point{}, false
	}
	return pt, true
}

// filterFixtures applies the category and date-window filters a live backend
// would apply server-side, plus the advisory size cap.
func filterFixtures(fixtures []wireEvent, params types.SearchParams) []wireEvent {
	var start, end time.Time
	if params.StartDateTime != "" {
		start, _ = time.Parse(time.RFC3339, params.StartDateTime)
	}
	if params.EndDateTime != "" {
		end, _ = time.Parse(time.RFC3339, params.EndDateTime)
	}

	matched := make([]wireEvent, 0, len(fixtures))
	for _, f := range fixtures {
		if params.Category != "" && !strings.EqualFold(strings.TrimSpace(f.Category), strings.TrimSpace(params.Category)) {
			continue
		}
		if !start.IsZero() || !end.IsZero() {
			d, err := time.Parse(time.RFC3339, f.Date)
			if err != nil {
				continue
			}
			if !start.IsZero() && d.Before(start) {
				continue
			}
			if !end.IsZero() && d.After(end) {
				continue
			}
		}
		matched = append(matched, f)
		if params.Size > 0 && len(matched) >= params.Size {
			break
		}
	}
	return matched
}
