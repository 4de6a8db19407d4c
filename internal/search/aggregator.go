package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/alex-user-go/events/internal/obs"
	"github.com/alex-user-go/events/internal/providers"
	"github.com/alex-user-go/events/internal/search/types"
)

// Uses the global OTel tracer provider; embedders install a real one.
var tracer = otel.Tracer("events/search")

// ErrNoProvidersAvailable is returned when no registered provider can serve
// a search. This is the only error Search propagates.
var ErrNoProvidersAvailable = errors.New("no providers available")

// Options configures the Aggregator.
type Options struct {
	// MaxResultsPerProvider caps the advisory size hint forwarded to each
	// provider.
	MaxResultsPerProvider int

	// EnableDeduplication collapses events reported by multiple providers.
	EnableDeduplication bool

	// ParallelRequests fans out to all providers concurrently; when false,
	// providers are queried sequentially in priority order.
	ParallelRequests bool

	// ProviderTimeout bounds each provider call so one hanging catalog
	// cannot stall the whole search.
	ProviderTimeout time.Duration
}

// DefaultOptions returns the standard aggregator configuration.
func DefaultOptions() Options {
	return Options{
		MaxResultsPerProvider: 50,
		EnableDeduplication:   true,
		ParallelRequests:      true,
		ProviderTimeout:       5 * time.Second,
	}
}

// Aggregator fans out searches to all available providers and merges their
// results. The registry is built once, sorted descending by priority, and
// never mutated afterwards.
type Aggregator struct {
	providers []providers.Provider
	opts      Options
	metrics   *obs.Metrics
	logger    *slog.Logger
}

// NewAggregator creates an Aggregator over the given providers.
func NewAggregator(provs []providers.Provider, opts Options, metrics *obs.Metrics, logger *slog.Logger) *Aggregator {
	registry := make([]providers.Provider, len(provs))
	copy(registry, provs)
	sort.SliceStable(registry, func(i, j int) bool {
		return registry[i].Priority() > registry[j].Priority()
	})

	if opts.MaxResultsPerProvider <= 0 {
		opts.MaxResultsPerProvider = DefaultOptions().MaxResultsPerProvider
	}
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = DefaultOptions().ProviderTimeout
	}

	return &Aggregator{
		providers: registry,
		opts:      opts,
		metrics:   metrics,
		logger:    logger,
	}
}

// Search queries every available provider and returns the merged,
// deduplicated, date-sorted result. Individual provider failures are
// absorbed as empty contributions; Search fails only when no provider is
// available at all.
func (a *Aggregator) Search(ctx context.Context, params types.SearchParams) (*types.SearchResult, error) {
	ctx, span := tracer.Start(ctx, "search.aggregate",
		trace.WithAttributes(
			attribute.String("search.postal_code", params.PostalCode),
			attribute.Float64("search.radius_miles", params.RadiusMiles),
		))
	defer span.End()

	available := a.availableProviders()
	if len(available) == 0 {
		span.SetStatus(codes.Error, ErrNoProvidersAvailable.Error())
		return nil, ErrNoProvidersAvailable
	}

	params.Size = a.opts.MaxResultsPerProvider

	// Results are collected per registry slot so concatenation always
	// follows priority order, never completion order. Dedup tie-breaks
	// depend on this.
	results := make([]*types.SearchResult, len(available))
	var (
		mu        sync.Mutex
		succeeded int
		failed    int
	)

	collect := func(i int, p providers.Provider) {
		res := a.callProvider(ctx, p, params)
		mu.Lock()
		if res != nil {
			succeeded++
			results[i] = res
		} else {
			failed++
			results[i] = &types.SearchResult{
				Events: []types.Event{},
				Source: p.Name(),
			}
		}
		mu.Unlock()
	}

	if a.opts.ParallelRequests {
		var wg sync.WaitGroup
		for i, p := range available {
			i, p := i, p
			wg.Add(1)
			go func() {
				defer wg.Done()
				collect(i, p)
			}()
		}
		wg.Wait()
	} else {
		for i, p := range available {
			collect(i, p)
		}
	}

	events := make([]types.Event, 0, len(available)*a.opts.MaxResultsPerProvider)
	var hasMore bool
	for _, res := range results {
		events = append(events, res.Events...)
		hasMore = hasMore || res.HasMore
	}

	if a.opts.EnableDeduplication {
		events = Deduplicate(events)
	}
	sortByDate(events)

	span.SetAttributes(
		attribute.Int("search.events", len(events)),
		attribute.Int("search.providers_failed", failed),
	)

	return &types.SearchResult{
		Events:             events,
		TotalCount:         len(events),
		HasMore:            hasMore,
		Source:             types.SourceAggregated,
		ProvidersTotal:     len(available),
		ProvidersSucceeded: succeeded,
		ProvidersFailed:    failed,
	}, nil
}

// callProvider runs one provider search under the per-provider timeout.
// Returns nil on failure; errors and panics stop here, never in the caller.
func (a *Aggregator) callProvider(ctx context.Context, p providers.Provider, params types.SearchParams) (res *types.SearchResult) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.ProviderTimeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "search.provider",
		trace.WithAttributes(attribute.String("provider.name", p.Name())))
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			a.providerFailed(span, p, start, fmt.Errorf("panic: %v", r))
			res = nil
		}
	}()

	result, err := p.Search(ctx, params)
	if err != nil {
		a.providerFailed(span, p, start, err)
		return nil
	}
	if result == nil || result.Events == nil {
		// Providers must not signal "no results" this way, but tolerate it.
		result = &types.SearchResult{Events: []types.Event{}, Source: p.Name()}
	}

	a.metrics.ObserveProvider(p.Name(), obs.StatusOK, time.Since(start))
	span.SetStatus(codes.Ok, "")
	return result
}

func (a *Aggregator) providerFailed(span trace.Span, p providers.Provider, start time.Time, err error) {
	a.metrics.ObserveProvider(p.Name(), obs.StatusError, time.Since(start))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	a.logger.Warn("provider search failed",
		"provider", p.Name(),
		"error", err)
}

// Deduplicate collapses events that share a title, calendar day, and venue,
// compared on trimmed lowercase text. The first occurrence wins, so callers
// feeding priority-ordered input keep the highest-priority copy. Two distinct
// events with identical key fields are indistinguishable here; that loss is
// accepted.
func Deduplicate(events []types.Event) []types.Event {
	seen := make(map[string]struct{}, len(events))
	out := make([]types.Event, 0, len(events))
	for _, e := range events {
		key := dedupKey(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func dedupKey(e types.Event) string {
	day := strings.TrimSpace(e.Date)
	if d, err := e.ParsedDate(); err == nil {
		day = d.UTC().Format("2006-01-02")
	}
	return strings.ToLower(strings.TrimSpace(e.Title)) + "|" +
		day + "|" +
		strings.ToLower(strings.TrimSpace(e.Venue))
}

// sortByDate orders events ascending by instant. Events whose dates do not
// parse sort to the end, in their incoming relative order.
func sortByDate(events []types.Event) {
	type keyed struct {
		event types.Event
		at    time.Time
		ok    bool
	}
	keys := make([]keyed, len(events))
	for i, e := range events {
		at, err := e.ParsedDate()
		keys[i] = keyed{event: e, at: at, ok: err == nil}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ki, kj := keys[i], keys[j]
		switch {
		case ki.ok && kj.ok:
			return ki.at.Before(kj.at)
		case ki.ok:
			return true
		default:
			return false
		}
	})
	for i, k := range keys {
		events[i] = k.event
	}
}

// AvailableProviders returns the names of currently-available providers in
// registry (priority) order.
func (a *Aggregator) AvailableProviders() []string {
	available := a.availableProviders()
	names := make([]string, len(available))
	for i, p := range available {
		names[i] = p.Name()
	}
	return names
}

// ProviderCapabilities returns capability metadata for every registered
// provider, available or not.
func (a *Aggregator) ProviderCapabilities() map[string]types.Capabilities {
	caps := make(map[string]types.Capabilities, len(a.providers))
	for _, p := range a.providers {
		caps[p.Name()] = p.Capabilities()
	}
	return caps
}

func (a *Aggregator) availableProviders() []providers.Provider {
	available := make([]providers.Provider, 0, len(a.providers))
	for _, p := range a.providers {
		if p.Available() {
			available = append(available, p)
		}
	}
	return available
}
