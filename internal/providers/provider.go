package providers

import (
	"context"
	"errors"

	"github.com/alex-user-go/events/internal/search/types"
)

// Provider defines the interface for event catalog providers.
type Provider interface {
	// Name returns the provider's stable display name. Lookups treat it
	// case-insensitively.
	Name() string

	// Priority orders the registry; higher is searched-first conceptually
	// and wins deduplication tie-breaks.
	Priority() int

	// Capabilities returns static capability metadata declared at
	// construction.
	Capabilities() types.Capabilities

	// Available reports whether the provider can serve requests. Must be
	// cheap and must not perform network I/O.
	Available() bool

	// Search queries the provider. An empty result set is not an error;
	// implementations return a well-formed SearchResult with their own
	// name as Source even when serving fixture data.
	Search(ctx context.Context, params types.SearchParams) (*types.SearchResult, error)
}

// ErrProviderUnavailable is returned when a provider cannot serve a request.
var ErrProviderUnavailable = errors.New("provider unavailable")
