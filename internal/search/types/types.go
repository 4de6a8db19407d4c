package types

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a normalized event from any provider.
// ID is conventionally "{providerPrefix}_{nativeID}"; the prefix identifies
// the source but plays no part in deduplication.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Venue       string `json:"venue"`
	Address     string `json:"address,omitempty"`
	Category    string `json:"category,omitempty"`
	// Date is an ISO-8601 (RFC 3339) timestamp resolvable to an absolute
	// instant.
	Date string `json:"date"`
	// DistanceMiles is miles from the search origin. 0 means unknown,
	// not "at the origin".
	DistanceMiles float64 `json:"distance"`
}

// ParsedDate returns the event date as an absolute instant.
func (e Event) ParsedDate() (time.Time, error) {
	return time.Parse(time.RFC3339, e.Date)
}

// SearchParams holds validated event search parameters. Callers set either
// PostalCode or the Latitude/Longitude pair, never both.
type SearchParams struct {
	PostalCode string
	Latitude   float64
	Longitude  float64
	// RadiusMiles must be positive.
	RadiusMiles float64
	// StartDateTime / EndDateTime are optional inclusive ISO-8601 bounds.
	StartDateTime string
	EndDateTime   string
	Category      string
	// Size and Page are advisory hints forwarded to providers; the
	// aggregator does not enforce them globally.
	Size int
	Page int
}

// HasCoordinates reports whether the params carry an explicit lat/lng pair.
func (p SearchParams) HasCoordinates() bool {
	return p.PostalCode == ""
}

// Validate checks the postal-code-XOR-coordinates rule and the radius.
func (p SearchParams) Validate() error {
	hasPostal := p.PostalCode != ""
	hasCoords := p.Latitude != 0 || p.Longitude != 0

	if hasPostal && hasCoords {
		return fmt.Errorf("postal code and coordinates are mutually exclusive")
	}
	if !hasPostal && !hasCoords {
		return fmt.Errorf("postal code or coordinates required")
	}
	if hasPostal {
		if len(p.PostalCode) != 5 || strings.Trim(p.PostalCode, "0123456789") != "" {
			return fmt.Errorf("postal code must be 5 digits")
		}
	}
	if p.RadiusMiles <= 0 {
		return fmt.Errorf("radius must be positive")
	}
	return nil
}

// SourceAggregated is the Source value of a merged SearchResult.
const SourceAggregated = "Aggregated"

// SearchResult represents one provider's results, or the merged set when
// Source is SourceAggregated.
type SearchResult struct {
	Events     []Event `json:"events"`
	TotalCount int     `json:"total_count"`
	HasMore    bool    `json:"has_more"`
	Source     string  `json:"source"`

	ProvidersTotal     int `json:"-"`
	ProvidersSucceeded int `json:"-"`
	ProvidersFailed    int `json:"-"`
}

// Capabilities describes what a provider supports. Advisory metadata for
// callers; the aggregator does not enforce it.
type Capabilities struct {
	LocationSearch bool `json:"location_search"`
	CategoryFilter bool `json:"category_filter"`
	DateRange      bool `json:"date_range"`
	Pagination     bool `json:"pagination"`
}
