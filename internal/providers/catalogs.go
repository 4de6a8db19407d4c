package providers

import (
	"log/slog"
	"time"

	"github.com/alex-user-go/events/internal/auth"
	"github.com/alex-user-go/events/internal/geo"
	"github.com/alex-user-go/events/internal/search/types"
)

// Catalog identity constants. Priorities order the registry; higher is
// preferred on deduplication ties.
const (
	NameTicketmaster = "Ticketmaster"
	NameEventbrite   = "Eventbrite"
	NameSeatGeek     = "SeatGeek"
	NameYelp         = "Yelp"
	NameBandsintown  = "Bandsintown"
	NameArtInstitute = "Art Institute"
	NameMeetup       = "Meetup"
)

// CatalogSpecs returns the specs of every supported catalog in priority
// order. Base URLs are keyed by catalog name; a missing entry leaves the
// provider fixture-only.
func CatalogSpecs(baseURLs map[string]string) []CatalogSpec {
	specs := []CatalogSpec{
		{
			Name:     NameTicketmaster,
			Prefix:   "tm",
			Priority: 100,
			Capabilities: types.Capabilities{
				LocationSearch: true,
				CategoryFilter: true,
				DateRange:      true,
				Pagination:     true,
			},
		},
		{
			Name:     NameEventbrite,
			Prefix:   "eb",
			Priority: 90,
			Capabilities: types.Capabilities{
				LocationSearch: true,
				CategoryFilter: true,
				DateRange:      true,
				Pagination:     true,
			},
		},
		{
			Name:     NameSeatGeek,
			Prefix:   "sg",
			Priority: 80,
			Capabilities: types.Capabilities{
				LocationSearch: true,
				CategoryFilter: true,
				DateRange:      true,
				Pagination:     true,
			},
		},
		{
			Name:     NameYelp,
			Prefix:   "yelp",
			Priority: 70,
			Capabilities: types.Capabilities{
				LocationSearch: true,
				CategoryFilter: true,
				DateRange:      false,
				Pagination:     true,
			},
		},
		{
			Name:     NameBandsintown,
			Prefix:   "bit",
			Priority: 60,
			Capabilities: types.Capabilities{
				LocationSearch: true,
				CategoryFilter: false,
				DateRange:      true,
				Pagination:     false,
			},
		},
		{
			Name:     NameArtInstitute,
			Prefix:   "aic",
			Priority: 50,
			Capabilities: types.Capabilities{
				LocationSearch: false,
				CategoryFilter: true,
				DateRange:      true,
				Pagination:     true,
			},
		},
		{
			Name:     NameMeetup,
			Prefix:   "mu",
			Priority: 40,
			Capabilities: types.Capabilities{
				LocationSearch: true,
				CategoryFilter: true,
				DateRange:      true,
				Pagination:     false,
			},
		},
	}

	for i := range specs {
		specs[i].BaseURL = baseURLs[specs[i].Name]
	}
	return specs
}

// BuildCatalogs constructs the full provider set in priority order.
func BuildCatalogs(
	baseURLs map[string]string,
	creds auth.CredentialStore,
	geocoder geo.Geocoder,
	timeout time.Duration,
	logger *slog.Logger,
) []Provider {
	specs := CatalogSpecs(baseURLs)
	providers := make([]Provider, 0, len(specs))
	for _, spec := range specs {
		providers = append(providers,
			NewCatalogProvider(spec, creds, geocoder, FixtureEvents(spec.Name), timeout, logger))
	}
	return providers
}
