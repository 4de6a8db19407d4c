package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/events/internal/auth"
	"github.com/alex-user-go/events/internal/geo"
	"github.com/alex-user-go/events/internal/search/types"
)

func testSpec(baseURL string) CatalogSpec {
	return CatalogSpec{
		Name:     "TestCatalog",
		Prefix:   "tc",
		Priority: 100,
		Capabilities: types.Capabilities{
			LocationSearch: true,
			CategoryFilter: true,
			DateRange:      true,
			Pagination:     true,
		},
		BaseURL: baseURL,
	}
}

func testGeocoder() geo.Geocoder {
	return geo.StaticGeocoder{
		"60601": {Latitude: 41.8858, Longitude: -87.6229},
	}
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(time.RFC3339)
}

func testFixtures() []wireEvent {
	return []wireEvent{
		{ID: "f1", Title: "Fixture Concert", Venue: "Fixture Hall", Category: "Music", Date: futureDate(2), Latitude: 41.88, Longitude: -87.63},
		{ID: "f2", Title: "Fixture Workshop", Venue: "Fixture Studio", Category: "Workshop", Date: futureDate(5)},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestCatalogProvider_Available(t *testing.T) {
	tests := []struct {
		name     string
		creds    auth.CredentialStore
		fixtures []wireEvent
		want     bool
	}{
		{
			name:     "credential present",
			creds:    auth.StaticStore{"testcatalog": "secret"},
			fixtures: nil,
			want:     true,
		},
		{
			name:     "fixtures only",
			creds:    auth.StaticStore{},
			fixtures: testFixtures(),
			want:     true,
		},
		{
			name:     "neither",
			creds:    auth.StaticStore{},
			fixtures: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewCatalogProvider(testSpec(""), tt.creds, nil, tt.fixtures, time.Second, quietLogger())
			assert.Equal(t, tt.want, p.Available())
		})
	}
}

func TestCatalogProvider_SearchFixtures(t *testing.T) {
	p := NewCatalogProvider(testSpec(""), auth.StaticStore{}, testGeocoder(), testFixtures(), time.Second, quietLogger())

	res, err := p.Search(context.Background(), types.SearchParams{PostalCode: "60601", RadiusMiles: 25})
	require.NoError(t, err)

	require.Len(t, res.Events, 2)
	assert.Equal(t, "TestCatalog", res.Source)
	assert.Equal(t, 2, res.TotalCount)
	assert.False(t, res.HasMore)

	assert.Equal(t, "tc_f1", res.Events[0].ID)
	assert.Greater(t, res.Events[0].DistanceMiles, 0.0, "event with coordinates gets a computed distance")
	assert.Equal(t, 0.0, res.Events[1].DistanceMiles, "event without coordinates keeps the unknown sentinel")
}

func TestCatalogProvider_SearchFixtures_CategoryFilter(t *testing.T) {
	p := NewCatalogProvider(testSpec(""), auth.StaticStore{}, nil, testFixtures(), time.Second, quietLogger())

	res, err := p.Search(context.Background(), types.SearchParams{PostalCode: "60601", RadiusMiles: 25, Category: "workshop"})
	require.NoError(t, err)

	require.Len(t, res.Events, 1)
	assert.Equal(t, "Fixture Workshop", res.Events[0].Title)
}

func TestCatalogProvider_SearchFixtures_DateWindow(t *testing.T) {
	p := NewCatalogProvider(testSpec(""), auth.StaticStore{}, nil, testFixtures(), time.Second, quietLogger())

	res, err := p.Search(context.Background(), types.SearchParams{
		PostalCode:    "60601",
		RadiusMiles:   25,
		StartDateTime: futureDate(4),
		EndDateTime:   futureDate(30),
	})
	require.NoError(t, err)

	require.Len(t, res.Events, 1)
	assert.Equal(t, "Fixture Workshop", res.Events[0].Title)
}

func TestCatalogProvider_SearchLive(t *testing.T) {
	var gotAuth, gotPostal string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPostal = r.URL.Query().Get("postal_code")
		_ = json.NewEncoder(w).Encode(wireResponse{
			Events: []wireEvent{
				{ID: "live-1", Title: "Live Event", Venue: "Live Venue", Date: futureDate(1), Latitude: 41.9, Longitude: -87.65},
				{ID: "live-2", Title: "", Venue: "Dropped", Date: futureDate(1)},            // empty title dropped
				{ID: "live-3", Title: "Bad Date", Venue: "Dropped", Date: "tomorrow-ish"}, // unparseable date dropped
			},
			TotalCount: 3,
			HasMore:    true,
		})
	}))
	defer srv.Close()

	creds := auth.StaticStore{"testcatalog": "secret"}
	p := NewCatalogProvider(testSpec(srv.URL), creds, testGeocoder(), nil, time.Second, quietLogger())

	res, err := p.Search(context.Background(), types.SearchParams{PostalCode: "60601", RadiusMiles: 25, Size: 50})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "60601", gotPostal)

	require.Len(t, res.Events, 1, "invalid entries are dropped during normalization")
	assert.Equal(t, "tc_live-1", res.Events[0].ID)
	assert.True(t, res.HasMore)
	assert.Greater(t, res.Events[0].DistanceMiles, 0.0)
}

func TestCatalogProvider_LiveFailureFallsBackToFixtures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	creds := auth.StaticStore{"testcatalog": "secret"}
	p := NewCatalogProvider(testSpec(srv.URL), creds, nil, testFixtures(), time.Second, quietLogger())

	res, err := p.Search(context.Background(), types.SearchParams{PostalCode: "60601", RadiusMiles: 25})
	require.NoError(t, err, "fixture fallback absorbs the upstream failure")
	assert.Len(t, res.Events, 2)
	assert.Equal(t, "TestCatalog", res.Source)
}

func TestCatalogProvider_LiveFailureNoFixtures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	creds := auth.StaticStore{"testcatalog": "secret"}
	p := NewCatalogProvider(testSpec(srv.URL), creds, nil, nil, time.Second, quietLogger())

	_, err := p.Search(context.Background(), types.SearchParams{PostalCode: "60601", RadiusMiles: 25})
	require.Error(t, err)
}

func TestBuildCatalogs_PriorityOrder(t *testing.T) {
	provs := BuildCatalogs(nil, auth.StaticStore{}, nil, time.Second, quietLogger())

	require.Len(t, provs, 7)
	for i := 1; i < len(provs); i++ {
		assert.Greater(t, provs[i-1].Priority(), provs[i].Priority(),
			"catalogs must come back in descending priority order")
	}
	assert.Equal(t, NameTicketmaster, provs[0].Name())
	assert.Equal(t, NameMeetup, provs[6].Name())
}

func TestFixtureEvents_AllCatalogsCovered(t *testing.T) {
	for _, spec := range CatalogSpecs(nil) {
		events := FixtureEvents(spec.Name)
		assert.NotEmpty(t, events, "catalog %s has no fixtures", spec.Name)
		for _, e := range events {
			_, err := time.Parse(time.RFC3339, e.Date)
			assert.NoError(t, err, "fixture date must parse: %s %s", spec.Name, e.ID)
		}
	}
}
