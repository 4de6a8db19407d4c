package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alex-user-go/events/internal/search/types"
)

// wireEvent is the normalized JSON shape catalog backends serve. Vendor-native
// payloads are adapted to it upstream of this client.
type wireEvent struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Venue       string  `json:"venue"`
	Address     string  `json:"address"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type wireResponse struct {
	Events     []wireEvent `json:"events"`
	TotalCount int         `json:"total_count"`
	HasMore    bool        `json:"has_more"`
}

// restClient queries a catalog backend over HTTP.
type restClient struct {
	baseURL    string
	httpClient *http.Client
}

func newRESTClient(baseURL string, timeout time.Duration) *restClient {
	return &restClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// searchEvents performs a GET against the backend's /events endpoint.
func (c *restClient) searchEvents(ctx context.Context, params types.SearchParams, token string) (*wireResponse, error) {
	u, err := url.Parse(c.baseURL + "/events")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	if params.PostalCode != "" {
		q.Set("postal_code", params.PostalCode)
	} else {
		q.Set("lat", strconv.FormatFloat(params.Latitude, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(params.Longitude, 'f', -1, 64))
	}
	q.Set("radius", strconv.FormatFloat(params.RadiusMiles, 'f', -1, 64))
	if params.StartDateTime != "" {
		q.Set("start", params.StartDateTime)
	}
	if params.EndDateTime != "" {
		q.Set("end", params.EndDateTime)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Size > 0 {
		q.Set("size", strconv.Itoa(params.Size))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Explicitly ignore close error
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, string(body))
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &wire, nil
}
