package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alex-user-go/events/internal/middleware"
	"github.com/alex-user-go/events/internal/obs"
	"github.com/alex-user-go/events/internal/search"
	"github.com/alex-user-go/events/internal/search/cache"
	"github.com/alex-user-go/events/internal/search/ratelimit"
	"github.com/alex-user-go/events/internal/search/types"
)

// Handler handles HTTP requests.
type Handler struct {
	service     *search.Service
	cache       *cache.Cache
	rateLimiter *ratelimit.Limiter
	metrics     *obs.Metrics
	logger      *slog.Logger
}

// New creates a new Handler.
func New(
	service *search.Service,
	searchCache *cache.Cache,
	rateLimiter *ratelimit.Limiter,
	metrics *obs.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		service:     service,
		cache:       searchCache,
		rateLimiter: rateLimiter,
		metrics:     metrics,
		logger:      logger,
	}
}

// SearchResponse represents the complete API response.
type SearchResponse struct {
	Search SearchInfo    `json:"search"`
	Stats  SearchStats   `json:"stats"`
	Events []types.Event `json:"events"`
}

// SearchInfo echoes the search parameters.
type SearchInfo struct {
	PostalCode  string  `json:"postal_code,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	RadiusMiles float64 `json:"radius_miles"`
	Timeframe   string  `json:"timeframe,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// SearchStats contains search statistics.
type SearchStats struct {
	Source             string `json:"source"`
	TotalCount         int    `json:"total_count"`
	HasMore            bool   `json:"has_more"`
	ProvidersTotal     int    `json:"providers_total"`
	ProvidersSucceeded int    `json:"providers_succeeded"`
	ProvidersFailed    int    `json:"providers_failed"`
	Cache              string `json:"cache"`
	DurationMs         int64  `json:"duration_ms"`
}

// SearchHandler handles /search requests.
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	h.metrics.IncRequests()
	defer func() {
		h.metrics.ObserveRequest(time.Since(startTime))
	}()
	requestID := middleware.RequestID(r.Context())

	// Check rate limit
	ip := ExtractIP(r)
	if !h.rateLimiter.Allow(ip) {
		retry := h.rateLimiter.RetryAfter(ip)
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
		h.logger.Warn("rate limit exceeded", "request_id", requestID, "ip", ip)
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	// Parse and validate query parameters
	params, timeframe, err := ParseSearchParams(r)
	if err != nil {
		h.logger.Debug("invalid request parameters", "request_id", requestID, "error", err, "ip", ip)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := h.cache.Key(params, timeframe)
	result, cacheHit, err := h.cache.GetOrFetch(r.Context(), key, func() (*types.SearchResult, error) {
		res, err := h.service.Search(r.Context(), params)
		if err != nil {
			return nil, err
		}
		res.Events = h.service.FilterByTimeframe(res.Events, timeframe)
		res.TotalCount = len(res.Events)
		return res, nil
	})

	if err != nil {
		if errors.Is(err, search.ErrNoProvidersAvailable) {
			h.logger.Error("no providers available", "request_id", requestID, "ip", ip)
			writeError(w, http.StatusServiceUnavailable, "can't fetch events right now")
			return
		}
		h.logger.Error("search failed",
			"request_id", requestID,
			"error", err,
			"postal_code", params.PostalCode,
			"ip", ip,
		)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	duration := time.Since(startTime).Milliseconds()

	cacheStatus := "miss"
	if cacheHit {
		cacheStatus = "hit"
		h.metrics.IncCacheHits()
	}

	response := SearchResponse{
		Search: SearchInfo{
			PostalCode:  params.PostalCode,
			Latitude:    params.Latitude,
			Longitude:   params.Longitude,
			RadiusMiles: params.RadiusMiles,
			Timeframe:   timeframe,
			Category:    params.Category,
		},
		Stats: SearchStats{
			Source:             result.Source,
			TotalCount:         result.TotalCount,
			HasMore:            result.HasMore,
			ProvidersTotal:     result.ProvidersTotal,
			ProvidersSucceeded: result.ProvidersSucceeded,
			ProvidersFailed:    result.ProvidersFailed,
			Cache:              cacheStatus,
			DurationMs:         duration,
		},
		Events: result.Events,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Can't change status after WriteHeader, just log
		h.logger.Error("failed to encode response", "error", err)
	}
}

// ProvidersHandler handles /providers requests: available provider names in
// priority order.
func (h *Handler) ProvidersHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRequests()
	writeJSON(w, h.logger, map[string][]string{
		"providers": h.service.AvailableProviders(),
	})
}

// CapabilitiesHandler handles /capabilities requests: capability metadata for
// every registered provider.
func (h *Handler) CapabilitiesHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRequests()
	writeJSON(w, h.logger, map[string]map[string]types.Capabilities{
		"capabilities": h.service.ProviderCapabilities(),
	})
}

// ParseSearchParams parses and validates search parameters from the request.
// Returns the params plus the optional timeframe value.
func ParseSearchParams(r *http.Request) (types.SearchParams, string, error) {
	query := r.URL.Query()
	var params types.SearchParams

	params.PostalCode = strings.TrimSpace(query.Get("postal_code"))

	latStr := strings.TrimSpace(query.Get("lat"))
	lngStr := strings.TrimSpace(query.Get("lng"))
	if latStr != "" || lngStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return params, "", fmt.Errorf("lat must be a number")
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return params, "", fmt.Errorf("lng must be a number")
		}
		params.Latitude = lat
		params.Longitude = lng
	}

	radiusStr := strings.TrimSpace(query.Get("radius"))
	if radiusStr == "" {
		return params, "", fmt.Errorf("radius is required")
	}
	radius, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil {
		return params, "", fmt.Errorf("radius must be a number")
	}
	params.RadiusMiles = radius

	if start := strings.TrimSpace(query.Get("start")); start != "" {
		if _, err := time.Parse(time.RFC3339, start); err != nil {
			return params, "", fmt.Errorf("start must be an RFC 3339 timestamp")
		}
		params.StartDateTime = start
	}
	if end := strings.TrimSpace(query.Get("end")); end != "" {
		if _, err := time.Parse(time.RFC3339, end); err != nil {
			return params, "", fmt.Errorf("end must be an RFC 3339 timestamp")
		}
		params.EndDateTime = end
	}

	params.Category = strings.TrimSpace(query.Get("category"))

	if sizeStr := query.Get("size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size <= 0 {
			return params, "", fmt.Errorf("size must be a positive integer")
		}
		params.Size = size
	}
	if pageStr := query.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			return params, "", fmt.Errorf("page must be a positive integer")
		}
		params.Page = page
	}

	if err := params.Validate(); err != nil {
		return params, "", err
	}

	// Unknown timeframes deliberately pass through unfiltered downstream.
	timeframe := strings.TrimSpace(query.Get("timeframe"))

	return params, timeframe, nil
}

// ExtractIP extracts the client IP from the request.
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
func ExtractIP(r *http.Request) string {
	// Check X-Forwarded-For (first IP in the list)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr (strip port)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
