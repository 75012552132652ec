// Package nominatim implements keyless forward and reverse geocoding against
// the OpenStreetMap Nominatim API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/observability"
	"github.com/contact900/weather-route-visualizer/internal/throttle"
)

const (
	provider = "nominatim"

	// DefaultBaseURL is the public Nominatim endpoint.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultUserAgent identifies this application; Nominatim rejects
	// requests without one.
	DefaultUserAgent = "WeatherRouteVisualizer/1.0"
)

// Client implements domain.PlaceSearcher and domain.ReverseGeocoder. Every
// request passes through the gate, which enforces the provider's
// one-request-per-second usage policy across the whole process.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	gate       *throttle.Gate
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Nominatim client. A nil gate disables client-side limiting.
func NewClient(baseURL, userAgent string, timeout time.Duration, gate *throttle.Gate, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		gate:       gate,
		logger:     logger,
		metrics:    metrics,
	}
}

// Search returns the first match for a free-text query.
func (c *Client) Search(ctx context.Context, query string) (domain.Coordinate, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}

	var results []searchResult
	if err := c.get(ctx, "search", "/search", params, &results); err != nil {
		return domain.Coordinate{}, err
	}
	if len(results) == 0 {
		c.record("search", "empty")
		return domain.Coordinate{}, domain.ErrAddressNotFound
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		c.record("search", "error")
		return domain.Coordinate{}, fmt.Errorf("parse search result %q,%q: invalid coordinate", results[0].Lat, results[0].Lon)
	}

	c.record("search", "success")
	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}

// ReverseGeocode returns the address components at a coordinate. A location
// without an address yields zero components and no error.
func (c *Client) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (domain.AddressComponents, error) {
	params := url.Values{
		"lat":            {strconv.FormatFloat(coord.Lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(coord.Lon, 'f', -1, 64)},
		"format":         {"json"},
		"addressdetails": {"1"},
	}

	var resp reverseResponse
	if err := c.get(ctx, "reverse", "/reverse", params, &resp); err != nil {
		return domain.AddressComponents{}, err
	}
	if resp.Address == nil {
		c.record("reverse", "empty")
		return domain.AddressComponents{}, nil
	}

	c.record("reverse", "success")
	a := resp.Address
	return domain.AddressComponents{
		City:         a.City,
		Town:         a.Town,
		Municipality: a.Municipality,
		County:       a.County,
		State:        a.State,
	}, nil
}

func (c *Client) get(ctx context.Context, operation, path string, params url.Values, out any) error {
	waited, err := c.gate.Wait(ctx)
	if err != nil {
		return err
	}
	c.metrics.ThrottleWait.WithLabelValues(provider).Observe(waited.Seconds())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		c.record(operation, "error")
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("nominatim request failed", "operation", operation, "error", err)
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.record(operation, "error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &domain.ProviderError{Provider: provider, StatusCode: resp.StatusCode, Message: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.record(operation, "error")
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) record(operation, outcome string) {
	c.metrics.UpstreamRequests.WithLabelValues(provider, operation, outcome).Inc()
}

// Nominatim API response types.

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResponse struct {
	Address *address `json:"address"`
}

type address struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Municipality string `json:"municipality"`
	County       string `json:"county"`
	State        string `json:"state"`
}
