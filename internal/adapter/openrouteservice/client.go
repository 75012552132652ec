// Package openrouteservice implements driving directions and forward
// geocoding against the OpenRouteService API.
package openrouteservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/observability"
)

const (
	provider = "openrouteservice"

	// DefaultBaseURL is the public OpenRouteService endpoint.
	DefaultBaseURL = "https://api.openrouteservice.org"

	acceptHeader = "application/json, application/geo+json, application/gpx+xml, img/png; charset=utf-8"
)

// Client implements domain.RouteProvider and domain.Geocoder. The API key is
// supplied per call so one client can serve requests carrying their own keys.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an OpenRouteService client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
		metrics:    metrics,
	}
}

// Directions requests the driving-car route between two coordinates.
func (c *Client) Directions(ctx context.Context, start, end domain.Coordinate, apiKey string) (domain.Directions, error) {
	params := url.Values{
		"start": {lonLat(start)},
		"end":   {lonLat(end)},
	}

	var resp directionsResponse
	if err := c.get(ctx, "directions", "/v2/directions/driving-car", params, apiKey, &resp); err != nil {
		return domain.Directions{}, err
	}

	if len(resp.Features) == 0 || len(resp.Features[0].Geometry.Coordinates) == 0 {
		c.record("directions", "empty")
		return domain.Directions{}, domain.ErrNoRouteFound
	}

	f := resp.Features[0]
	polyline := make([]domain.Coordinate, 0, len(f.Geometry.Coordinates))
	for _, p := range f.Geometry.Coordinates {
		if len(p) < 2 {
			continue
		}
		// Provider order is [lon, lat].
		polyline = append(polyline, domain.Coordinate{Lat: p[1], Lon: p[0]})
	}

	c.record("directions", "success")
	return domain.Directions{
		Polyline:        polyline,
		DistanceMeters:  f.Properties.Summary.Distance,
		DurationSeconds: f.Properties.Summary.Duration,
	}, nil
}

// Geocode returns the best match for a free-text address.
func (c *Client) Geocode(ctx context.Context, address, apiKey string) (domain.Coordinate, error) {
	params := url.Values{
		"text": {address},
		"size": {"1"},
	}

	var resp geocodeResponse
	if err := c.get(ctx, "geocode", "/geocode/search", params, apiKey, &resp); err != nil {
		return domain.Coordinate{}, err
	}

	if len(resp.Features) == 0 || len(resp.Features[0].Geometry.Coordinates) < 2 {
		c.record("geocode", "empty")
		return domain.Coordinate{}, domain.ErrAddressNotFound
	}

	c.record("geocode", "success")
	p := resp.Features[0].Geometry.Coordinates
	return domain.Coordinate{Lat: p[1], Lon: p[0]}, nil
}

func (c *Client) get(ctx context.Context, operation, path string, params url.Values, apiKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", apiKey)
	req.Header.Set("Accept", acceptHeader)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		c.record(operation, "error")
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("openrouteservice request failed", "operation", operation, "error", err)
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.record(operation, "error")
		body, _ := io.ReadAll(resp.Body)
		return &domain.ProviderError{Provider: provider, StatusCode: resp.StatusCode, Message: errorMessage(body)}
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

func lonLat(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// errorMessage extracts the provider's message from an error body, which is
// either {"error": {"message": "..."}} or {"error": "..."}.
func errorMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		return flat.Error
	}

	return strings.TrimSpace(string(body))
}

// OpenRouteService API response types.

type directionsResponse struct {
	Features []directionsFeature `json:"features"`
}

type directionsFeature struct {
	Geometry struct {
		Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
	Properties struct {
		Summary struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"summary"`
	} `json:"properties"`
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}
