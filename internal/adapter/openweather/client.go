// Package openweather fetches current conditions and the 5-day/3-hour
// forecast from the OpenWeatherMap API.
package openweather

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
	"github.com/contact900/weather-route-visualizer/internal/throttle"
)

const (
	provider = "openweather"

	// DefaultBaseURL is the public OpenWeatherMap data endpoint.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
)

// Client implements domain.WeatherProvider. Responses keep the provider's
// standard units (Kelvin, m/s, meters).
type Client struct {
	httpClient *http.Client
	baseURL    string
	gate       *throttle.Gate
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an OpenWeatherMap client. A nil gate disables client-side limiting.
func NewClient(baseURL string, timeout time.Duration, gate *throttle.Gate, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		gate:       gate,
		logger:     logger,
		metrics:    metrics,
	}
}

// Current returns the current conditions at a coordinate.
func (c *Client) Current(ctx context.Context, coord domain.Coordinate, apiKey string) (domain.WeatherObservation, error) {
	var resp observation
	if err := c.get(ctx, "current", "/weather", coord, apiKey, &resp); err != nil {
		return domain.WeatherObservation{}, err
	}
	c.record("current", "success")
	return resp.toDomain(), nil
}

// Forecast returns the 3-hourly forecast series at a coordinate in provider order.
func (c *Client) Forecast(ctx context.Context, coord domain.Coordinate, apiKey string) ([]domain.ForecastEntry, error) {
	var resp forecastResponse
	if err := c.get(ctx, "forecast", "/forecast", coord, apiKey, &resp); err != nil {
		return nil, err
	}

	entries := make([]domain.ForecastEntry, 0, len(resp.List))
	for _, step := range resp.List {
		entries = append(entries, domain.ForecastEntry{
			WeatherObservation:       step.toDomain(),
			PrecipitationProbability: step.Pop,
		})
	}

	outcome := "success"
	if len(entries) == 0 {
		outcome = "empty"
	}
	c.record("forecast", outcome)
	return entries, nil
}

func (c *Client) get(ctx context.Context, operation, path string, coord domain.Coordinate, apiKey string, out any) error {
	waited, err := c.gate.Wait(ctx)
	if err != nil {
		return err
	}
	c.metrics.ThrottleWait.WithLabelValues(provider).Observe(waited.Seconds())

	params := url.Values{
		"lat":   {strconv.FormatFloat(coord.Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(coord.Lon, 'f', -1, 64)},
		"appid": {apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		c.record(operation, "error")
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("openweather request failed", "operation", operation, "error", err)
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.record(operation, "error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
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

func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

// OpenWeatherMap API response types.

type observation struct {
	Weather []domain.Condition `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility float64 `json:"visibility"`
	Dt         int64   `json:"dt"`
}

func (o observation) toDomain() domain.WeatherObservation {
	return domain.WeatherObservation{
		Conditions:  o.Weather,
		Temperature: o.Main.Temp,
		FeelsLike:   o.Main.FeelsLike,
		TempMin:     o.Main.TempMin,
		TempMax:     o.Main.TempMax,
		Pressure:    o.Main.Pressure,
		Humidity:    o.Main.Humidity,
		WindSpeed:   o.Wind.Speed,
		WindDeg:     o.Wind.Deg,
		Visibility:  o.Visibility,
		Time:        time.Unix(o.Dt, 0).UTC(),
	}
}

type forecastStep struct {
	observation
	Pop float64 `json:"pop"`
}

type forecastResponse struct {
	List []forecastStep `json:"list"`
}
