package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/observability"
	"github.com/contact900/weather-route-visualizer/internal/throttle"
)

// --- fakes ---

type fakeGeocoder struct {
	results map[string]domain.Coordinate
	err     error
	calls   atomic.Int32
}

func (f *fakeGeocoder) Geocode(_ context.Context, address, _ string) (domain.Coordinate, error) {
	f.calls.Add(1)
	if f.err != nil {
		return domain.Coordinate{}, f.err
	}
	c, ok := f.results[address]
	if !ok {
		return domain.Coordinate{}, domain.ErrAddressNotFound
	}
	return c, nil
}

type fakeSearcher struct {
	results map[string]domain.Coordinate
	err     error
	calls   atomic.Int32
}

func (f *fakeSearcher) Search(_ context.Context, query string) (domain.Coordinate, error) {
	f.calls.Add(1)
	if f.err != nil {
		return domain.Coordinate{}, f.err
	}
	c, ok := f.results[query]
	if !ok {
		return domain.Coordinate{}, domain.ErrAddressNotFound
	}
	return c, nil
}

type fakeReverseGeocoder struct {
	addresses map[domain.Coordinate]domain.AddressComponents
	failing   map[domain.Coordinate]bool
	calls     atomic.Int32
}

func (f *fakeReverseGeocoder) ReverseGeocode(_ context.Context, c domain.Coordinate) (domain.AddressComponents, error) {
	f.calls.Add(1)
	if f.failing[c] {
		return domain.AddressComponents{}, errors.New("reverse geocoding service unavailable")
	}
	return f.addresses[c], nil
}

type fakeRouteProvider struct {
	directions domain.Directions
	err        error
	calls      atomic.Int32
}

func (f *fakeRouteProvider) Directions(_ context.Context, _, _ domain.Coordinate, _ string) (domain.Directions, error) {
	f.calls.Add(1)
	if f.err != nil {
		return domain.Directions{}, f.err
	}
	return f.directions, nil
}

type fakeWeatherProvider struct {
	current  map[domain.Coordinate]domain.WeatherObservation
	forecast []domain.ForecastEntry
	failing  map[domain.Coordinate]bool
	// block makes Current wait for ctx to end.
	block bool

	mu   sync.Mutex
	keys []string
}

func (f *fakeWeatherProvider) Current(ctx context.Context, c domain.Coordinate, apiKey string) (domain.WeatherObservation, error) {
	f.mu.Lock()
	f.keys = append(f.keys, apiKey)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return domain.WeatherObservation{}, ctx.Err()
	}
	if f.failing[c] {
		return domain.WeatherObservation{}, &domain.ProviderError{Provider: "openweather", StatusCode: 429, Message: "rate limited"}
	}
	if obs, ok := f.current[c]; ok {
		return obs, nil
	}
	return clearSky(), nil
}

func (f *fakeWeatherProvider) Forecast(_ context.Context, _ domain.Coordinate, _ string) ([]domain.ForecastEntry, error) {
	return f.forecast, nil
}

func (f *fakeWeatherProvider) usedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}

type fakePublisher struct {
	mu      sync.Mutex
	reports []domain.RouteReport
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, r domain.RouteReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, r)
	return f.err
}

// --- helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func immediate() *throttle.Runner {
	return throttle.NewRunner(throttle.Schedule{GroupSize: 3}, nil)
}

func newTestNamer(g domain.ReverseGeocoder) *Namer {
	return &Namer{geocoder: g, runner: immediate(), logger: discardLogger()}
}

func newTestWeatherFetcher(p domain.WeatherProvider) *WeatherFetcher {
	return &WeatherFetcher{provider: p, runner: immediate(), logger: discardLogger()}
}

func newTestMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

// equatorLine returns vertices every 0.1 degrees of longitude along the
// equator, about 11.12 km apart.
func equatorLine(n int) []domain.Coordinate {
	line := make([]domain.Coordinate, n)
	for i := range line {
		line[i] = domain.Coordinate{Lat: 0, Lon: float64(i) * 0.1}
	}
	return line
}

func clearSky() domain.WeatherObservation {
	return domain.WeatherObservation{
		Conditions: []domain.Condition{{Main: "Clear", Description: "clear sky"}},
		WindSpeed:  3,
		Visibility: 10000,
	}
}

func threeHourly(start time.Time, n int) []domain.ForecastEntry {
	entries := make([]domain.ForecastEntry, n)
	for i := range entries {
		entries[i] = domain.ForecastEntry{WeatherObservation: clearSky()}
		entries[i].Time = start.Add(time.Duration(i) * 3 * time.Hour)
	}
	return entries
}
