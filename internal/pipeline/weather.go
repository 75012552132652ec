package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/throttle"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// WeatherSchedule bounds concurrent weather lookups to five waypoints at a time.
var WeatherSchedule = throttle.Schedule{
	GroupSize: 5,
	Pause:     200 * time.Millisecond,
}

// WeatherFetcher gathers current conditions and a windowed forecast for each location.
type WeatherFetcher struct {
	provider domain.WeatherProvider
	runner   *throttle.Runner
	logger   *slog.Logger
}

// NewWeatherFetcher creates a WeatherFetcher running on WeatherSchedule. A nil clock uses real time.
func NewWeatherFetcher(provider domain.WeatherProvider, clock clockwork.Clock, logger *slog.Logger) *WeatherFetcher {
	return &WeatherFetcher{
		provider: provider,
		runner:   throttle.NewRunner(WeatherSchedule, clock),
		logger:   logger,
	}
}

// Fetch returns one WaypointWeather per location, in location order. Any
// failed lookup fails the whole fetch with an error wrapping
// domain.ErrWeatherFetchFailed.
func (f *WeatherFetcher) Fetch(ctx context.Context, locations []domain.Location, pickup, delivery time.Time, apiKey string) ([]domain.WaypointWeather, error) {
	return throttle.Map(ctx, f.runner, locations, func(ctx context.Context, loc domain.Location) (domain.WaypointWeather, error) {
		return f.fetchOne(ctx, loc, pickup, delivery, apiKey)
	})
}

func (f *WeatherFetcher) fetchOne(ctx context.Context, loc domain.Location, pickup, delivery time.Time, apiKey string) (domain.WaypointWeather, error) {
	var (
		current  domain.WeatherObservation
		forecast []domain.ForecastEntry
		g        errgroup.Group
	)
	g.Go(func() error {
		var err error
		current, err = f.provider.Current(ctx, loc.Coordinates, apiKey)
		if err != nil {
			return fmt.Errorf("%w: current conditions at %s: %w", domain.ErrWeatherFetchFailed, loc.Name, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		forecast, err = f.provider.Forecast(ctx, loc.Coordinates, apiKey)
		if err != nil {
			return fmt.Errorf("%w: forecast at %s: %w", domain.ErrWeatherFetchFailed, loc.Name, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		f.logger.Warn("weather lookup failed", "location", loc.Name, "error", err)
		return domain.WaypointWeather{}, err
	}

	return domain.WaypointWeather{
		Location: loc,
		Current:  current,
		Forecast: domain.WindowForecast(forecast, pickup, delivery),
	}, nil
}
