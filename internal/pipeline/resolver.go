package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/observability"
)

// Resolver turns free-text addresses into coordinates. It asks the keyed
// primary geocoder first and falls back to the keyless searcher on any failure.
type Resolver struct {
	primary  domain.Geocoder
	fallback domain.PlaceSearcher
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewResolver creates a Resolver.
func NewResolver(primary domain.Geocoder, fallback domain.PlaceSearcher, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		metrics:  metrics,
	}
}

// Resolve returns the coordinate for an address. Input that already is a
// "lat, lon" pair is returned without any provider call.
func (r *Resolver) Resolve(ctx context.Context, address, apiKey string) (domain.Coordinate, error) {
	if c, ok := domain.ParseCoordinate(address); ok {
		return c, nil
	}

	if apiKey != "" {
		c, err := r.primary.Geocode(ctx, address, apiKey)
		if err == nil {
			return c, nil
		}
		if ctx.Err() != nil {
			return domain.Coordinate{}, ctx.Err()
		}
		r.logger.Warn("primary geocoder failed, trying fallback", "address", address, "error", err)
	}
	r.metrics.GeocoderFallbacks.Inc()

	c, err := r.fallback.Search(ctx, address)
	switch {
	case err == nil:
		return c, nil
	case ctx.Err() != nil:
		return domain.Coordinate{}, ctx.Err()
	case errors.Is(err, domain.ErrAddressNotFound):
		return domain.Coordinate{}, fmt.Errorf("%w: %q, please try a more specific address or city name", domain.ErrAddressNotFound, address)
	case errors.Is(err, domain.ErrNetwork):
		return domain.Coordinate{}, err
	default:
		return domain.Coordinate{}, fmt.Errorf("%w: geocoding failed: %w", domain.ErrRouteProvider, err)
	}
}
