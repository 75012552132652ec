package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/contact900/weather-route-visualizer/internal/domain"
)

// Router retrieves a driving route and samples named waypoints along it.
type Router struct {
	provider domain.RouteProvider
	namer    *Namer
	logger   *slog.Logger
}

// NewRouter creates a Router.
func NewRouter(provider domain.RouteProvider, namer *Namer, logger *slog.Logger) *Router {
	return &Router{provider: provider, namer: namer, logger: logger}
}

// Route builds the RouteData between two coordinates: the polyline in
// [lat, lon] order, distance in kilometers, duration in seconds, and the
// Start, named intermediate, and End waypoints in travel order.
func (r *Router) Route(ctx context.Context, start, end domain.Coordinate, apiKey string) (domain.RouteData, error) {
	dir, err := r.provider.Directions(ctx, start, end, apiKey)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return domain.RouteData{}, ctx.Err()
		case errors.Is(err, domain.ErrNoRouteFound), errors.Is(err, domain.ErrNetwork):
			return domain.RouteData{}, err
		default:
			return domain.RouteData{}, fmt.Errorf("%w: route calculation failed: %w", domain.ErrRouteProvider, err)
		}
	}
	if len(dir.Polyline) == 0 {
		return domain.RouteData{}, domain.ErrNoRouteFound
	}

	samples := domain.SampleIntermediate(dir.Polyline)
	named, err := r.namer.Name(ctx, samples)
	if err != nil {
		return domain.RouteData{}, err
	}
	r.logger.Debug("route sampled", "vertices", len(dir.Polyline), "samples", len(samples), "named", len(named))

	route := domain.RouteData{
		Waypoints: domain.AssembleWaypoints(dir.Polyline, named),
		Polyline:  domain.PolylinePairs(dir.Polyline),
		Distance:  dir.DistanceMeters / 1000,
		Duration:  dir.DurationSeconds,
	}
	route.Summary = domain.Summarize(route)
	return route, nil
}
