package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/throttle"
	"github.com/jonboulle/clockwork"
)

// NamerSchedule keeps reverse geocoding within the keyless provider's
// one-request-per-second policy.
var NamerSchedule = throttle.Schedule{
	GroupSize: 3,
	Stagger:   200 * time.Millisecond,
	Pause:     1200 * time.Millisecond,
}

// Namer labels sampled route points with nearby place names.
type Namer struct {
	geocoder domain.ReverseGeocoder
	runner   *throttle.Runner
	logger   *slog.Logger
}

// NewNamer creates a Namer running on NamerSchedule. A nil clock uses real time.
func NewNamer(geocoder domain.ReverseGeocoder, clock clockwork.Clock, logger *slog.Logger) *Namer {
	return &Namer{
		geocoder: geocoder,
		runner:   throttle.NewRunner(NamerSchedule, clock),
		logger:   logger,
	}
}

// Name reverse geocodes each point and returns the named points in input
// order with duplicate names removed. Lookup failures only drop the point;
// the returned error is non-nil only when ctx ends.
func (n *Namer) Name(ctx context.Context, points []domain.RoutePoint) ([]domain.RoutePoint, error) {
	labelled, err := throttle.Map(ctx, n.runner, points, func(ctx context.Context, p domain.RoutePoint) (domain.RoutePoint, error) {
		addr, err := n.geocoder.ReverseGeocode(ctx, p.Coordinates)
		if err != nil {
			if ctx.Err() != nil {
				return p, ctx.Err()
			}
			n.logger.Warn("reverse geocode failed, dropping waypoint",
				"lat", p.Coordinates.Lat, "lon", p.Coordinates.Lon, "error", err)
			p.Name = ""
			return p, nil
		}
		p.Name = domain.PlaceName(addr)
		if p.Name == "" {
			n.logger.Debug("no place name for waypoint", "lat", p.Coordinates.Lat, "lon", p.Coordinates.Lon)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return domain.DedupeByName(labelled), nil
}
