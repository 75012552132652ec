package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/observability"
	"golang.org/x/sync/errgroup"
)

// Publisher delivers completed route reports to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, report domain.RouteReport) error
}

// Keys are provider API keys.
type Keys struct {
	Route   string
	Weather string
}

// PlanRequest is one shipment to plan.
type PlanRequest struct {
	Origin       string
	Destination  string
	PickupDate   time.Time
	DeliveryDate time.Time
	// Keys override the planner's configured keys when set.
	Keys Keys
}

// Planner runs geocoding, routing, and weather lookups for a shipment and
// derives its advisory.
type Planner struct {
	resolver  *Resolver
	router    *Router
	weather   *WeatherFetcher
	publisher Publisher
	keys      Keys
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewPlanner creates a Planner. publisher may be nil.
func NewPlanner(resolver *Resolver, router *Router, weather *WeatherFetcher, publisher Publisher, keys Keys, logger *slog.Logger, metrics *observability.Metrics) *Planner {
	return &Planner{
		resolver:  resolver,
		router:    router,
		weather:   weather,
		publisher: publisher,
		keys:      keys,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness reports an error when the planner has no configured
// provider keys and can only serve requests that bring their own.
func (p *Planner) CheckReadiness(_ context.Context) error {
	var missing []string
	if p.keys.Route == "" {
		missing = append(missing, "ORS_API_KEY")
	}
	if p.keys.Weather == "" {
		missing = append(missing, "OPENWEATHER_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("provider keys not configured: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Plan resolves both addresses, retrieves the route, and fetches weather for
// every waypoint. When the weather stage fails after the route was built,
// including by running out of time, the error is a
// *domain.WeatherUnavailableError carrying the route. Cancellation aborts
// with ctx.Err().
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*domain.RouteReport, error) {
	start := time.Now()
	defer func() { p.metrics.PlanDuration.Observe(time.Since(start).Seconds()) }()

	keys := Keys{
		Route:   firstNonEmpty(req.Keys.Route, p.keys.Route),
		Weather: firstNonEmpty(req.Keys.Weather, p.keys.Weather),
	}
	if keys.Route == "" {
		return nil, fmt.Errorf("%w: routing provider", domain.ErrMissingAPIKey)
	}
	if keys.Weather == "" {
		return nil, fmt.Errorf("%w: weather provider", domain.ErrMissingAPIKey)
	}

	origin, destination, err := p.resolveEndpoints(ctx, req.Origin, req.Destination, keys.Route)
	if err != nil {
		p.metrics.PlanRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	route, err := p.router.Route(ctx, origin, destination, keys.Route)
	if err != nil {
		p.metrics.PlanRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	p.metrics.RouteWaypoints.Observe(float64(len(route.Waypoints)))

	weathers, err := p.weather.Fetch(ctx, route.Locations(), req.PickupDate, req.DeliveryDate, keys.Weather)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			p.metrics.PlanRuns.WithLabelValues("error").Inc()
			return nil, ctx.Err()
		}
		p.metrics.PlanRuns.WithLabelValues("weather_unavailable").Inc()
		return nil, &domain.WeatherUnavailableError{Route: route, Err: err}
	}

	report := domain.NewRouteReport(req.Origin, req.Destination, req.PickupDate, req.DeliveryDate, route, weathers)
	p.metrics.PlanRuns.WithLabelValues("success").Inc()
	p.metrics.Advisories.WithLabelValues(string(report.Advice.Severity)).Inc()
	p.logger.Info("route planned",
		"id", report.ID,
		"waypoints", len(route.Waypoints),
		"distance_km", route.Distance,
		"severity", report.Advice.Severity,
		"duration", time.Since(start),
	)

	p.publish(ctx, report)
	return &report, nil
}

// resolveEndpoints geocodes origin and destination concurrently. The first
// failure cancels the other lookup.
func (p *Planner) resolveEndpoints(ctx context.Context, originAddr, destinationAddr, apiKey string) (domain.Coordinate, domain.Coordinate, error) {
	var origin, destination domain.Coordinate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := p.resolver.Resolve(gctx, originAddr, apiKey)
		if err != nil {
			return fmt.Errorf("origin: %w", err)
		}
		origin = c
		return nil
	})
	g.Go(func() error {
		c, err := p.resolver.Resolve(gctx, destinationAddr, apiKey)
		if err != nil {
			return fmt.Errorf("destination: %w", err)
		}
		destination = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Coordinate{}, domain.Coordinate{}, err
	}
	return origin, destination, nil
}

func (p *Planner) publish(ctx context.Context, report domain.RouteReport) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, report); err != nil && !errors.Is(err, context.Canceled) {
		p.metrics.PublishErrors.Inc()
		p.logger.Error("publish route report failed", "id", report.ID, "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
