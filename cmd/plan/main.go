// Command plan runs a single route plan from the command line and prints the
// route summary, the per-waypoint weather, and the advisory as JSON. Provider
// keys are read from ORS_API_KEY and OPENWEATHER_API_KEY.
//
// Usage:
//
//	go run ./cmd/plan \
//	  -origin "Chicago, IL" \
//	  -destination "Denver, CO" \
//	  -pickup 2024-06-01 \
//	  -delivery 2024-06-03
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contact900/weather-route-visualizer/internal/adapter/nominatim"
	"github.com/contact900/weather-route-visualizer/internal/adapter/openrouteservice"
	"github.com/contact900/weather-route-visualizer/internal/adapter/openweather"
	"github.com/contact900/weather-route-visualizer/internal/config"
	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/observability"
	"github.com/contact900/weather-route-visualizer/internal/pipeline"
	"github.com/contact900/weather-route-visualizer/internal/throttle"
	"github.com/jonboulle/clockwork"
)

// output is the JSON document written to stdout.
type output struct {
	Origin        string                   `json:"origin"`
	Destination   string                   `json:"destination"`
	Summary       *domain.RouteSummary     `json:"summary,omitempty"`
	Waypoints     []domain.RoutePoint      `json:"waypoints"`
	Weather       []domain.WaypointWeather `json:"weather"`
	Advice        *domain.WeatherAdvice    `json:"advice,omitempty"`
	RouteSeverity domain.Severity          `json:"routeSeverity,omitempty"`
	WeatherError  string                   `json:"weatherError,omitempty"`
}

func main() {
	origin := flag.String("origin", "", "pickup address or \"lat, lon\"")
	destination := flag.String("destination", "", "delivery address or \"lat, lon\"")
	pickup := flag.String("pickup", "", "pickup date (YYYY-MM-DD)")
	delivery := flag.String("delivery", "", "delivery date (YYYY-MM-DD)")
	timeout := flag.Duration("timeout", 45*time.Second, "overall planning timeout")
	flag.Parse()

	if *origin == "" || *destination == "" || *pickup == "" || *delivery == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*origin, *destination, *pickup, *delivery, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "plan: %v\n", err)
		os.Exit(1)
	}
}

func run(origin, destination, pickupStr, deliveryStr string, timeout time.Duration) error {
	pickup, err := time.Parse(time.DateOnly, pickupStr)
	if err != nil {
		return fmt.Errorf("invalid pickup date %q: %w", pickupStr, err)
	}
	delivery, err := time.Parse(time.DateOnly, deliveryStr)
	if err != nil {
		return fmt.Errorf("invalid delivery date %q: %w", deliveryStr, err)
	}
	if delivery.Before(pickup) {
		return errors.New("delivery date must be after pickup date")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewStderrLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ors := openrouteservice.NewClient(cfg.ORSBaseURL, cfg.UpstreamTimeout, logger, metrics)
	osm := nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.UpstreamTimeout,
		throttle.NewGate(cfg.NominatimInterval, 1, clock), logger, metrics)
	owm := openweather.NewClient(cfg.OpenWeatherBaseURL, cfg.UpstreamTimeout,
		throttle.NewGate(cfg.OpenWeatherInterval, cfg.OpenWeatherBurst, clock), logger, metrics)

	planner := pipeline.NewPlanner(
		pipeline.NewResolver(ors, osm, logger, metrics),
		pipeline.NewRouter(ors, pipeline.NewNamer(osm, clock, logger), logger),
		pipeline.NewWeatherFetcher(owm, clock, logger),
		nil,
		pipeline.Keys{Route: cfg.ORSAPIKey, Weather: cfg.OpenWeatherAPIKey},
		logger, metrics,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out := output{Origin: origin, Destination: destination}
	report, err := planner.Plan(ctx, pipeline.PlanRequest{
		Origin:       origin,
		Destination:  destination,
		PickupDate:   pickup,
		DeliveryDate: delivery,
	})
	var wue *domain.WeatherUnavailableError
	switch {
	case errors.As(err, &wue):
		out.Summary = wue.Route.Summary
		out.Waypoints = wue.Route.Waypoints
		out.Weather = []domain.WaypointWeather{}
		out.WeatherError = wue.Error()
	case err != nil:
		return err
	default:
		out.Summary = report.Route.Summary
		out.Waypoints = report.Route.Waypoints
		out.Weather = report.Weather
		out.Advice = &report.Advice
		out.RouteSeverity = domain.RouteSeverity(report.Weather)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
