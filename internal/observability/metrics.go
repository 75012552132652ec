package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "route_advisor"

// Metrics holds the Prometheus counters, histograms, and gauges for route planning.
type Metrics struct {
	// Upstream provider metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: provider, operation, outcome={success,error,empty}
	UpstreamDuration *prometheus.HistogramVec // labels: provider, operation
	ThrottleWait     *prometheus.HistogramVec // labels: provider

	// Planning metrics.
	PlanRuns          *prometheus.CounterVec // labels: outcome={success,weather_unavailable,error}
	PlanDuration      prometheus.Histogram
	RouteWaypoints    prometheus.Histogram
	Advisories        *prometheus.CounterVec // labels: severity
	GeocoderFallbacks prometheus.Counter
	PublishErrors     prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.ThrottleWait,
		m.PlanRuns,
		m.PlanDuration,
		m.RouteWaypoints,
		m.Advisories,
		m.GeocoderFallbacks,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream provider requests by provider, operation, and outcome.",
		}, []string{"provider", "operation", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "operation"}),
		ThrottleWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "throttle_wait_seconds",
			Help:      "Time spent waiting for a provider rate limit slot.",
			Buckets:   []float64{0, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"provider"}),
		PlanRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_runs_total",
			Help:      "Route planning runs by outcome.",
		}, []string{"outcome"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_duration_seconds",
			Help:      "Duration of a complete route planning run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
		RouteWaypoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_waypoints",
			Help:      "Number of waypoints per planned route, endpoints included.",
			Buckets:   []float64{2, 4, 6, 8, 10, 12},
		}),
		Advisories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisories_total",
			Help:      "Weather advisories generated by severity.",
		}, []string{"severity"}),
		GeocoderFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocoder_fallbacks_total",
			Help:      "Forward geocodes answered by the fallback geocoder.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisory_publish_errors_total",
			Help:      "Failures publishing route reports to the advisory sink.",
		}),
	}
}
