package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// planTimeout bounds one planning request. Reverse geocoding alone can take
// several seconds on long routes because of the provider's rate limit.
const planTimeout = 45 * time.Second

// RoutePlanner plans a shipment route with weather.
type RoutePlanner interface {
	Plan(ctx context.Context, req pipeline.PlanRequest) (*domain.RouteReport, error)
}

// Server exposes the planning API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	planner    RoutePlanner
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// POST /v1/routes, and POST /v1/advice routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, planner RoutePlanner, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: planTimeout + 15*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		planner: planner,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/routes", s.handlePlanRoute)
	mux.HandleFunc("POST /v1/advice", s.handleAdvice)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	sharedobs.WriteJSON(w, status, v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": message})
}
