package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/contact900/weather-route-visualizer/internal/domain"
	"github.com/contact900/weather-route-visualizer/internal/pipeline"
)

const maxBodyBytes = 1 << 20

type planRouteRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	PickupDate    string `json:"pickupDate"`
	DeliveryDate  string `json:"deliveryDate"`
	RouteAPIKey   string `json:"routeApiKey,omitempty"`
	WeatherAPIKey string `json:"weatherApiKey,omitempty"`
}

type planRouteResponse struct {
	ID            string                   `json:"id,omitempty"`
	Route         domain.RouteData         `json:"route"`
	Weather       []domain.WaypointWeather `json:"weather"`
	Advice        *domain.WeatherAdvice    `json:"advice,omitempty"`
	RouteSeverity domain.Severity          `json:"routeSeverity,omitempty"`
	WeatherError  string                   `json:"weatherError,omitempty"`
}

type adviceRequest struct {
	Weather      []domain.WaypointWeather `json:"weather"`
	PickupDate   string                   `json:"pickupDate,omitempty"`
	DeliveryDate string                   `json:"deliveryDate,omitempty"`
}

func (s *Server) handlePlanRoute(w http.ResponseWriter, r *http.Request) {
	var body planRouteRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := body.toPlanRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), planTimeout)
	defer cancel()

	report, err := s.planner.Plan(ctx, req)
	if err != nil {
		var wue *domain.WeatherUnavailableError
		if errors.As(err, &wue) {
			s.logger.Warn("weather unavailable for planned route", "origin", req.Origin, "destination", req.Destination, "error", wue.Err)
			writeJSON(w, http.StatusOK, planRouteResponse{
				Route:        wue.Route,
				Weather:      []domain.WaypointWeather{},
				WeatherError: wue.Error(),
			})
			return
		}

		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("route planning failed", "origin", req.Origin, "destination", req.Destination, "error", err)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, planRouteResponse{
		ID:            report.ID,
		Route:         report.Route,
		Weather:       report.Weather,
		Advice:        &report.Advice,
		RouteSeverity: domain.RouteSeverity(report.Weather),
	})
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var body adviceRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pickup, err := parseOptionalDate("pickupDate", body.PickupDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	delivery, err := parseOptionalDate("deliveryDate", body.DeliveryDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, domain.GenerateAdvice(body.Weather, pickup, delivery))
}

func (b planRouteRequest) toPlanRequest() (pipeline.PlanRequest, error) {
	origin := strings.TrimSpace(b.Origin)
	destination := strings.TrimSpace(b.Destination)
	if origin == "" || destination == "" {
		return pipeline.PlanRequest{}, errors.New("origin and destination are required")
	}

	pickup, err := time.Parse(time.DateOnly, b.PickupDate)
	if err != nil {
		return pipeline.PlanRequest{}, fmt.Errorf("invalid pickupDate %q: want YYYY-MM-DD", b.PickupDate)
	}
	delivery, err := time.Parse(time.DateOnly, b.DeliveryDate)
	if err != nil {
		return pipeline.PlanRequest{}, fmt.Errorf("invalid deliveryDate %q: want YYYY-MM-DD", b.DeliveryDate)
	}
	if delivery.Before(pickup) {
		return pipeline.PlanRequest{}, errors.New("delivery date must be after pickup date")
	}

	return pipeline.PlanRequest{
		Origin:       origin,
		Destination:  destination,
		PickupDate:   pickup,
		DeliveryDate: delivery,
		Keys: pipeline.Keys{
			Route:   strings.TrimSpace(b.RouteAPIKey),
			Weather: strings.TrimSpace(b.WeatherAPIKey),
		},
	}, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", field, value)
	}
	return &t, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// statusFor maps planning failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAddressNotFound), errors.Is(err, domain.ErrNoRouteFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrRouteProvider):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
