package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAddressNotFound means no geocoding provider matched the address.
	ErrAddressNotFound = errors.New("address not found")
	// ErrNoRouteFound means the routing provider returned no route features.
	ErrNoRouteFound = errors.New("no route found")
	// ErrNetwork marks connectivity failures reaching an upstream provider.
	ErrNetwork = errors.New("network error")
	// ErrRouteProvider marks non-network routing or geocoding provider failures.
	ErrRouteProvider = errors.New("route provider error")
	// ErrWeatherFetchFailed marks a failed current or forecast weather request.
	ErrWeatherFetchFailed = errors.New("weather fetch failed")
	// ErrMissingAPIKey means neither the request nor the configuration supplied a provider key.
	ErrMissingAPIKey = errors.New("missing API key")
)

// ProviderError is a non-2xx response from an upstream provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// NetworkError wraps a connectivity failure. Its message points the user at
// coordinate input, which skips geocoding entirely.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: please check your internet connection. If the problem persists, try using coordinates (latitude, longitude) instead of addresses"
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNetwork) match any NetworkError.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// WeatherUnavailableError reports a weather stage failure after the route was
// built, so callers can still present the route.
type WeatherUnavailableError struct {
	Route RouteData
	Err   error
}

func (e *WeatherUnavailableError) Error() string {
	return fmt.Sprintf("route calculated successfully, but weather data could not be loaded: %v", e.Err)
}

func (e *WeatherUnavailableError) Unwrap() error { return e.Err }
