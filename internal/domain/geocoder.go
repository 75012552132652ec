package domain

import "context"

// Geocoder resolves free-text addresses using a keyed provider.
type Geocoder interface {
	// Geocode returns the best match for the address. It returns
	// ErrAddressNotFound when the provider has no match.
	Geocode(ctx context.Context, address, apiKey string) (Coordinate, error)
}

// PlaceSearcher resolves free-text queries using a keyless provider.
type PlaceSearcher interface {
	// Search returns the first match for the query, or ErrAddressNotFound.
	Search(ctx context.Context, query string) (Coordinate, error)
}

// ReverseGeocoder converts coordinates to address components.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, c Coordinate) (AddressComponents, error)
}

// RouteProvider computes driving routes.
type RouteProvider interface {
	// Directions returns the driving route between two coordinates. It returns
	// ErrNoRouteFound when the provider returns no route.
	Directions(ctx context.Context, start, end Coordinate, apiKey string) (Directions, error)
}

// WeatherProvider fetches current conditions and multi-day forecasts.
type WeatherProvider interface {
	Current(ctx context.Context, c Coordinate, apiKey string) (WeatherObservation, error)
	Forecast(ctx context.Context, c Coordinate, apiKey string) ([]ForecastEntry, error)
}
