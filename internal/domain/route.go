package domain

import "time"

// Coordinate is a WGS-84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is a named coordinate. Name is empty until the point is reverse geocoded.
type Location struct {
	Name        string     `json:"name,omitempty"`
	Coordinates Coordinate `json:"coordinates"`
}

// RoutePoint is a sampled point along a route.
type RoutePoint struct {
	Coordinates Coordinate `json:"coordinates"`
	Name        string     `json:"name,omitempty"`
}

// Directions is the raw driving route returned by a routing provider.
type Directions struct {
	Polyline        []Coordinate
	DistanceMeters  float64
	DurationSeconds float64
}

// RouteData is the sampled route handed to the weather stage.
//
// Waypoints[0] is the origin and the last waypoint is the destination; the
// order between them follows the travel direction along Polyline.
type RouteData struct {
	Waypoints []RoutePoint  `json:"waypoints"`
	Polyline  [][2]float64  `json:"polyline"` // [lat, lon] pairs
	Distance  float64       `json:"distance"` // kilometers
	Duration  float64       `json:"duration"` // seconds
	Summary   *RouteSummary `json:"summary,omitempty"`
}

// RouteSummary holds display strings for a route.
type RouteSummary struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

// RouteReport is the complete output of one planning run.
type RouteReport struct {
	ID           string            `json:"id"`
	Origin       string            `json:"origin"`
	Destination  string            `json:"destination"`
	PickupDate   time.Time         `json:"pickup_date"`
	DeliveryDate time.Time         `json:"delivery_date"`
	Route        RouteData         `json:"route"`
	Weather      []WaypointWeather `json:"weather"`
	Advice       WeatherAdvice     `json:"advice"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// Locations converts route waypoints into weather-stage locations. Waypoints
// that were never named are labelled "Location".
func (r RouteData) Locations() []Location {
	locations := make([]Location, len(r.Waypoints))
	for i, wp := range r.Waypoints {
		name := wp.Name
		if name == "" {
			name = "Location"
		}
		locations[i] = Location{Name: name, Coordinates: wp.Coordinates}
	}
	return locations
}
