package domain

import (
	"math"
	"strconv"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two coordinates in kilometers.
func Haversine(a, b Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// CumulativeDistances returns the along-route distance in kilometers from the
// first vertex to each vertex of the polyline. The result has the same length
// as the polyline and is non-decreasing.
func CumulativeDistances(polyline []Coordinate) []float64 {
	if len(polyline) == 0 {
		return nil
	}
	distances := make([]float64, len(polyline))
	for i := 1; i < len(polyline); i++ {
		distances[i] = distances[i-1] + Haversine(polyline[i-1], polyline[i])
	}
	return distances
}

// PolylinePairs converts coordinates into [lat, lon] pairs.
func PolylinePairs(polyline []Coordinate) [][2]float64 {
	pairs := make([][2]float64, len(polyline))
	for i, c := range polyline {
		pairs[i] = [2]float64{c.Lat, c.Lon}
	}
	return pairs
}

// ParseCoordinate parses "lat, lon" input in decimal degrees. It reports false
// for anything else, including out-of-range values.
func ParseCoordinate(s string) (Coordinate, bool) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || lon < -180 || lon > 180 {
		return Coordinate{}, false
	}
	return Coordinate{Lat: lat, Lon: lon}, true
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
