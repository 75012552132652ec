package domain

import "strings"

// AddressComponents are the administrative parts of a reverse geocoding result.
type AddressComponents struct {
	City         string
	Town         string
	Municipality string
	County       string
	State        string
}

// PlaceName picks the display name for a sampled point, preferring larger
// settlements: city, town, municipality, "county, state", county, then state.
// It returns "" when none of these are present.
func PlaceName(a AddressComponents) string {
	switch {
	case a.City != "":
		return a.City
	case a.Town != "":
		return a.Town
	case a.Municipality != "":
		return a.Municipality
	case a.County != "" && a.State != "":
		return a.County + ", " + a.State
	case a.County != "":
		return a.County
	default:
		return a.State
	}
}

// DedupeByName drops unnamed points and points whose name (compared
// case-insensitively) was already seen, keeping first occurrences in order.
func DedupeByName(points []RoutePoint) []RoutePoint {
	seen := make(map[string]struct{}, len(points))
	named := make([]RoutePoint, 0, len(points))
	for _, p := range points {
		if p.Name == "" {
			continue
		}
		key := strings.ToLower(p.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		named = append(named, p)
	}
	return named
}
