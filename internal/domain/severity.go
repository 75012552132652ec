package domain

import "strings"

const (
	// MpsToMph converts meters per second to miles per hour.
	MpsToMph = 2.237
	// MetersToMiles converts meters to miles.
	MetersToMiles = 0.000621371
	// DefaultVisibilityMeters is assumed when the provider omits visibility.
	DefaultVisibilityMeters = 10000.0

	// SevereWindMph is the wind speed above which driving a truck is hazardous.
	SevereWindMph = 30.0
	// SevereVisibilityMiles is the visibility below which driving is hazardous.
	SevereVisibilityMiles = 1.0
)

var (
	severeMainKeywords        = []string{"thunderstorm", "snow", "sleet", "extreme"}
	severeDescriptionKeywords = []string{"heavy", "freezing", "ice", "blizzard", "hail", "torrential"}
)

// IsSevereWeather reports whether a condition's main category or description
// names a hazard for driving. Matching is case-insensitive substring matching.
func IsSevereWeather(main, description string) bool {
	main = strings.ToLower(main)
	description = strings.ToLower(description)
	for _, kw := range severeMainKeywords {
		if strings.Contains(main, kw) {
			return true
		}
	}
	for _, kw := range severeDescriptionKeywords {
		if strings.Contains(description, kw) {
			return true
		}
	}
	return false
}

// IsSevereWind reports whether a wind speed in m/s exceeds SevereWindMph.
func IsSevereWind(speedMps float64) bool {
	return WindMph(speedMps) > SevereWindMph
}

// IsSevereVisibility reports whether a visibility in meters is below
// SevereVisibilityMiles. Zero is treated as not reported.
func IsSevereVisibility(meters float64) bool {
	return VisibilityMiles(meters) < SevereVisibilityMiles
}

// HasSevereConditions evaluates the current observation of a waypoint only;
// forecast entries are weighed by GenerateAdvice.
func HasSevereConditions(w WaypointWeather) bool {
	c := w.Current.Primary()
	return IsSevereWeather(c.Main, c.Description) ||
		IsSevereWind(w.Current.WindSpeed) ||
		IsSevereVisibility(w.Current.Visibility)
}

// SevereWaypoints returns the waypoints whose current conditions are severe.
func SevereWaypoints(weathers []WaypointWeather) []WaypointWeather {
	var severe []WaypointWeather
	for _, w := range weathers {
		if HasSevereConditions(w) {
			severe = append(severe, w)
		}
	}
	return severe
}

// RouteSeverity is the coarse route-level flag used to color a route line:
// severe when any waypoint currently has severe conditions, clear otherwise.
func RouteSeverity(weathers []WaypointWeather) Severity {
	for _, w := range weathers {
		if HasSevereConditions(w) {
			return SeveritySevere
		}
	}
	return SeverityClear
}

// WindMph converts a wind speed in m/s to mph.
func WindMph(speedMps float64) float64 {
	return speedMps * MpsToMph
}

// VisibilityMiles converts a visibility in meters to miles, substituting
// DefaultVisibilityMeters when the value is not reported.
func VisibilityMiles(meters float64) float64 {
	if meters == 0 {
		meters = DefaultVisibilityMeters
	}
	return meters * MetersToMiles
}
