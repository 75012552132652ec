package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Severity is the tier of a weather advisory.
type Severity string

// Severity tiers in increasing order. SeverityMinor is part of the scale but
// no rule currently produces it.
const (
	SeverityClear    Severity = "clear"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Rank orders tiers so that clear < minor < moderate < severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityMinor:
		return 1
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	default:
		return 0
	}
}

const (
	// ExtremeWindMph escalates high winds to the severe tier.
	ExtremeWindMph = 50.0
	// ExtremeVisibilityMiles escalates low visibility to the severe tier.
	ExtremeVisibilityMiles = 0.25
	// ForecastPrecipitationThreshold is the precipitation probability a
	// forecast step must exceed before its severe weather is flagged.
	ForecastPrecipitationThreshold = 0.6
	// AdviceForecastEntries is how many forecast steps are scanned per waypoint.
	AdviceForecastEntries = 8

	maxSevereListed   = 3
	maxModerateListed = 2
)

// WeatherAdvice is the advisory derived from a set of waypoint weathers.
type WeatherAdvice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Details  []string `json:"details"`
}

type conditionAt struct {
	name      string
	condition string
}

type valueAt struct {
	name  string
	value float64
}

// GenerateAdvice classifies the route and writes a customer-facing advisory.
// It is a pure function of its inputs. Pickup and delivery are only used to
// give the all-clear message for an empty route a date range.
//
// Running maximum wind and minimum visibility come from current conditions
// only. Forecast steps can add a location to the severe weather list but
// never change those aggregates. When several locations share the worst wind
// or visibility value, the first one in waypoint order is reported.
func GenerateAdvice(weathers []WaypointWeather, pickup, delivery *time.Time) WeatherAdvice {
	if len(weathers) == 0 {
		dateContext := ""
		if pickup != nil && delivery != nil {
			dateContext = fmt.Sprintf(" from %s to %s", pickup.Format("Jan 2"), delivery.Format("Jan 2"))
		}
		return WeatherAdvice{
			Severity: SeverityClear,
			Message:  fmt.Sprintf("No severe weather conditions detected along the route%s. Safe driving conditions expected.", dateContext),
			Details:  []string{},
		}
	}

	details := []string{}
	var (
		severeWeather   []conditionAt
		windLocations   []valueAt
		visLocations    []valueAt
		maxWindMph      float64
		minVisibilityMi = math.Inf(1)
	)

	for _, w := range weathers {
		name := w.Location.Name
		if name == "" {
			name = "location"
		}
		current := w.Current.Primary()

		if IsSevereWeather(current.Main, current.Description) {
			severeWeather = append(severeWeather, conditionAt{name: name, condition: current.Description})
			details = append(details, fmt.Sprintf("Severe weather: %s at %s", current.Description, name))
		}

		windMph := WindMph(w.Current.WindSpeed)
		maxWindMph = max(maxWindMph, windMph)
		if IsSevereWind(w.Current.WindSpeed) {
			windLocations = append(windLocations, valueAt{name: name, value: windMph})
			details = append(details, fmt.Sprintf("High winds: %d mph at %s", roundInt(windMph), name))
		}

		visMi := VisibilityMiles(w.Current.Visibility)
		minVisibilityMi = min(minVisibilityMi, visMi)
		if IsSevereVisibility(w.Current.Visibility) {
			visLocations = append(visLocations, valueAt{name: name, value: visMi})
			details = append(details, fmt.Sprintf("Low visibility: %.1f mi at %s", visMi, name))
		}

		forecasts := w.Forecast[:min(len(w.Forecast), AdviceForecastEntries)]
		for _, f := range forecasts {
			fc := f.Primary()
			if f.PrecipitationProbability > ForecastPrecipitationThreshold &&
				IsSevereWeather(fc.Main, fc.Description) &&
				!listed(severeWeather, name) {
				severeWeather = append(severeWeather, conditionAt{name: name, condition: fc.Description})
			}
		}
	}

	hasSevereWeather := len(severeWeather) > 0
	hasHighWinds := len(windLocations) > 0
	hasLowVisibility := len(visLocations) > 0

	switch {
	case hasSevereWeather || (hasHighWinds && maxWindMph > ExtremeWindMph) ||
		(hasLowVisibility && minVisibilityMi < ExtremeVisibilityMiles):
		var alerts []string
		if hasSevereWeather {
			parts := make([]string, 0, maxSevereListed)
			for _, l := range severeWeather[:min(len(severeWeather), maxSevereListed)] {
				parts = append(parts, fmt.Sprintf("%s (%s)", l.name, l.condition))
			}
			alerts = append(alerts, "Severe weather conditions at "+strings.Join(parts, ", "))
		}
		if hasHighWinds && maxWindMph > ExtremeWindMph {
			worst := highest(windLocations)
			alerts = append(alerts, fmt.Sprintf("Extremely high winds (%d mph) at %s", roundInt(maxWindMph), worst.name))
		}
		if hasLowVisibility && minVisibilityMi < ExtremeVisibilityMiles {
			worst := lowest(visLocations)
			alerts = append(alerts, fmt.Sprintf("Very low visibility (%.1f mi) at %s", minVisibilityMi, worst.name))
		}
		return WeatherAdvice{
			Severity: SeveritySevere,
			Message: "SEVERE WEATHER ALERT: " + strings.Join(alerts, ". ") + ". " +
				"We recommend delaying departure or rerouting. Please contact us to discuss alternative arrangements.",
			Details: details,
		}

	case hasSevereWeather || hasHighWinds || hasLowVisibility:
		var conditions []string
		if hasSevereWeather {
			names := make([]string, 0, maxModerateListed)
			for _, l := range severeWeather[:min(len(severeWeather), maxModerateListed)] {
				names = append(names, l.name)
			}
			conditions = append(conditions, "severe weather conditions at "+strings.Join(names, " and "))
		}
		if hasHighWinds {
			worst := highest(windLocations)
			conditions = append(conditions, fmt.Sprintf("high winds (%d mph) at %s", roundInt(worst.value), worst.name))
		}
		if hasLowVisibility {
			worst := lowest(visLocations)
			conditions = append(conditions, fmt.Sprintf("reduced visibility (%.1f mi) at %s", worst.value, worst.name))
		}
		return WeatherAdvice{
			Severity: SeverityModerate,
			Message: "MODERATE WEATHER CONDITIONS: " + strings.Join(conditions, ", ") + ". " +
				"Delays may be possible. We will monitor conditions and update you if needed.",
			Details: details,
		}

	default:
		return WeatherAdvice{
			Severity: SeverityClear,
			Message: "CLEAR CONDITIONS: No severe weather conditions detected along the route. " +
				"Safe driving conditions expected with on-time delivery likely.",
			Details: details,
		}
	}
}

func listed(locations []conditionAt, name string) bool {
	for _, l := range locations {
		if l.name == name {
			return true
		}
	}
	return false
}

// highest returns the first entry holding the maximum value.
func highest(values []valueAt) valueAt {
	best := values[0]
	for _, v := range values[1:] {
		if v.value > best.value {
			best = v
		}
	}
	return best
}

// lowest returns the first entry holding the minimum value.
func lowest(values []valueAt) valueAt {
	best := values[0]
	for _, v := range values[1:] {
		if v.value < best.value {
			best = v
		}
	}
	return best
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
