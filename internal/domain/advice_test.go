package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waypoint(name, main, desc string, windMps, visibilityM float64) WaypointWeather {
	return WaypointWeather{
		Location: Location{Name: name},
		Current: WeatherObservation{
			Conditions: []Condition{{Main: main, Description: desc}},
			WindSpeed:  windMps,
			Visibility: visibilityM,
		},
	}
}

func clearAt(name string) WaypointWeather {
	return waypoint(name, "Clear", "clear sky", 3, 10000)
}

func forecastStep(main, desc string, pop float64) ForecastEntry {
	return ForecastEntry{
		WeatherObservation:       WeatherObservation{Conditions: []Condition{{Main: main, Description: desc}}},
		PrecipitationProbability: pop,
	}
}

func TestGenerateAdvice_EmptyWithDates(t *testing.T) {
	pickup := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	delivery := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	advice := GenerateAdvice(nil, &pickup, &delivery)

	assert.Equal(t, SeverityClear, advice.Severity)
	assert.Contains(t, advice.Message, "Jun 1")
	assert.Contains(t, advice.Message, "Jun 2")
	assert.Equal(t, "No severe weather conditions detected along the route from Jun 1 to Jun 2. Safe driving conditions expected.", advice.Message)
	assert.NotNil(t, advice.Details)
	assert.Empty(t, advice.Details)
}

func TestGenerateAdvice_EmptyWithoutDates(t *testing.T) {
	pickup := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, advice := range []WeatherAdvice{
		GenerateAdvice([]WaypointWeather{}, nil, nil),
		GenerateAdvice(nil, &pickup, nil),
	} {
		assert.Equal(t, SeverityClear, advice.Severity)
		assert.Equal(t, "No severe weather conditions detected along the route. Safe driving conditions expected.", advice.Message)
		assert.Empty(t, advice.Details)
	}
}

func TestGenerateAdvice_Clear(t *testing.T) {
	advice := GenerateAdvice([]WaypointWeather{clearAt("Start"), clearAt("Joliet"), clearAt("End")}, nil, nil)

	assert.Equal(t, SeverityClear, advice.Severity)
	assert.True(t, strings.HasPrefix(advice.Message, "CLEAR CONDITIONS:"))
	assert.Contains(t, advice.Message, "on-time delivery likely")
	assert.Empty(t, advice.Details)
}

func TestGenerateAdvice_ThunderstormIsSevere(t *testing.T) {
	chicago := waypoint("Chicago", "Thunderstorm", "thunderstorm with light rain", 5, 9000)

	advice := GenerateAdvice([]WaypointWeather{chicago}, nil, nil)

	assert.Equal(t, SeveritySevere, advice.Severity)
	assert.Contains(t, advice.Message, "Chicago")
	assert.Equal(t,
		"SEVERE WEATHER ALERT: Severe weather conditions at Chicago (thunderstorm with light rain). "+
			"We recommend delaying departure or rerouting. Please contact us to discuss alternative arrangements.",
		advice.Message)
	assert.Equal(t, []string{"Severe weather: thunderstorm with light rain at Chicago"}, advice.Details)
}

func TestGenerateAdvice_ExtremeWindCitesRoundedMph(t *testing.T) {
	advice := GenerateAdvice([]WaypointWeather{
		clearAt("Start"),
		waypoint("Amarillo", "Clear", "clear sky", 25, 10000),
	}, nil, nil)

	assert.Equal(t, SeveritySevere, advice.Severity)
	assert.Contains(t, advice.Message, "Extremely high winds (56 mph) at Amarillo")
	assert.Equal(t, []string{"High winds: 56 mph at Amarillo"}, advice.Details)
}

func TestGenerateAdvice_ModerateWind(t *testing.T) {
	advice := GenerateAdvice([]WaypointWeather{
		waypoint("Salina", "Clouds", "broken clouds", 15, 10000),
		clearAt("Hays"),
	}, nil, nil)

	assert.Equal(t, SeverityModerate, advice.Severity)
	assert.Equal(t,
		"MODERATE WEATHER CONDITIONS: high winds (34 mph) at Salina. "+
			"Delays may be possible. We will monitor conditions and update you if needed.",
		advice.Message)
	assert.Equal(t, []string{"High winds: 34 mph at Salina"}, advice.Details)
}

func TestGenerateAdvice_ModerateWindAndVisibility(t *testing.T) {
	advice := GenerateAdvice([]WaypointWeather{
		waypoint("Salina", "Clouds", "broken clouds", 15, 10000),
		waypoint("Hays", "Mist", "mist", 16, 1000),
		waypoint("Colby", "Fog", "fog", 2, 800),
	}, nil, nil)

	assert.Equal(t, SeverityModerate, advice.Severity)
	assert.Contains(t, advice.Message, "high winds (36 mph) at Hays")
	assert.Contains(t, advice.Message, "reduced visibility (0.5 mi) at Colby")
	assert.Equal(t, []string{
		"High winds: 34 mph at Salina",
		"High winds: 36 mph at Hays",
		"Low visibility: 0.6 mi at Hays",
		"Low visibility: 0.5 mi at Colby",
	}, advice.Details)
}

func TestGenerateAdvice_VeryLowVisibilityIsSevere(t *testing.T) {
	advice := GenerateAdvice([]WaypointWeather{
		waypoint("Cheyenne", "Fog", "fog", 2, 300),
	}, nil, nil)

	assert.Equal(t, SeveritySevere, advice.Severity)
	assert.Contains(t, advice.Message, "Very low visibility (0.2 mi) at Cheyenne")
}

func TestGenerateAdvice_WorstWindTieGoesToFirstWaypoint(t *testing.T) {
	advice := GenerateAdvice([]WaypointWeather{
		waypoint("Laramie", "Clear", "clear sky", 25, 10000),
		waypoint("Rawlins", "Clear", "clear sky", 25, 10000),
	}, nil, nil)

	assert.Contains(t, advice.Message, "at Laramie")
	assert.NotContains(t, advice.Message, "at Rawlins")
}

func TestGenerateAdvice_WorstVisibilityTieGoesToFirstWaypoint(t *testing.T) {
	advice := GenerateAdvice([]WaypointWeather{
		waypoint("Salina", "Fog", "fog", 2, 1000),
		waypoint("Hays", "Fog", "fog", 2, 1000),
	}, nil, nil)

	assert.Equal(t, SeverityModerate, advice.Severity)
	assert.Contains(t, advice.Message, "reduced visibility (0.6 mi) at Salina")
}

func TestGenerateAdvice_ForecastWithHighPrecipitationIsSevere(t *testing.T) {
	w := clearAt("Denver")
	w.Forecast = []ForecastEntry{
		forecastStep("Clouds", "overcast clouds", 0.2),
		forecastStep("Snow", "heavy snow", 0.8),
		forecastStep("Snow", "light snow", 0.9),
	}

	advice := GenerateAdvice([]WaypointWeather{w}, nil, nil)

	assert.Equal(t, SeveritySevere, advice.Severity)
	assert.Contains(t, advice.Message, "Denver (heavy snow)")
	assert.Equal(t, 1, strings.Count(advice.Message, "Denver"), "location is listed once")
	assert.Empty(t, advice.Details, "forecast detections add no details")
}

func TestGenerateAdvice_ForecastIgnoredBelowThresholdOrPastEightSteps(t *testing.T) {
	lowChance := clearAt("Denver")
	lowChance.Forecast = []ForecastEntry{forecastStep("Snow", "heavy snow", 0.6)}

	late := clearAt("Vail")
	for range AdviceForecastEntries {
		late.Forecast = append(late.Forecast, forecastStep("Clear", "clear sky", 0))
	}
	late.Forecast = append(late.Forecast, forecastStep("Thunderstorm", "thunderstorm", 1))

	advice := GenerateAdvice([]WaypointWeather{lowChance, late}, nil, nil)

	assert.Equal(t, SeverityClear, advice.Severity)
}

func TestGenerateAdvice_ForecastDoesNotDuplicateCurrentListing(t *testing.T) {
	w := waypoint("Omaha", "Snow", "light snow", 3, 10000)
	w.Forecast = []ForecastEntry{forecastStep("Snow", "heavy snow", 0.9)}

	advice := GenerateAdvice([]WaypointWeather{w}, nil, nil)

	assert.Contains(t, advice.Message, "Omaha (light snow)")
	assert.NotContains(t, advice.Message, "heavy snow")
}

func TestGenerateAdvice_SevereListsAtMostThreeLocations(t *testing.T) {
	var weathers []WaypointWeather
	for _, name := range []string{"A", "B", "C", "D"} {
		weathers = append(weathers, waypoint(name, "Snow", "snow", 3, 10000))
	}

	advice := GenerateAdvice(weathers, nil, nil)

	assert.Contains(t, advice.Message, "A (snow), B (snow), C (snow)")
	assert.NotContains(t, advice.Message, "D (snow)")
	assert.Len(t, advice.Details, 4)
}

func TestGenerateAdvice_UnnamedLocation(t *testing.T) {
	advice := GenerateAdvice([]WaypointWeather{waypoint("", "Snow", "snow", 3, 10000)}, nil, nil)
	assert.Contains(t, advice.Message, "location (snow)")
}

func TestGenerateAdvice_Idempotent(t *testing.T) {
	w := waypoint("Des Moines", "Rain", "freezing rain", 14, 1200)
	w.Forecast = []ForecastEntry{forecastStep("Snow", "snow", 0.7)}
	weathers := []WaypointWeather{clearAt("Start"), w, waypoint("End", "Fog", "fog", 1, 200)}
	pickup := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	first := GenerateAdvice(weathers, &pickup, &pickup)
	second := GenerateAdvice(weathers, &pickup, &pickup)

	require.Equal(t, first, second)
}

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityClear.Rank(), SeverityMinor.Rank())
	assert.Less(t, SeverityMinor.Rank(), SeverityModerate.Rank())
	assert.Less(t, SeverityModerate.Rank(), SeveritySevere.Rank())
}
