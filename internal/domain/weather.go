package domain

import "time"

// Condition is one weather condition group as reported by the weather provider.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherObservation holds conditions at a single point in time. Units follow
// the provider defaults: Kelvin, hPa, percent, m/s, degrees and meters.
type WeatherObservation struct {
	Conditions  []Condition `json:"weather"`
	Temperature float64     `json:"temp"`
	FeelsLike   float64     `json:"feels_like"`
	TempMin     float64     `json:"temp_min"`
	TempMax     float64     `json:"temp_max"`
	Pressure    float64     `json:"pressure"`
	Humidity    float64     `json:"humidity"`
	WindSpeed   float64     `json:"wind_speed"`
	WindDeg     float64     `json:"wind_deg"`
	Visibility  float64     `json:"visibility"` // 0 means not reported
	Time        time.Time   `json:"time"`
}

// Primary returns the first reported condition, or the zero Condition.
func (o WeatherObservation) Primary() Condition {
	if len(o.Conditions) == 0 {
		return Condition{}
	}
	return o.Conditions[0]
}

// ForecastEntry is one step of a multi-day forecast.
type ForecastEntry struct {
	WeatherObservation
	PrecipitationProbability float64 `json:"pop"` // 0..1
}

// WaypointWeather is the weather picture for one named waypoint.
type WaypointWeather struct {
	Location Location           `json:"location"`
	Current  WeatherObservation `json:"current"`
	Forecast []ForecastEntry    `json:"forecast"`
}
