package domain

import (
	"fmt"
	"math"
)

// FormatDistance renders kilometers as miles, or feet under one mile.
func FormatDistance(km float64) string {
	miles := km * 0.621371
	if miles < 1 {
		return fmt.Sprintf("%d ft", roundInt(miles*5280))
	}
	return fmt.Sprintf("%.1f mi", miles)
}

// FormatDuration renders seconds as "Xh Ym", or "Ym" under an hour.
func FormatDuration(seconds float64) string {
	total := int(math.Floor(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatWindSpeed renders a wind speed in m/s as whole mph.
func FormatWindSpeed(speedMps float64) string {
	return fmt.Sprintf("%d mph", roundInt(WindMph(speedMps)))
}

// FormatVisibility renders meters as miles, or feet under one mile. An
// unreported visibility of 0 renders as DefaultVisibilityMeters.
func FormatVisibility(meters float64) string {
	miles := VisibilityMiles(meters)
	if miles < 1 {
		return fmt.Sprintf("%d ft", roundInt(miles*5280))
	}
	return fmt.Sprintf("%.1f mi", miles)
}

// FormatTemperature renders a Kelvin temperature in Fahrenheit ("F") or Celsius.
func FormatTemperature(kelvin float64, unit string) string {
	celsius := kelvin - 273.15
	if unit == "C" {
		return fmt.Sprintf("%d°C", roundInt(celsius))
	}
	return fmt.Sprintf("%d°F", roundInt(celsius*9/5+32))
}

// WeatherIconURL returns the provider icon image for a condition icon code.
func WeatherIconURL(iconCode string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", iconCode)
}

// Summarize builds display strings for a route's distance and duration.
func Summarize(r RouteData) *RouteSummary {
	return &RouteSummary{
		Distance: FormatDistance(r.Distance),
		Duration: FormatDuration(r.Duration),
	}
}
