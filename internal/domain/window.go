package domain

import "time"

// ForecastFallbackEntries is the number of leading forecast steps (about 24
// hours at 3-hour resolution) kept when no entry falls inside the window.
const ForecastFallbackEntries = 8

// WindowForecast keeps forecast entries whose time lies within
// [pickup, delivery + 1 day]. If none qualify it falls back to the first
// ForecastFallbackEntries entries so callers always see near-term conditions.
func WindowForecast(entries []ForecastEntry, pickup, delivery time.Time) []ForecastEntry {
	end := delivery.AddDate(0, 0, 1)

	var windowed []ForecastEntry
	for _, e := range entries {
		if !e.Time.Before(pickup) && !e.Time.After(end) {
			windowed = append(windowed, e)
		}
	}
	if len(windowed) > 0 {
		return windowed
	}

	n := min(len(entries), ForecastFallbackEntries)
	fallback := make([]ForecastEntry, n)
	copy(fallback, entries[:n])
	return fallback
}
