// Package domain models a truck route sampled into waypoints and the weather
// exposure along it, and turns that exposure into a customer advisory.
//
// # Provider Conventions
//
// Coordinate order:
//
//	The routing provider returns GeoJSON geometry in [lon, lat] order. Route
//	polylines are converted to [lat, lon] pairs before leaving the adapter.
//
// Weather units:
//
//	Observations keep the weather provider's default units: temperature in
//	Kelvin, wind speed in m/s, visibility in meters. A visibility of 0 means
//	the provider omitted it and 10000 m is assumed.
//
// Place names:
//
//	Reverse geocoding yields address components. The display name prefers
//	city, then town, then municipality, then "county, state", then county
//	alone, then state. Points with no usable name are dropped.
//
// # Waypoint Sampling
//
// Along-route distance is the running sum of haversine distances (Earth
// radius 6371 km) between consecutive polyline vertices. An intermediate
// sample is taken each time that distance crosses the next multiple of
// 120 km. At most 10 intermediate samples are kept; larger sets are strided
// evenly. Every route starts with a "Start" point and ends with an "End" point.
//
// # Severity Classification
//
// Per observation:
//
//	Weather:    main contains thunderstorm|snow|sleet|extreme, or
//	            description contains heavy|freezing|ice|blizzard|hail|torrential
//	Wind:       speed x 2.237 > 30 mph
//	Visibility: meters x 0.000621371 < 1 mile
//
// Advisory tiers (clear < minor < moderate < severe):
//
//	Severe:   any severe weather, max wind > 50 mph, or min visibility < 0.25 mi
//	Moderate: any high wind or low visibility
//	Clear:    nothing flagged
//
// Forecast steps only count toward severe weather, and only when their
// precipitation probability exceeds 0.6. The minor tier is never produced.
package domain
