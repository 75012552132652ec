package domain

const (
	// BaseSampleIntervalKm is the nominal waypoint spacing (about 50 miles).
	BaseSampleIntervalKm = 80.0
	// SampleIntervalKm is the along-route spacing between intermediate samples.
	SampleIntervalKm = BaseSampleIntervalKm * 1.5
	// MaxIntermediateSamples caps the number of intermediate waypoints.
	MaxIntermediateSamples = 10
)

// SampleIntermediate picks unnamed points along the polyline, one each time the
// cumulative distance crosses the next multiple of SampleIntervalKm. The first
// and last vertices are never sampled. When more than MaxIntermediateSamples
// points qualify, an evenly strided subset is kept in route order.
func SampleIntermediate(polyline []Coordinate) []RoutePoint {
	distances := CumulativeDistances(polyline)

	var samples []RoutePoint
	next := SampleIntervalKm
	for i := 1; i < len(polyline)-1; i++ {
		if distances[i] >= next {
			samples = append(samples, RoutePoint{Coordinates: polyline[i]})
			next += SampleIntervalKm
		}
	}

	return capSamples(samples, MaxIntermediateSamples)
}

func capSamples(samples []RoutePoint, limit int) []RoutePoint {
	if len(samples) <= limit {
		return samples
	}
	step := (len(samples) + limit - 1) / limit
	kept := make([]RoutePoint, 0, limit)
	for i := 0; i < len(samples) && len(kept) < limit; i += step {
		kept = append(kept, samples[i])
	}
	return kept
}

// AssembleWaypoints frames the named intermediate points with a "Start" point
// at the first polyline vertex and an "End" point at the last one.
func AssembleWaypoints(polyline []Coordinate, intermediate []RoutePoint) []RoutePoint {
	if len(polyline) == 0 {
		return nil
	}
	waypoints := make([]RoutePoint, 0, len(intermediate)+2)
	waypoints = append(waypoints, RoutePoint{Coordinates: polyline[0], Name: "Start"})
	waypoints = append(waypoints, intermediate...)
	waypoints = append(waypoints, RoutePoint{Coordinates: polyline[len(polyline)-1], Name: "End"})
	return waypoints
}
