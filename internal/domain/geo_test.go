package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// equatorLine returns n+1 vertices along the equator spaced stepDeg apart.
func equatorLine(n int, stepDeg float64) []Coordinate {
	line := make([]Coordinate, n+1)
	for i := range line {
		line[i] = Coordinate{Lat: 0, Lon: float64(i) * stepDeg}
	}
	return line
}

func TestHaversine_KnownDistances(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want float64
		tol  float64
	}{
		{"same point", Coordinate{41.8781, -87.6298}, Coordinate{41.8781, -87.6298}, 0, 1e-9},
		{"one degree of longitude at equator", Coordinate{0, 0}, Coordinate{0, 1}, 111.195, 0.01},
		{"chicago to st louis", Coordinate{41.8781, -87.6298}, Coordinate{38.6270, -90.1994}, 422.133, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Haversine(tt.a, tt.b), tt.tol)
		})
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Coordinate{Lat: 39.7392, Lon: -104.9903}
	b := Coordinate{Lat: 32.7767, Lon: -96.7970}
	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
}

func TestCumulativeDistances_MonotonicAndSumsSegments(t *testing.T) {
	line := []Coordinate{
		{41.8781, -87.6298},
		{41.5, -88.1},
		{41.5, -88.1},
		{40.1, -89.4},
		{38.6270, -90.1994},
	}

	distances := CumulativeDistances(line)
	require.Len(t, distances, len(line))
	assert.Zero(t, distances[0])

	var total float64
	for i := 1; i < len(line); i++ {
		assert.GreaterOrEqual(t, distances[i], distances[i-1])
		total += Haversine(line[i-1], line[i])
	}
	assert.InDelta(t, total, distances[len(distances)-1], 1e-9)
}

func TestCumulativeDistances_Empty(t *testing.T) {
	assert.Nil(t, CumulativeDistances(nil))
}

func TestPolylinePairs(t *testing.T) {
	pairs := PolylinePairs([]Coordinate{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}})
	assert.Equal(t, [][2]float64{{1, 2}, {3, 4}}, pairs)
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in   string
		want Coordinate
		ok   bool
	}{
		{"41.8781, -87.6298", Coordinate{Lat: 41.8781, Lon: -87.6298}, true},
		{"-33.9,151.2", Coordinate{Lat: -33.9, Lon: 151.2}, true},
		{"Chicago, IL", Coordinate{}, false},
		{"91, 0", Coordinate{}, false},
		{"0, 181", Coordinate{}, false},
		{"41.8781", Coordinate{}, false},
		{"", Coordinate{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseCoordinate(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
