package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodistance-microservice/internal/pkg/geo"
)

func TestApproxDistance_Identity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{41.3851, 2.1734},  // Barcelona
		{-34.6, -58.4},     // Buenos Aires
		{89.9, 179.9},
		{-89.9, -179.9},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, geo.ApproxDistance(p[0], p[1], p[0], p[1]),
			"distance from a point to itself must be zero")
	}
}

func TestApproxDistance_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{41.3851, 2.1734, 41.4036, 2.1744},
		{-34.6, -58.4, -34.6, -57.4},
		{0, 0, 0.5, 0.5},
		{55.75, 37.62, 55.60, 37.90},
	}

	for _, p := range pairs {
		d1 := geo.ApproxDistance(p[0], p[1], p[2], p[3])
		d2 := geo.ApproxDistance(p[2], p[3], p[0], p[1])
		assert.Equal(t, d1, d2, "distance must be symmetric")
	}
}

func TestApproxDistance_NonNegative(t *testing.T) {
	pairs := [][4]float64{
		{41.3851, 2.1734, 41.3851, 2.1734},
		{10, 10, -10, -10},
		{-34.6, -58.4, -34.7, -58.5},
		{0, 179.9, 0, -179.9},
	}

	for _, p := range pairs {
		assert.GreaterOrEqual(t, geo.ApproxDistance(p[0], p[1], p[2], p[3]), 0.0)
	}
}

func TestApproxDistance_OneDegreeAtEquator(t *testing.T) {
	// Один градус долготы на экваторе ≈ 111 320 м
	d := geo.ApproxDistance(0, 0, 0, 1)
	assert.InEpsilon(t, 111320.0, d, 0.03)
}

func TestApproxDistance_BuenosAiresOneDegreeEast(t *testing.T) {
	// cos(-34.6°) ≈ 0.823, поэтому градус долготы ≈ 91 800 м
	d := geo.ApproxDistance(-34.6, -58.4, -34.6, -57.4)
	assert.InEpsilon(t, 91800.0, d, 0.03)
}

func TestApproxDistance_BoundedErrorVsHaversine(t *testing.T) {
	// Региональное распределение: пары в пределах ±5° от Барселоны.
	// Относительное отклонение от точной haversine-формулы должно
	// оставаться в пределах 1%.
	const refLat, refLon = 41.3851, 2.1734

	offsets := [][4]float64{
		{0, 0, 0.1, 0.1},
		{0, 0, 1.0, 0.0},
		{0, 0, 0.0, 1.0},
		{-2.0, -2.0, 2.0, 2.0},
		{-5.0, 3.0, 4.0, -3.0},
		{1.5, -4.5, -1.5, 4.5},
		{4.9, 4.9, -4.9, -4.9},
	}

	for _, o := range offsets {
		lat1, lon1 := refLat+o[0], refLon+o[1]
		lat2, lon2 := refLat+o[2], refLon+o[3]

		approx := geo.ApproxDistance(lat1, lon1, lat2, lon2)
		exact := geo.HaversineDistance(lat1, lon1, lat2, lon2)
		require.Greater(t, exact, 0.0)

		relErr := (approx - exact) / exact
		if relErr < 0 {
			relErr = -relErr
		}
		assert.LessOrEqual(t, relErr, 0.01,
			"relative error vs haversine exceeded 1%% for pair (%f,%f)-(%f,%f)",
			lat1, lon1, lat2, lon2)
	}
}

func TestApproxDistance_MonotonicAlongMeridian(t *testing.T) {
	// При фиксированной долготе рост дельты широты строго увеличивает
	// расстояние
	const lon = 2.1734
	prev := 0.0
	for dLat := 0.1; dLat <= 5.0; dLat += 0.1 {
		d := geo.ApproxDistance(41.0, lon, 41.0+dLat, lon)
		assert.Greater(t, d, prev, "distance must grow with latitude delta")
		prev = d
	}
}

func TestHaversineDistance_KnownValue(t *testing.T) {
	// Барселона (пл. Каталонии) — Саграда Фамилия, ~1.88 км по прямой
	d := geo.HaversineDistance(41.3870, 2.1701, 41.4036, 2.1744)
	assert.InDelta(t, 1880, d, 50)
}

func TestSeparationDegrees(t *testing.T) {
	t.Run("one degree along meridian", func(t *testing.T) {
		sep := geo.SeparationDegrees(0, 0, 1, 0)
		assert.InDelta(t, 1.0, sep, 0.01)
	})

	t.Run("identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, geo.SeparationDegrees(41.4, 2.17, 41.4, 2.17))
	})

	t.Run("regional pair stays under default threshold", func(t *testing.T) {
		sep := geo.SeparationDegrees(41.3851, 2.1734, 41.9794, 2.8214) // Barcelona - Girona
		assert.Less(t, sep, geo.DefaultMaxSeparationDeg)
	})
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected bool
	}{
		{"valid barcelona", 41.3851, 2.1734, true},
		{"valid equator origin", 0, 0, true},
		{"valid extreme corners", 90, 180, true},
		{"valid negative corners", -90, -180, true},
		{"latitude too big", 90.1, 0, false},
		{"latitude too small", -90.1, 0, false},
		{"longitude too big", 0, 180.1, false},
		{"longitude too small", 0, -180.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, geo.ValidateCoordinates(tt.lat, tt.lon))
		})
	}
}

func TestValidateRadius(t *testing.T) {
	assert.True(t, geo.ValidateRadius(0.1))
	assert.True(t, geo.ValidateRadius(100))
	assert.False(t, geo.ValidateRadius(0.05))
	assert.False(t, geo.ValidateRadius(101))
}

func TestBoundingBoxAround(t *testing.T) {
	minLat, minLon, maxLat, maxLon := geo.BoundingBoxAround(41.3851, 2.1734, 1000)

	assert.Less(t, minLat, 41.3851)
	assert.Greater(t, maxLat, 41.3851)
	assert.Less(t, minLon, 2.1734)
	assert.Greater(t, maxLon, 2.1734)

	// Рамка должна покрывать радиус: углы дальше 1000 м, стороны - не ближе
	assert.GreaterOrEqual(t, geo.HaversineDistance(41.3851, 2.1734, minLat, 2.1734), 999.0)
	assert.GreaterOrEqual(t, geo.HaversineDistance(41.3851, 2.1734, 41.3851, minLon), 999.0)
}
