package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCoordinatePair_Valid(t *testing.T) {
	tests := []struct {
		name     string
		pair     CoordinatePair
		expected bool
	}{
		{
			name:     "valid regional pair",
			pair:     CoordinatePair{FromLat: 41.3851, FromLon: 2.1734, ToLat: 41.4036, ToLon: 2.1744},
			expected: true,
		},
		{
			name:     "valid zero coordinates",
			pair:     CoordinatePair{},
			expected: true,
		},
		{
			name:     "from latitude out of range",
			pair:     CoordinatePair{FromLat: 91, FromLon: 0, ToLat: 0, ToLon: 0},
			expected: false,
		},
		{
			name:     "to longitude out of range",
			pair:     CoordinatePair{FromLat: 0, FromLon: 0, ToLat: 0, ToLon: -180.5},
			expected: false,
		},
		{
			name:     "both points out of range",
			pair:     CoordinatePair{FromLat: -95, FromLon: 200, ToLat: 95, ToLon: -200},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pair.Valid())
		})
	}
}

func TestDistanceComputeEvent_PairValidation(t *testing.T) {
	event := DistanceComputeEvent{
		JobID: uuid.New(),
		Pairs: []CoordinatePair{
			{FromLat: 41.3851, FromLon: 2.1734, ToLat: 41.4036, ToLon: 2.1744},
			{FromLat: 99, FromLon: 0, ToLat: 0, ToLon: 0},
		},
	}

	assert.True(t, event.Pairs[0].Valid())
	assert.False(t, event.Pairs[1].Valid())
}
