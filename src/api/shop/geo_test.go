package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceZeroAtSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistance(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	a := HaversineDistance(40.7128, -74.0060, 34.0522, -118.2437)
	b := HaversineDistance(34.0522, -118.2437, 40.7128, -74.0060)
	assert.InDelta(t, a, b, 1e-9)
}

func TestHaversineDistanceKnownPairs(t *testing.T) {
	// NYC to LA is roughly 2445 miles great-circle.
	d := HaversineDistance(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 2445, d, 10)

	// One degree of latitude is about 69 miles.
	d = HaversineDistance(40, -74, 41, -74)
	assert.InDelta(t, 69.1, d, 0.5)
}

func TestHaversineDistanceGrowsWithSeparation(t *testing.T) {
	near := HaversineDistance(40, -74, 40.1, -74)
	far := HaversineDistance(40, -74, 42, -74)
	assert.Less(t, near, far)
}
