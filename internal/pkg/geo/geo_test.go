package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistance(37.5665, 126.9780, 37.5665, 126.9780))
}

func TestHaversineDistance_KnownDistance(t *testing.T) {
	// Seoul City Hall to Gangnam Station is roughly 8.4 km
	d := HaversineDistance(37.5663, 126.9779, 37.4979, 127.0276)
	assert.InDelta(t, 8500, d, 400)
}

func TestHaversineDistance_SmallOffset(t *testing.T) {
	// One ten-thousandth of a degree of latitude is about 11 meters
	d := HaversineDistance(37.5665, 126.9780, 37.5666, 126.9780)
	assert.InDelta(t, 11.1, d, 0.5)
}

func TestIsWithinRadius(t *testing.T) {
	center := struct{ lat, lng float64 }{37.5665, 126.9780}

	// ~11 m away
	assert.True(t, IsWithinRadius(center.lat, center.lng, 37.5666, 126.9780, 50))

	// ~111 m away
	assert.False(t, IsWithinRadius(center.lat, center.lng, 37.5675, 126.9780, 50))
}
