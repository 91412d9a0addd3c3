package geo

import "math"

// earthRadiusM is the Earth's radius in meters
const earthRadiusM = 6371000.0

// HaversineDistance calculates the distance between two points in meters
// using the Haversine formula (accounts for Earth's curvature).
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// IsWithinRadius checks if a point is within radiusM meters of a center point
func IsWithinRadius(centerLat, centerLng, pointLat, pointLng, radiusM float64) bool {
	return HaversineDistance(centerLat, centerLng, pointLat, pointLng) <= radiusM
}
