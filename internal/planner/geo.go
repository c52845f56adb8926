package planner

import "math"

const (
	earthRadiusKM = 6371.0
	// Assumed average road speed for transfer-day estimates.
	avgSpeedKMH = 45.0
)

// HaversineKM returns the great-circle distance in kilometers between two
// lat/long pairs.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// TravelTimeHours estimates driving time for a transfer day. Display only;
// this is not a router.
func TravelTimeHours(distanceKM float64) float64 {
	return distanceKM / avgSpeedKMH
}
