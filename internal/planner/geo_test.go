package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Kigali city center
const kigaliLat, kigaliLon = -1.9441, 30.0619

func TestHaversineSymmetry(t *testing.T) {
	// Kigali -> Musanze (Volcanoes NP gateway)
	d1 := HaversineKM(kigaliLat, kigaliLon, -1.4996, 29.6342)
	d2 := HaversineKM(-1.4996, 29.6342, kigaliLat, kigaliLon)
	assert.InDelta(t, d1, d2, 1e-9)
	assert.Greater(t, d1, 50.0)
	assert.Less(t, d1, 120.0)
}

func TestHaversineSelfDistanceZero(t *testing.T) {
	assert.InDelta(t, 0, HaversineKM(kigaliLat, kigaliLon, kigaliLat, kigaliLon), 1e-9)
}

func TestTravelTimeHours(t *testing.T) {
	// 45 km at the assumed 45 km/h average is one hour.
	assert.InDelta(t, 1.0, TravelTimeHours(45), 1e-9)
	assert.InDelta(t, 2.0, TravelTimeHours(90), 1e-9)
}
