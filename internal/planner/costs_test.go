package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clicktorwanda/backend/internal/models"
)

func f(v float64) *float64 { return &v }

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.GrandTotal)
	assert.Zero(t, s.HotelBookedPct)
	assert.Zero(t, s.CostEnteredPct)
}

func TestSummarizeGrandTotal(t *testing.T) {
	days := []models.ItineraryDay{
		{HotelCost: f(100), ActivityCost: f(50), CarCost: f(30), TransportCost: f(20), OtherCost: f(10)},
		{HotelCost: f(200), ActivityCost: nil, CarCost: nil, TransportCost: nil, OtherCost: nil},
		{}, // all nil counts as zero
	}

	s := Summarize(days)
	assert.Equal(t, 300.0, s.HotelTotal)
	assert.Equal(t, 50.0, s.ActivityTotal)
	assert.Equal(t, 30.0, s.CarTotal)
	assert.Equal(t, 20.0, s.TransportTotal)
	assert.Equal(t, 10.0, s.OtherTotal)
	assert.Equal(t, 410.0, s.GrandTotal)
	assert.Equal(t, s.HotelTotal+s.ActivityTotal+s.CarTotal+s.TransportTotal+s.OtherTotal, s.GrandTotal)
}

func TestSummarizeProgress(t *testing.T) {
	days := []models.ItineraryDay{
		{HotelBooked: true, ActivityBooked: true, HotelCost: f(100)},
		{HotelBooked: true},
		{},
		{OtherCost: f(5)},
	}

	s := Summarize(days)
	assert.InDelta(t, 50.0, s.HotelBookedPct, 1e-9)
	assert.InDelta(t, 25.0, s.ActivityBookedPct, 1e-9)
	assert.InDelta(t, 50.0, s.CostEnteredPct, 1e-9)
}
