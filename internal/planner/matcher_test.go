package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clicktorwanda/backend/internal/models"
)

func testCatalog() Catalog {
	return Catalog{
		Destinations: []models.Destination{
			{ID: "volcanoes", Name: "Volcanoes"},
			{ID: "lake-kivu", Name: "Lake Kivu"},
			{ID: "nyungwe", Name: "Nyungwe Forest National Park"},
		},
		Hotels: []models.Hotel{
			{ID: "bisate-lodge", Name: "Bisate Lodge", DestinationID: "volcanoes"},
			{ID: "kivu-serena", Name: "Lake Kivu Serena Hotel", DestinationID: "lake-kivu"},
		},
		Activities: []models.Activity{
			{ID: "gorilla-trek", Name: "Gorilla Trekking", DestinationID: "volcanoes"},
			{ID: "canopy-walk", Name: "Canopy Walkway", DestinationID: "nyungwe"},
		},
	}
}

func TestMatchDestinationSubstring(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		guess   string
		wantID  string
		matched bool
	}{
		{"guess contains catalog name", "Volcanoes National Park", "volcanoes", true},
		{"catalog name contains guess", "Nyungwe", "nyungwe", true},
		{"case insensitive", "lake KIVU", "lake-kivu", true},
		{"no match", "UnknownPlace", "", false},
		{"empty guess", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Match([]DayGuess{{Destination: tt.guess}}, testCatalog(), start)
			if tt.matched {
				require.Len(t, result.Days, 1)
				assert.Empty(t, result.Skipped)
				assert.Equal(t, tt.wantID, result.Days[0].DestinationID)
			} else {
				assert.Empty(t, result.Days)
				require.Len(t, result.Skipped, 1)
				assert.Equal(t, tt.guess, result.Skipped[0])
			}
		})
	}
}

func TestMatchHotelActivityScopedToDestination(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	result := Match([]DayGuess{
		{Destination: "Volcanoes", Hotel: "Bisate", Activity: "gorilla"},
		// Bisate belongs to volcanoes, not lake-kivu: no hotel match here.
		{Destination: "Lake Kivu", Hotel: "Bisate"},
	}, testCatalog(), start)

	require.Len(t, result.Days, 2)

	require.NotNil(t, result.Days[0].HotelID)
	assert.Equal(t, "bisate-lodge", *result.Days[0].HotelID)
	require.NotNil(t, result.Days[0].ActivityID)
	assert.Equal(t, "gorilla-trek", *result.Days[0].ActivityID)

	assert.Nil(t, result.Days[1].HotelID)
	assert.Nil(t, result.Days[1].ActivityID)
}

func TestMatchSequentialDates(t *testing.T) {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	result := Match([]DayGuess{
		{Destination: "Volcanoes"},
		{Destination: "UnknownPlace"}, // skipped, must not consume a date
		{Destination: "Nyungwe"},
		{Destination: "Lake Kivu"},
	}, testCatalog(), start)

	require.Len(t, result.Days, 3)
	require.Len(t, result.Skipped, 1)
	for k, day := range result.Days {
		assert.Equal(t, start.AddDate(0, 0, k), day.Date, "day %d", k)
	}
}

func TestNextStartDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

	t.Run("empty itinerary starts today", func(t *testing.T) {
		got := NextStartDate(nil, now)
		assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("continues one day after max", func(t *testing.T) {
		max := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
		got := NextStartDate(&max, now)
		assert.Equal(t, time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), got)
	})
}

// End-to-end shape from the document-import flow: one match, one silent skip.
func TestMatchImportScenario(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	result := Match([]DayGuess{
		{Destination: "Volcanoes National Park"},
		{Destination: "UnknownPlace"},
	}, testCatalog(), start)

	require.Len(t, result.Days, 1)
	assert.Equal(t, "volcanoes", result.Days[0].DestinationID)
	assert.Equal(t, []string{"UnknownPlace"}, result.Skipped)
}
