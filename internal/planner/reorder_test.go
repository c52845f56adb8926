package planner

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clicktorwanda/backend/internal/models"
)

func makeDays(n int) []models.ItineraryDay {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	days := make([]models.ItineraryDay, n)
	for i := range days {
		days[i] = models.ItineraryDay{
			ID:   uuid.New(),
			Date: base.AddDate(0, 0, i),
		}
	}
	return days
}

func idsOf(days []models.ItineraryDay) []uuid.UUID {
	ids := make([]uuid.UUID, len(days))
	for i, d := range days {
		ids[i] = d.ID
	}
	return ids
}

func TestPermuteDatesNoopOnSortedOrder(t *testing.T) {
	days := makeDays(5)

	changes, err := PermuteDates(idsOf(days), days)
	require.NoError(t, err)
	assert.Empty(t, changes, "reordering to the same order must fire no date mutations")
}

func TestPermuteDatesMoveSwapsDates(t *testing.T) {
	days := makeDays(4)

	// Move index 0 to index 2: [a b c d] -> [b c a d]
	order := []uuid.UUID{days[1].ID, days[2].ID, days[0].ID, days[3].ID}
	changes, err := PermuteDates(order, days)
	require.NoError(t, err)
	require.Len(t, changes, 3)

	byID := map[uuid.UUID]time.Time{}
	for _, c := range changes {
		byID[c.DayID] = c.NewDate
	}
	assert.Equal(t, days[0].Date, byID[days[1].ID])
	assert.Equal(t, days[1].Date, byID[days[2].ID])
	assert.Equal(t, days[2].Date, byID[days[0].ID])
	_, touched := byID[days[3].ID]
	assert.False(t, touched, "unmoved tail row keeps its date")
}

// Dates are permuted across rows, never created or destroyed.
func TestPermuteDatesPreservesDateMultiset(t *testing.T) {
	days := makeDays(6)

	order := []uuid.UUID{
		days[3].ID, days[0].ID, days[5].ID,
		days[1].ID, days[4].ID, days[2].ID,
	}
	changes, err := PermuteDates(order, days)
	require.NoError(t, err)

	finalDates := map[uuid.UUID]time.Time{}
	for _, d := range days {
		finalDates[d.ID] = d.Date
	}
	for _, c := range changes {
		finalDates[c.DayID] = c.NewDate
	}

	var before, after []string
	for _, d := range days {
		before = append(before, d.Date.Format("2006-01-02"))
	}
	for _, dt := range finalDates {
		after = append(after, dt.Format("2006-01-02"))
	}
	sort.Strings(before)
	sort.Strings(after)
	assert.Equal(t, before, after)
}

func TestPermuteDatesRejectsBadInput(t *testing.T) {
	days := makeDays(3)

	t.Run("length mismatch", func(t *testing.T) {
		_, err := PermuteDates(idsOf(days)[:2], days)
		assert.Error(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		order := idsOf(days)
		order[1] = uuid.New()
		_, err := PermuteDates(order, days)
		assert.Error(t, err)
	})

	t.Run("duplicate id", func(t *testing.T) {
		order := idsOf(days)
		order[2] = order[0]
		_, err := PermuteDates(order, days)
		assert.Error(t, err)
	})
}
