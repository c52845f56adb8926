package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clicktorwanda/backend/internal/models"
)

// DateChange is one row whose calendar date moves during a reorder.
type DateChange struct {
	DayID   uuid.UUID
	NewDate time.Time
}

// PermuteDates computes the date reassignments for a drag-and-drop reorder.
//
// The visual list is the itinerary sorted by date; orderedIDs is that list
// after the user's move. Position p of the new order receives the date that
// belonged to position p before the move, so row identities keep their other
// fields while dates are permuted across rows. The multiset of dates is
// therefore unchanged, and reordering an already-sorted list yields no
// changes at all.
func PermuteDates(orderedIDs []uuid.UUID, days []models.ItineraryDay) ([]DateChange, error) {
	if len(orderedIDs) != len(days) {
		return nil, fmt.Errorf("order has %d ids, itinerary has %d days", len(orderedIDs), len(days))
	}

	byID := make(map[uuid.UUID]models.ItineraryDay, len(days))
	for _, d := range days {
		byID[d.ID] = d
	}

	sorted := make([]models.ItineraryDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	changes := make([]DateChange, 0)
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for pos, id := range orderedIDs {
		day, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown day id %s", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate day id %s", id)
		}
		seen[id] = true

		slotDate := sorted[pos].Date
		if !day.Date.Equal(slotDate) {
			changes = append(changes, DateChange{DayID: id, NewDate: slotDate})
		}
	}
	return changes, nil
}
