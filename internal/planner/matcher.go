// Package planner holds the itinerary-construction pipeline: catalog
// matching for document/chat imports, sequential date assignment, the
// drag-and-drop date permutation, cost aggregation, and geo helpers.
// Everything here is pure; persistence stays in the handlers.
package planner

import (
	"strings"
	"time"

	"github.com/clicktorwanda/backend/internal/models"
)

// DayGuess is one extracted free-text day description from a document or
// chat conversation.
type DayGuess struct {
	Destination string
	Hotel       string
	Activity    string
	Notes       string
}

// MatchedDay is a day guess resolved against the catalogs and dated.
type MatchedDay struct {
	Date          time.Time
	DestinationID string
	HotelID       *string
	ActivityID    *string
	Notes         string
}

// Catalog bundles the reference tables the matcher resolves against.
type Catalog struct {
	Destinations []models.Destination
	Hotels       []models.Hotel
	Activities   []models.Activity
}

// MatchResult separates resolved days from inputs that had no catalog
// destination; skipped days are reported by their original text.
type MatchResult struct {
	Days    []MatchedDay
	Skipped []string
}

// textMatches is the catalog matching rule: case-insensitive containment in
// either direction. First catalog entry that matches wins.
func textMatches(guess, name string) bool {
	g := strings.ToLower(strings.TrimSpace(guess))
	n := strings.ToLower(strings.TrimSpace(name))
	if g == "" || n == "" {
		return false
	}
	return strings.Contains(n, g) || strings.Contains(g, n)
}

func matchDestination(guess string, destinations []models.Destination) (string, bool) {
	for _, d := range destinations {
		if textMatches(guess, d.Name) {
			return d.ID, true
		}
	}
	return "", false
}

func matchHotel(guess, destinationID string, hotels []models.Hotel) *string {
	if strings.TrimSpace(guess) == "" {
		return nil
	}
	for _, h := range hotels {
		if h.DestinationID == destinationID && textMatches(guess, h.Name) {
			id := h.ID
			return &id
		}
	}
	return nil
}

func matchActivity(guess, destinationID string, activities []models.Activity) *string {
	if strings.TrimSpace(guess) == "" {
		return nil
	}
	for _, a := range activities {
		if a.DestinationID == destinationID && textMatches(guess, a.Name) {
			id := a.ID
			return &id
		}
	}
	return nil
}

// NextStartDate picks the date of the first imported day: one day after the
// itinerary's current maximum date, or today when the itinerary is empty.
func NextStartDate(maxExisting *time.Time, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if maxExisting == nil {
		return today
	}
	m := *maxExisting
	return time.Date(m.Year(), m.Month(), m.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// Match resolves extracted day guesses against the catalogs and assigns
// sequential dates starting at start. A guess whose destination matches no
// catalog name is skipped; matched days keep their input order, so day k of
// the result is dated start+k. Hotel and activity matching is scoped to the
// matched destination and optional.
func Match(guesses []DayGuess, catalog Catalog, start time.Time) MatchResult {
	var result MatchResult
	for _, g := range guesses {
		destID, ok := matchDestination(g.Destination, catalog.Destinations)
		if !ok {
			result.Skipped = append(result.Skipped, g.Destination)
			continue
		}
		day := MatchedDay{
			Date:          start.AddDate(0, 0, len(result.Days)),
			DestinationID: destID,
			HotelID:       matchHotel(g.Hotel, destID, catalog.Hotels),
			ActivityID:    matchActivity(g.Activity, destID, catalog.Activities),
			Notes:         g.Notes,
		}
		result.Days = append(result.Days, day)
	}
	return result
}
