package planner

import "github.com/clicktorwanda/backend/internal/models"

// Summary is the cost/progress aggregation shown on the itinerary page.
// Recomputed from the fetched list on every request; never persisted.
type Summary struct {
	HotelTotal        float64
	ActivityTotal     float64
	CarTotal          float64
	TransportTotal    float64
	OtherTotal        float64
	GrandTotal        float64
	HotelBookedPct    float64
	ActivityBookedPct float64
	CostEnteredPct    float64
}

func costOf(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Summarize reduces the itinerary into cost totals and booking progress.
// Nil cost fields count as zero; percentages are over the day count.
func Summarize(days []models.ItineraryDay) Summary {
	var s Summary
	if len(days) == 0 {
		return s
	}

	hotelBooked, activityBooked, costEntered := 0, 0, 0
	for _, d := range days {
		hc := costOf(d.HotelCost)
		ac := costOf(d.ActivityCost)
		cc := costOf(d.CarCost)
		tc := costOf(d.TransportCost)
		oc := costOf(d.OtherCost)

		s.HotelTotal += hc
		s.ActivityTotal += ac
		s.CarTotal += cc
		s.TransportTotal += tc
		s.OtherTotal += oc

		if d.HotelBooked {
			hotelBooked++
		}
		if d.ActivityBooked {
			activityBooked++
		}
		if hc != 0 || ac != 0 || cc != 0 || tc != 0 || oc != 0 {
			costEntered++
		}
	}

	s.GrandTotal = s.HotelTotal + s.ActivityTotal + s.CarTotal + s.TransportTotal + s.OtherTotal
	n := float64(len(days))
	s.HotelBookedPct = 100 * float64(hotelBooked) / n
	s.ActivityBookedPct = 100 * float64(activityBooked) / n
	s.CostEnteredPct = 100 * float64(costEntered) / n
	return s
}
