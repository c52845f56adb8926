package dto

// CreateDayRequest represents the payload to create an itinerary day
type CreateDayRequest struct {
	Date          string   `json:"date"` // ISO 8601: YYYY-MM-DD or RFC3339
	DayType       string   `json:"day_type"`
	DestinationID string   `json:"destination_id"`
	OriginID      *string  `json:"origin_id,omitempty"`
	HotelID       *string  `json:"hotel_id,omitempty"`
	ActivityID    *string  `json:"activity_id,omitempty"`
	CarID         *string  `json:"car_id,omitempty"`
	Notes         string   `json:"notes"`
	HotelCost     *float64 `json:"hotel_cost,omitempty"`
	ActivityCost  *float64 `json:"activity_cost,omitempty"`
	CarCost       *float64 `json:"car_cost,omitempty"`
	TransportCost *float64 `json:"transport_cost,omitempty"`
	OtherCost     *float64 `json:"other_cost,omitempty"`
}

// UpdateDayRequest represents fields allowed to update on a day.
// All fields are optional; only provided ones will be updated.
type UpdateDayRequest struct {
	DayType           *string  `json:"day_type"`
	DestinationID     *string  `json:"destination_id"`
	OriginID          *string  `json:"origin_id"`
	HotelID           *string  `json:"hotel_id"`
	ActivityID        *string  `json:"activity_id"`
	CarID             *string  `json:"car_id"`
	HotelBooked       *bool    `json:"hotel_booked"`
	ActivityBooked    *bool    `json:"activity_booked"`
	HotelCost         *float64 `json:"hotel_cost"`
	ActivityCost      *float64 `json:"activity_cost"`
	CarCost           *float64 `json:"car_cost"`
	TransportCost     *float64 `json:"transport_cost"`
	OtherCost         *float64 `json:"other_cost"`
	Notes             *string  `json:"notes"`
	WakeTime          *string  `json:"wake_time"`
	BreakfastTime     *string  `json:"breakfast_time"`
	LunchTime         *string  `json:"lunch_time"`
	DinnerTime        *string  `json:"dinner_time"`
	HotelConfirmed    *bool    `json:"hotel_confirmed"`
	ActivityConfirmed *bool    `json:"activity_confirmed"`
}

// DayResponse represents an itinerary day in responses
type DayResponse struct {
	ID                string   `json:"id"`
	Date              string   `json:"date"`
	DayType           string   `json:"day_type"`
	DestinationID     string   `json:"destination_id"`
	OriginID          *string  `json:"origin_id"`
	HotelID           *string  `json:"hotel_id"`
	ActivityID        *string  `json:"activity_id"`
	CarID             *string  `json:"car_id"`
	HotelBooked       bool     `json:"hotel_booked"`
	ActivityBooked    bool     `json:"activity_booked"`
	HotelCost         *float64 `json:"hotel_cost"`
	ActivityCost      *float64 `json:"activity_cost"`
	CarCost           *float64 `json:"car_cost"`
	TransportCost     *float64 `json:"transport_cost"`
	OtherCost         *float64 `json:"other_cost"`
	Notes             string   `json:"notes"`
	WakeTime          *string  `json:"wake_time"`
	BreakfastTime     *string  `json:"breakfast_time"`
	LunchTime         *string  `json:"lunch_time"`
	DinnerTime        *string  `json:"dinner_time"`
	HotelConfirmed    bool     `json:"hotel_confirmed"`
	ActivityConfirmed bool     `json:"activity_confirmed"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// ItinerarySummary is the cost/progress aggregation recomputed per fetch
type ItinerarySummary struct {
	HotelTotal        float64 `json:"hotel_total"`
	ActivityTotal     float64 `json:"activity_total"`
	CarTotal          float64 `json:"car_total"`
	TransportTotal    float64 `json:"transport_total"`
	OtherTotal        float64 `json:"other_total"`
	GrandTotal        float64 `json:"grand_total"`
	HotelBookedPct    float64 `json:"hotel_booked_pct"`
	ActivityBookedPct float64 `json:"activity_booked_pct"`
	CostEnteredPct    float64 `json:"cost_entered_pct"`
}

// ItineraryResponse envelope
type ItineraryResponse struct {
	Days    []DayResponse    `json:"days"`
	Summary ItinerarySummary `json:"summary"`
}

// CreateDayResponse envelope
type CreateDayResponse struct {
	Day DayResponse `json:"day"`
}

// ReorderRequest carries the full day-ID list in the desired visual order
type ReorderRequest struct {
	DayIDs []string `json:"day_ids"`
}

// ReorderResponse reports how many rows had their date reassigned
type ReorderResponse struct {
	Updated int `json:"updated"`
}

// ImportDayGuess is one extracted free-text day description
type ImportDayGuess struct {
	Destination string `json:"destination"`
	Hotel       string `json:"hotel,omitempty"`
	Activity    string `json:"activity,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ImportRequest carries extracted day guesses for catalog matching
type ImportRequest struct {
	Days []ImportDayGuess `json:"days"`
}

// ImportResponse reports inserted rows and skipped inputs
type ImportResponse struct {
	Inserted []DayResponse `json:"inserted"`
	Skipped  []string      `json:"skipped"` // destination texts with no catalog match
}

// TransferInfoResponse is the transfer-day distance/time estimate
type TransferInfoResponse struct {
	OriginID        string  `json:"origin_id"`
	DestinationID   string  `json:"destination_id"`
	DistanceKM      float64 `json:"distance_km"`
	TravelTimeHours float64 `json:"travel_time_hours"`
}
