package models

import (
	"time"

	"github.com/google/uuid"
)

// Day types
const (
	DayTypeRegular  = "regular"
	DayTypeTransfer = "transfer"
)

// ItineraryDay is one calendar day of a user's trip plan.
// The UI expects exactly one row per (user_id, date).
type ItineraryDay struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            uuid.UUID `json:"user_id" db:"user_id"`
	Date              time.Time `json:"date" db:"date"`
	DayType           string    `json:"day_type" db:"day_type"`
	DestinationID     string    `json:"destination_id" db:"destination_id"`
	OriginID          *string   `json:"origin_id" db:"origin_id"` // transfer days only
	HotelID           *string   `json:"hotel_id" db:"hotel_id"`
	ActivityID        *string   `json:"activity_id" db:"activity_id"`
	CarID             *string   `json:"car_id" db:"car_id"`
	HotelBooked       bool      `json:"hotel_booked" db:"hotel_booked"`
	ActivityBooked    bool      `json:"activity_booked" db:"activity_booked"`
	HotelCost         *float64  `json:"hotel_cost" db:"hotel_cost"`
	ActivityCost      *float64  `json:"activity_cost" db:"activity_cost"`
	CarCost           *float64  `json:"car_cost" db:"car_cost"`
	TransportCost     *float64  `json:"transport_cost" db:"transport_cost"`
	OtherCost         *float64  `json:"other_cost" db:"other_cost"`
	Notes             string    `json:"notes" db:"notes"`
	WakeTime          *string   `json:"wake_time" db:"wake_time"` // HH:MM
	BreakfastTime     *string   `json:"breakfast_time" db:"breakfast_time"`
	LunchTime         *string   `json:"lunch_time" db:"lunch_time"`
	DinnerTime        *string   `json:"dinner_time" db:"dinner_time"`
	HotelConfirmed    bool      `json:"hotel_confirmed" db:"hotel_confirmed"`
	ActivityConfirmed bool      `json:"activity_confirmed" db:"activity_confirmed"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
