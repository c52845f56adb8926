package models

// Destination is one catalog entry travelers can plan days around.
// IDs are human-readable slugs ("volcanoes-national-park").
type Destination struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description" db:"description"`
	Region      string   `json:"region" db:"region"`
	Latitude    *float64 `json:"latitude" db:"latitude"`
	Longitude   *float64 `json:"longitude" db:"longitude"`
}

// Hotel is an operator-run lodging option tied to a destination.
type Hotel struct {
	ID            string   `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	DestinationID string   `json:"destination_id" db:"destination_id"`
	PriceBand     string   `json:"price_band" db:"price_band"`
	Latitude      *float64 `json:"latitude" db:"latitude"`
	Longitude     *float64 `json:"longitude" db:"longitude"`
	BookingURL    string   `json:"booking_url" db:"booking_url"`
}

// Activity is a bookable experience tied to a destination.
type Activity struct {
	ID            string  `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	DestinationID string  `json:"destination_id" db:"destination_id"`
	DurationHours float64 `json:"duration_hours" db:"duration_hours"`
	BookingURL    string  `json:"booking_url" db:"booking_url"`
}

// Car is a rental vehicle offered by an external operator.
type Car struct {
	ID         string  `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	Operator   string  `json:"operator" db:"operator"`
	Seats      int     `json:"seats" db:"seats"`
	DailyRate  float64 `json:"daily_rate" db:"daily_rate"`
	BookingURL string  `json:"booking_url" db:"booking_url"`
}
