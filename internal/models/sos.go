package models

import (
	"time"

	"github.com/google/uuid"
)

// SOS alert statuses
const (
	SOSPending  = "pending"
	SOSResolved = "resolved"
)

// SOSAlert is an emergency record created by the traveler-facing panic
// button. Only staff move it to resolved.
type SOSAlert struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	FullName     string     `json:"full_name" db:"full_name"`
	Phone        string     `json:"phone" db:"phone"`
	Latitude     float64    `json:"latitude" db:"latitude"`
	Longitude    float64    `json:"longitude" db:"longitude"`
	Message      string     `json:"message" db:"message"`
	VoiceNoteURL *string    `json:"voice_note_url" db:"voice_note_url"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at" db:"resolved_at"`
}
