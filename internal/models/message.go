package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party thread between a traveler and staff.
type Conversation struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	StaffID   *uuid.UUID `json:"staff_id" db:"staff_id"`
	Subject   string     `json:"subject" db:"subject"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// Message is one entry in a conversation thread.
type Message struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ConversationID uuid.UUID `json:"conversation_id" db:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id" db:"sender_id"`
	Body           string    `json:"body" db:"body"`
	Read           bool      `json:"read" db:"read"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
