package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subscription statuses
const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
)

// FreeTierNationality activates without a payment reference.
const FreeTierNationality = "rwandan"

// Subscription is the one-per-user paywall row, upserted on activation.
type Subscription struct {
	ID               uuid.UUID `json:"id" db:"id"`
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	Status           string    `json:"status" db:"status"`
	Amount           float64   `json:"amount" db:"amount"`
	PaymentReference string    `json:"payment_reference" db:"payment_reference"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// HasActiveSubscription is the paywall gate: admins always pass, everyone
// else needs an active subscription row.
func HasActiveSubscription(isAdmin bool, sub *Subscription) bool {
	if isAdmin {
		return true
	}
	return sub != nil && sub.Status == SubscriptionActive
}

// ShouldActivateFreeTier reports whether a paywall check must auto-activate
// the caller: locals get the free tier the first time the gate would
// otherwise reject them.
func ShouldActivateFreeTier(nationality string, isAdmin bool, sub *Subscription) bool {
	if HasActiveSubscription(isAdmin, sub) {
		return false
	}
	return strings.EqualFold(nationality, FreeTierNationality)
}
