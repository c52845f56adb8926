package dto

// SubscriptionRequest is the action dispatcher payload for /api/subscription
type SubscriptionRequest struct {
	Action           string   `json:"action"` // check | activate | staff_update | staff_delete | staff_create
	PaymentReference string   `json:"payment_reference,omitempty"`
	Amount           *float64 `json:"amount,omitempty"`
	// Staff actions target another user's row
	TargetUserID string `json:"target_user_id,omitempty"`
	Status       string `json:"status,omitempty"`
}

// SubscriptionResponse represents a subscription row in responses
type SubscriptionResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	Status           string  `json:"status"`
	Amount           float64 `json:"amount"`
	PaymentReference string  `json:"payment_reference"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// SubscriptionCheckResponse is the paywall gate answer
type SubscriptionCheckResponse struct {
	HasActiveSubscription bool                  `json:"has_active_subscription"`
	Subscription          *SubscriptionResponse `json:"subscription,omitempty"`
}
