package dto

// CreateConversationRequest opens a new support thread
type CreateConversationRequest struct {
	Subject string `json:"subject"`
}

// ConversationResponse represents a conversation in responses
type ConversationResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	StaffID   *string `json:"staff_id"`
	Subject   string  `json:"subject"`
	CreatedAt string  `json:"created_at"`
}

// ConversationListResponse envelope
type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

// SendMessageRequest posts one message into a thread
type SendMessageRequest struct {
	Body string `json:"body"`
}

// MessageResponse represents a message in responses
type MessageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	Read           bool   `json:"read"`
	CreatedAt      string `json:"created_at"`
}

// MessageListResponse envelope
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}
