package dto

// SOSRequest is the panic-button payload
type SOSRequest struct {
	FullName     string  `json:"full_name"`
	Phone        string  `json:"phone"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Message      string  `json:"message"`
	VoiceNoteURL *string `json:"voice_note_url,omitempty"`
}

// SOSResponse represents an SOS alert row in responses
type SOSResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	FullName     string  `json:"full_name"`
	Phone        string  `json:"phone"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Message      string  `json:"message"`
	VoiceNoteURL *string `json:"voice_note_url"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	ResolvedAt   *string `json:"resolved_at"`
}

// SOSListResponse envelope for the staff list view
type SOSListResponse struct {
	Alerts []SOSResponse `json:"alerts"`
}
