package dto

// ChatMessage is one turn of the AI planner conversation
type ChatMessage struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

// ChatRequest is the /api/ai/chat payload
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ExtractRequest carries an uploaded document for itinerary extraction.
// Exactly one of ImageDataURL or Text must be set.
type ExtractRequest struct {
	ImageDataURL string `json:"image_data_url,omitempty"`
	Text         string `json:"text,omitempty"`
}

// ExtractResponse is the day-guess array consumed by /api/itinerary/import
type ExtractResponse struct {
	Days []ImportDayGuess `json:"days"`
}
