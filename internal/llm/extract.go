package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const extractSystemPrompt = `You read travel documents and extract a day-by-day itinerary.
Respond with a JSON object of the form:
{"days":[{"destination":"...","hotel":"...","activity":"...","notes":"..."}]}
Use one entry per planned day, in order. Leave hotel, activity, and notes
empty when the document does not mention them. Destination names should be
copied as written in the document.`

// ExtractedDay is one day guess parsed out of an uploaded document. The
// itinerary import matcher resolves these against the catalogs.
type ExtractedDay struct {
	Destination string `json:"destination"`
	Hotel       string `json:"hotel"`
	Activity    string `json:"activity"`
	Notes       string `json:"notes"`
}

type extractEnvelope struct {
	Days []ExtractedDay `json:"days"`
}

// ExtractItinerary parses an uploaded document into day guesses. Exactly one
// of imageDataURL or text should be set; images go through the vision model.
func (c *Client) ExtractItinerary(ctx context.Context, imageDataURL, text string) ([]ExtractedDay, error) {
	var userMsg Message
	model := c.cfg.ChatModel
	if imageDataURL != "" {
		model = c.cfg.VisionModel
		userMsg = Message{Role: "user", Content: []ContentPart{
			{Type: "text", Text: "Extract the itinerary from this document."},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageDataURL}},
		}}
	} else {
		userMsg = Message{Role: "user", Content: "Extract the itinerary from this document:\n\n" + text}
	}

	content, err := c.Complete(ctx, model, []Message{
		{Role: "system", Content: extractSystemPrompt},
		userMsg,
	}, true)
	if err != nil {
		return nil, err
	}

	// Some gateways wrap JSON mode output in fences anyway.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var envelope extractEnvelope
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &envelope); err != nil {
		return nil, fmt.Errorf("parsing extraction output: %w", err)
	}
	return envelope.Days, nil
}
