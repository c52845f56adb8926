// Package llm is a minimal client for an OpenAI-compatible chat-completions
// gateway: streaming chat for the AI planner and a JSON-mode vision call for
// document extraction.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/config"
)

// ErrQuotaExhausted maps the gateway's 402 response; handlers translate it
// to a user-facing "credits exhausted" message.
var ErrQuotaExhausted = errors.New("llm gateway quota exhausted")

// Message is one chat turn sent to the gateway.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string, or content parts for vision
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"` // text | image_url
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps a data URL or remote image reference.
type ImageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Stream         bool            `json:"stream,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Client talks to the configured gateway.
type Client struct {
	cfg    *config.LLMConfig
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a gateway client.
func NewClient(cfg *config.LLMConfig, logger zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("component", "llm").Logger(),
	}
}

func (c *Client) post(ctx context.Context, body chatRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusPaymentRequired {
		resp.Body.Close()
		return nil, ErrQuotaExhausted
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("llm gateway returned %d: %s", resp.StatusCode, string(msg))
	}
	return resp, nil
}

// StreamChat runs a streaming completion and calls onDelta for each content
// fragment as it arrives. The callback returning an error stops the stream.
func (c *Client) StreamChat(ctx context.Context, model string, messages []Message, onDelta func(delta string) error) error {
	resp, err := c.post(ctx, chatRequest{Model: model, Messages: messages, Stream: true})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			c.logger.Warn().Err(err).Msg("skipping malformed stream chunk")
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := onDelta(chunk.Choices[0].Delta.Content); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Complete runs a non-streaming completion and returns the full content.
// jsonMode asks the gateway for a JSON object response.
func (c *Client) Complete(ctx context.Context, model string, messages []Message, jsonMode bool) (string, error) {
	req := chatRequest{Model: model, Messages: messages}
	if jsonMode {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	resp, err := c.post(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding llm response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("llm response had no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
