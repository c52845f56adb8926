package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/config"
	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/llm"
	"github.com/clicktorwanda/backend/internal/utils"
)

const chatSystemPrompt = `You are ClickToRwanda's travel planning assistant. You help travelers plan
trips across Rwanda: national parks, gorilla trekking, lake Kivu, Kigali city
experiences, hotels, activities and transfers. Answer questions about Rwandan
destinations, suggest day-by-day itineraries, and help estimate costs. Keep
answers practical and concise. If asked about topics unrelated to travel in
Rwanda, politely steer the conversation back to trip planning.`

const chatMessageMaxLen = 5000

// injectionPatterns blocks the obvious attempts to override the system
// prompt. Matching is case-insensitive against each user message.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+(instructions|prompts?)`),
	regexp.MustCompile(`(?i)disregard\s+(your|the)\s+(instructions|system\s+prompt)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an)\s`),
	regexp.MustCompile(`(?i)reveal\s+(your|the)\s+(system\s+)?prompt`),
	regexp.MustCompile(`(?i)act\s+as\s+(a\s+)?(jailbroken|dan|unrestricted)`),
	regexp.MustCompile(`(?i)pretend\s+(you\s+have\s+)?no\s+(rules|restrictions|guidelines)`),
}

// GuardChatMessage returns a non-nil error if the message fails the length
// cap or matches an injection pattern.
func GuardChatMessage(content string) error {
	if len(content) > chatMessageMaxLen {
		return fmt.Errorf("message exceeds %d characters", chatMessageMaxLen)
	}
	for _, re := range injectionPatterns {
		if re.MatchString(content) {
			return errors.New("message rejected by content filter")
		}
	}
	return nil
}

// ChatHandler proxies the AI planner conversation to the LLM gateway
type ChatHandler struct {
	llm    *llm.Client
	config *config.Config
	logger zerolog.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(client *llm.Client, cfg *config.Config, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{llm: client, config: cfg, logger: logger.With().Str("component", "chat").Logger()}
}

// Chat handles POST /api/ai/chat
// @Summary Stream a travel-planning chat completion
// @Description Proxies the conversation to the LLM gateway with a fixed system prompt and streams the answer back as server-sent events. Rate limited to 20 requests per minute per user.
// @Tags ai
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param payload body dto.ChatRequest true "Conversation so far"
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/ai/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ChatRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if len(req.Messages) == 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "messages must not be empty")
		return
	}

	messages := make([]llm.Message, 0, len(req.Messages)+1)
	messages = append(messages, llm.Message{Role: "system", Content: chatSystemPrompt})
	for _, m := range req.Messages {
		if m.Role != "user" && m.Role != "assistant" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "role must be user or assistant")
			return
		}
		if m.Role == "user" {
			if err := GuardChatMessage(m.Content); err != nil {
				utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
				return
			}
		}
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported", "response writer does not support flushing")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	started := false
	err := h.llm.StreamChat(r.Context(), h.config.LLM.ChatModel, messages, func(delta string) error {
		payload, merr := json.Marshal(map[string]string{"content": delta})
		if merr != nil {
			return merr
		}
		if _, werr := fmt.Fprintf(w, "data: %s\n\n", payload); werr != nil {
			return werr
		}
		flusher.Flush()
		started = true
		return nil
	})
	if err != nil {
		// Headers are gone once the first chunk flushed; only the error on
		// an unstarted stream can use the usual envelope.
		if !started {
			if errors.Is(err, llm.ErrQuotaExhausted) {
				utils.WriteErrorResponse(w, http.StatusPaymentRequired, "Credits exhausted", "The AI planner has run out of credits. Please try again later.")
				return
			}
			utils.WriteErrorResponse(w, http.StatusBadGateway, "AI gateway error", err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("chat stream interrupted")
		return
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
