package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/realtime"
	"github.com/clicktorwanda/backend/internal/utils"
)

const messageBodyMaxLen = 4000

// MessagesHandler handles support conversations between travelers and staff
type MessagesHandler struct {
	db     *pgxpool.Pool
	hub    *realtime.Hub
	logger zerolog.Logger
}

// NewMessagesHandler creates a new MessagesHandler
func NewMessagesHandler(db *pgxpool.Pool, hub *realtime.Hub, logger zerolog.Logger) *MessagesHandler {
	return &MessagesHandler{db: db, hub: hub, logger: logger.With().Str("component", "messages").Logger()}
}

func conversationToResponse(c *models.Conversation) dto.ConversationResponse {
	resp := dto.ConversationResponse{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		Subject:   c.Subject,
		CreatedAt: utils.FormatTimestamp(c.CreatedAt),
	}
	if c.StaffID != nil {
		s := c.StaffID.String()
		resp.StaffID = &s
	}
	return resp
}

func messageToResponse(m *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:             m.ID.String(),
		ConversationID: m.ConversationID.String(),
		SenderID:       m.SenderID.String(),
		Body:           m.Body,
		Read:           m.Read,
		CreatedAt:      utils.FormatTimestamp(m.CreatedAt),
	}
}

// Conversations handles /api/conversations
// @Summary Create or list support conversations
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ConversationListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/conversations [get]
func (h *MessagesHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createConversation(w, r)
	case http.MethodGet:
		h.listConversations(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *MessagesHandler) createConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateConversationRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "subject is required")
		return
	}

	conv := models.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Subject:   req.Subject,
		CreatedAt: time.Now(),
	}
	_, err := h.db.Exec(context.Background(),
		`INSERT INTO conversations (id, user_id, subject, created_at) VALUES ($1, $2, $3, $4)`,
		conv.ID, conv.UserID, conv.Subject, conv.CreatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, conversationToResponse(&conv))
}

func (h *MessagesHandler) listConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	// Staff see every thread so they can pick up unassigned ones.
	query := `SELECT id, user_id, staff_id, subject, created_at FROM conversations WHERE user_id = $1 ORDER BY created_at DESC`
	args := []any{userID}
	if role == models.RoleStaff || role == models.RoleAdmin {
		query = `SELECT id, user_id, staff_id, subject, created_at FROM conversations ORDER BY created_at DESC`
		args = nil
	}

	rows, err := h.db.Query(context.Background(), query, args...)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	conversations := make([]dto.ConversationResponse, 0)
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.StaffID, &c.Subject, &c.CreatedAt); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		conversations = append(conversations, conversationToResponse(&c))
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ConversationListResponse{Conversations: conversations})
}

// Messages handles /api/conversations/{id}/messages
// @Summary List or send messages in a conversation
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {object} dto.MessageListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/conversations/{conversation_id}/messages [get]
func (h *MessagesHandler) Messages(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/conversations/"), "/messages")
	convID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid conversation id", "conversation_id must be UUID")
		return
	}

	conv, err := h.loadConversation(convID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Conversation does not exist")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	isStaff := role == models.RoleStaff || role == models.RoleAdmin
	if conv.UserID != userID && !isStaff {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Not a participant of this conversation")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.listMessages(w, conv)
	case http.MethodPost:
		h.sendMessage(w, r, conv, userID, isStaff)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *MessagesHandler) loadConversation(id uuid.UUID) (*models.Conversation, error) {
	var c models.Conversation
	err := h.db.QueryRow(context.Background(),
		`SELECT id, user_id, staff_id, subject, created_at FROM conversations WHERE id = $1`, id).Scan(
		&c.ID, &c.UserID, &c.StaffID, &c.Subject, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (h *MessagesHandler) listMessages(w http.ResponseWriter, conv *models.Conversation) {
	rows, err := h.db.Query(context.Background(),
		`SELECT id, conversation_id, sender_id, body, read, created_at
		   FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC`, conv.ID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	messages := make([]dto.MessageResponse, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		messages = append(messages, messageToResponse(&m))
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageListResponse{Messages: messages})
}

func (h *MessagesHandler) sendMessage(w http.ResponseWriter, r *http.Request, conv *models.Conversation, senderID uuid.UUID, isStaff bool) {
	var req dto.SendMessageRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "body is required")
		return
	}
	if len(req.Body) > messageBodyMaxLen {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "body too long")
		return
	}

	msg := models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           req.Body,
		CreatedAt:      time.Now(),
	}
	_, err := h.db.Exec(context.Background(),
		`INSERT INTO messages (id, conversation_id, sender_id, body, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Body, msg.Read, msg.CreatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	// First staff reply claims the thread.
	if isStaff && conv.StaffID == nil && conv.UserID != senderID {
		if _, err := h.db.Exec(context.Background(),
			`UPDATE conversations SET staff_id = $1 WHERE id = $2 AND staff_id IS NULL`,
			senderID, conv.ID); err != nil {
			h.logger.Warn().Err(err).Str("conversation_id", conv.ID.String()).Msg("claiming conversation failed")
		}
	}

	recipients := []uuid.UUID{conv.UserID}
	if conv.StaffID != nil {
		recipients = append(recipients, *conv.StaffID)
	}
	h.hub.Publish(realtime.Event{ConversationID: conv.ID, Message: msg}, recipients...)

	utils.WriteJSONResponse(w, http.StatusCreated, messageToResponse(&msg))
}

// Events handles GET /api/conversations/events
// @Summary Stream new messages addressed to the caller
// @Description Server-sent event stream of message inserts in the caller's conversations. The stream stays open until the client disconnects.
// @Tags messaging
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "SSE stream"
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/conversations/events [get]
func (h *MessagesHandler) Events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported", "response writer does not support flushing")
		return
	}

	events, unsubscribe := h.hub.Subscribe(userID, 16)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			payload, err := json.Marshal(messageToResponse(&ev.Message))
			if err != nil {
				h.logger.Error().Err(err).Msg("encoding message event")
				continue
			}
			if _, err := fmt.Fprintf(w, "event: message\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
