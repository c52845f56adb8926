package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/realtime"
	"github.com/clicktorwanda/backend/internal/utils"
)

func TestEventsStreamsPublishedMessages(t *testing.T) {
	hub := realtime.NewHub()
	h := NewMessagesHandler(nil, hub, zerolog.Nop())

	userID := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/conversations/events", nil)
	req = req.WithContext(utils.WithUserContext(ctx, userID, "traveler@example.com", "user"))
	rec := httptest.NewRecorder()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.Events(rec, req)
	}()

	// Let the handler register its subscription before publishing.
	time.Sleep(50 * time.Millisecond)

	msg := models.Message{
		ID:             uuid.New(),
		ConversationID: uuid.New(),
		SenderID:       uuid.New(),
		Body:           "hello from support",
		CreatedAt:      time.Now(),
	}
	hub.Publish(realtime.Event{ConversationID: msg.ConversationID, Message: msg}, userID)

	time.Sleep(50 * time.Millisecond)
	cancel()
	wg.Wait()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: message")
	assert.Contains(t, rec.Body.String(), "hello from support")
	assert.Contains(t, rec.Body.String(), msg.ID.String())
}

func TestEventsIgnoresOtherRecipients(t *testing.T) {
	hub := realtime.NewHub()
	h := NewMessagesHandler(nil, hub, zerolog.Nop())

	userID := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/conversations/events", nil)
	req = req.WithContext(utils.WithUserContext(ctx, userID, "traveler@example.com", "user"))
	rec := httptest.NewRecorder()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.Events(rec, req)
	}()

	time.Sleep(50 * time.Millisecond)
	msg := models.Message{ID: uuid.New(), ConversationID: uuid.New(), SenderID: uuid.New(), Body: "not for you"}
	hub.Publish(realtime.Event{ConversationID: msg.ConversationID, Message: msg}, uuid.New())

	time.Sleep(50 * time.Millisecond)
	cancel()
	wg.Wait()

	assert.NotContains(t, rec.Body.String(), "not for you")
}

func TestEventsRequiresUserContext(t *testing.T) {
	h := NewMessagesHandler(nil, realtime.NewHub(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/events", nil)
	rec := httptest.NewRecorder()
	h.Events(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
