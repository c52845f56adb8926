package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clicktorwanda/backend/internal/models"
)

func TestHubDeliversToSubscriber(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID, 4)
	defer unsubscribe()

	ev := Event{
		ConversationID: uuid.New(),
		Message:        models.Message{ID: uuid.New(), Body: "hello"},
	}
	hub.Publish(ev, userID)

	select {
	case got := <-ch:
		assert.Equal(t, ev.Message.Body, got.Message.Body)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHubDoesNotDeliverToOtherUsers(t *testing.T) {
	hub := NewHub()
	a, b := uuid.New(), uuid.New()

	chA, unsubA := hub.Subscribe(a, 1)
	defer unsubA()

	hub.Publish(Event{Message: models.Message{Body: "for b"}}, b)

	select {
	case <-chA:
		t.Fatal("event leaked to wrong subscriber")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID, 1)
	unsubscribe()

	hub.Publish(Event{Message: models.Message{Body: "late"}}, userID)
	require.Empty(t, ch)
}

func TestHubSkipsFullSubscriber(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID, 1)
	defer unsubscribe()

	// Buffer of one: second publish must not block.
	done := make(chan struct{})
	go func() {
		hub.Publish(Event{Message: models.Message{Body: "1"}}, userID)
		hub.Publish(Event{Message: models.Message{Body: "2"}}, userID)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on full subscriber")
	}
	assert.Len(t, ch, 1)
}
