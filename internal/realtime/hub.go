// Package realtime is the in-process replacement for hosted-database
// row-insert fan-out: message inserts are published to a hub and interested
// parties receive them on a channel, unsubscribing on teardown.
package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/clicktorwanda/backend/internal/models"
)

// Event is one published message insert.
type Event struct {
	ConversationID uuid.UUID
	Message        models.Message
}

// Hub fans message events out to per-user subscriber channels.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[chan Event]struct{})}
}

// Subscribe registers a channel for events addressed to userID. The caller
// must call the returned unsubscribe function when done; after it returns
// the channel will not be sent on again.
func (h *Hub) Subscribe(userID uuid.UUID, buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
	}
	return ch, unsubscribe
}

// Publish delivers ev to every subscriber of each recipient. Slow
// subscribers are skipped rather than blocking the publisher.
func (h *Hub) Publish(ev Event, recipients ...uuid.UUID) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, userID := range recipients {
		for ch := range h.subs[userID] {
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
