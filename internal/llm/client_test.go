package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clicktorwanda/backend/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.LLMConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		ChatModel:   "test-chat",
		VisionModel: "test-vision",
		Timeout:     5 * time.Second,
	}, zerolog.Nop())
}

func TestStreamChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range []string{"Visit ", "Volcanoes ", "National Park"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":\"%s\"}}]}\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	var got strings.Builder
	err := client.StreamChat(context.Background(), "test-chat",
		[]Message{{Role: "user", Content: "plan my trip"}},
		func(delta string) error {
			got.WriteString(delta)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, "Visit Volcanoes National Park", got.String())
}

func TestStreamChatSkipsMalformedChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: not json\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	var got strings.Builder
	err := newTestClient(srv.URL).StreamChat(context.Background(), "test-chat",
		[]Message{{Role: "user", Content: "hi"}},
		func(delta string) error {
			got.WriteString(delta)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, "ok", got.String())
}

func TestQuotaExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "test-chat",
		[]Message{{Role: "user", Content: "hi"}}, false)
	assert.ErrorIs(t, err, ErrQuotaExhausted)
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"content":"{\"days\":[]}"}}]}`)
	}))
	defer srv.Close()

	content, err := newTestClient(srv.URL).Complete(context.Background(), "test-chat",
		[]Message{{Role: "user", Content: "extract"}}, true)
	require.NoError(t, err)
	assert.Equal(t, `{"days":[]}`, content)
}

func TestExtractItineraryStripsFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"content":"`+
			"```json\\n{\\\"days\\\":[{\\\"destination\\\":\\\"Volcanoes\\\",\\\"hotel\\\":\\\"\\\",\\\"activity\\\":\\\"trekking\\\",\\\"notes\\\":\\\"\\\"}]}\\n```"+
			`"}}]}`)
	}))
	defer srv.Close()

	days, err := newTestClient(srv.URL).ExtractItinerary(context.Background(), "", "Day 1: Volcanoes trekking")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Volcanoes", days[0].Destination)
	assert.Equal(t, "trekking", days[0].Activity)
}
