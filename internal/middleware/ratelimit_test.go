package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clicktorwanda/backend/internal/utils"
)

func newTestLimiter(t *testing.T) *RateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRateLimiter(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestAllowWithinLimit(t *testing.T) {
	limiter := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "sos", "user-1", 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := limiter.Allow(ctx, "sos", "user-1", 3, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "fourth request should be rejected")
}

func TestAllowSeparateKeys(t *testing.T) {
	limiter := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "sos", "user-1", 3, time.Hour)
		require.NoError(t, err)
	}

	// A different user and a different scope each have their own window.
	ok, err := limiter.Allow(ctx, "sos", "user-2", 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "chat", "user-1", 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := newTestLimiter(t)
	userID := uuid.New()

	handler := RateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, limiter, "chat", 2, time.Minute, ChatLimitMsg)

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
		req = req.WithContext(utils.WithUserContext(req.Context(), userID, "traveler@example.com", "user"))
		rec := httptest.NewRecorder()
		handler(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call().Code)
	assert.Equal(t, http.StatusOK, call().Code)

	rec := call()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := NewRateLimiter(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	mr.Close() // limiter backend is now unreachable

	handler := RateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, limiter, "chat", 1, time.Minute, ChatLimitMsg)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	req = req.WithContext(utils.WithUserContext(req.Context(), uuid.New(), "traveler@example.com", "user"))
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddlewareRequiresAuth(t *testing.T) {
	limiter := newTestLimiter(t)

	handler := RateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, limiter, "chat", 1, time.Minute, ChatLimitMsg)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
