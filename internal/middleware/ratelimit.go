package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clicktorwanda/backend/internal/utils"
)

// Per-user request budgets mirroring the hosted-function limits.
const (
	ChatLimit     = 20
	ChatWindow    = time.Minute
	SOSLimit      = 3
	SOSWindow     = time.Hour
	ChatLimitMsg  = "Too many requests. Please wait a minute before sending more messages."
	SOSLimitMsg   = "SOS limit reached. You can send at most 3 alerts per hour."
	limiterPrefix = "ratelimit"
)

// RateLimiter is a fixed-window per-user counter backed by redis.
type RateLimiter struct {
	rdb *redis.Client
}

// NewRateLimiter creates a RateLimiter on the given redis client.
func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// Allow increments the counter for (scope, key) and reports whether the
// request fits the window. The first hit of a window sets the expiry.
func (l *RateLimiter) Allow(ctx context.Context, scope, key string, limit int, window time.Duration) (bool, error) {
	bucket := fmt.Sprintf("%s:%s:%s:%d", limiterPrefix, scope, key, time.Now().Unix()/int64(window.Seconds()))

	pipe := l.rdb.TxPipeline()
	count := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return count.Val() <= int64(limit), nil
}

// RateLimitMiddleware enforces a per-user fixed window on the wrapped
// handler. Must run after AuthMiddleware so the user id is on the context.
// Redis errors fail open: a broken limiter should not take the feature down.
func RateLimitMiddleware(next http.HandlerFunc, limiter *RateLimiter, scope string, limit int, window time.Duration, limitMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
			return
		}

		allowed, err := limiter.Allow(r.Context(), scope, userID.String(), limit, window)
		if err == nil && !allowed {
			utils.WriteErrorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded", limitMsg)
			return
		}
		next.ServeHTTP(w, r)
	}
}
