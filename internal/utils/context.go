package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	emailKey  contextKey = "email"
	roleKey   contextKey = "role"
)

// WithUserContext stores the authenticated identity on the request context.
func WithUserContext(ctx context.Context, userID uuid.UUID, email, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, email)
	return context.WithValue(ctx, roleKey, role)
}

// GetUserIDFromContext extracts the authenticated user id set by the JWT
// middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetEmailFromContext extracts the authenticated email.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// GetRoleFromContext extracts the authenticated role.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}
