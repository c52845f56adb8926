package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContextRoundTrip(t *testing.T) {
	userID := uuid.New()
	ctx := WithUserContext(context.Background(), userID, "traveler@example.com", "staff")

	gotID, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)

	email, ok := GetEmailFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "traveler@example.com", email)

	role, ok := GetRoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "staff", role)
}

func TestUserContextMissing(t *testing.T) {
	ctx := context.Background()

	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
	_, ok = GetEmailFromContext(ctx)
	assert.False(t, ok)
	_, ok = GetRoleFromContext(ctx)
	assert.False(t, ok)
}
