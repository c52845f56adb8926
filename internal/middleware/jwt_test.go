package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clicktorwanda/backend/internal/config"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/utils"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "traveler@example.com", models.RoleUser, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "traveler@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "traveler@example.com", models.RoleUser, testJWTConfig())
	require.NoError(t, err)

	_, err = ValidateToken(token, &config.JWTConfig{Secret: "other-secret", AccessTokenTTL: time.Hour})
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute}
	token, err := GenerateToken(uuid.New(), "traveler@example.com", models.RoleUser, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := GenerateToken(userID, "traveler@example.com", models.RoleUser, cfg)
	require.NoError(t, err)

	handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotID, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, gotID)
		w.WriteHeader(http.StatusOK)
	}, cfg)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
		req.Header.Set("Authorization", "Token "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestStaffMiddleware(t *testing.T) {
	cfg := testJWTConfig()

	handler := StaffMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, cfg)

	call := func(role string) int {
		token, err := GenerateToken(uuid.New(), "someone@example.com", role, cfg)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/staff", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call(models.RoleStaff))
	assert.Equal(t, http.StatusOK, call(models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, call(models.RoleUser))
}
