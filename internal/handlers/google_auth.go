package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/clicktorwanda/backend/internal/config"
	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/middleware"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/utils"
)

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	db           *pgxpool.Pool
	oauth2Config *oauth2.Config
	config       *config.Config
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(db *pgxpool.Pool, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		db:           db,
		oauth2Config: oauth2Config,
		config:       cfg,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} map[string]string "Google OAuth URL"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// State parameter for CSRF protection
	state := uuid.New().String()
	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"auth_url": authURL,
		"state":    state,
	})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Handle Google OAuth callback with authorization code
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter for CSRF protection"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing authorization code", "Authorization code is required")
		return
	}

	token, err := h.oauth2Config.Exchange(context.Background(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code", err.Error())
		return
	}

	userInfo, err := h.getGoogleUserInfo(token.AccessToken)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to get user info", err.Error())
		return
	}

	// Look up or create the local account
	var user models.User
	err = h.db.QueryRow(context.Background(),
		`SELECT id, email, full_name, nationality, phone, role, created_at, updated_at
		   FROM users WHERE email = $1`, userInfo.Email).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Nationality, &user.Phone,
		&user.Role, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		// First login: provision a password-less account
		user = models.User{
			ID:        uuid.New(),
			Email:     userInfo.Email,
			FullName:  userInfo.Name,
			Role:      models.RoleUser,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		_, err = h.db.Exec(context.Background(),
			`INSERT INTO users (id, email, password_hash, full_name, nationality, phone, role, created_at, updated_at)
			 VALUES ($1, $2, '', $3, '', NULL, $4, $5, $6)`,
			user.ID, user.Email, user.FullName, user.Role, user.CreatedAt, user.UpdatedAt)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", err.Error())
			return
		}
	}

	jwtToken, err := middleware.GenerateToken(user.ID, user.Email, user.Role, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		User:  userToResponse(&user),
		Token: jwtToken,
	})
}

// getGoogleUserInfo fetches the user's profile from Google's userinfo API
func (h *GoogleAuthHandler) getGoogleUserInfo(accessToken string) (*dto.GoogleUserInfo, error) {
	ctx := context.Background()
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})))
	if err != nil {
		return nil, fmt.Errorf("creating oauth2 service: %w", err)
	}

	info, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("fetching userinfo: %w", err)
	}

	return &dto.GoogleUserInfo{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
