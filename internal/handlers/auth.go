package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/clicktorwanda/backend/internal/config"
	"github.com/clicktorwanda/backend/internal/dto"
	"github.com/clicktorwanda/backend/internal/middleware"
	"github.com/clicktorwanda/backend/internal/models"
	"github.com/clicktorwanda/backend/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	db     *pgxpool.Pool
	config *config.Config
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(db *pgxpool.Pool, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

func userToResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		Nationality: u.Nationality,
		Phone:       u.Phone,
		Role:        u.Role,
		CreatedAt:   utils.FormatTimestamp(u.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(u.UpdatedAt),
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new traveler account with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	req.Nationality = strings.ToLower(strings.TrimSpace(req.Nationality))
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email, password, and full_name are required")
		return
	}
	if len(req.Password) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Password must be at least 6 characters")
		return
	}

	// Check if user already exists
	var existingUserID uuid.UUID
	err := h.db.QueryRow(context.Background(),
		"SELECT id FROM users WHERE email = $1", req.Email).Scan(&existingUserID)
	if err == nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "User already exists", "Email already registered")
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	userID := uuid.New()
	now := time.Now()

	_, err = h.db.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, full_name, nationality, phone, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		userID, req.Email, string(hashedPassword), req.FullName, req.Nationality, req.Phone,
		models.RoleUser, now, now)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	token, err := middleware.GenerateToken(userID, req.Email, models.RoleUser, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	user := models.User{
		ID:          userID,
		Email:       req.Email,
		FullName:    req.FullName,
		Nationality: req.Nationality,
		Phone:       req.Phone,
		Role:        models.RoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		User:  userToResponse(&user),
		Token: token,
	})
}

// Login handles user login
// @Summary Log in
// @Description Authenticate with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}

	var user models.User
	err := h.db.QueryRow(context.Background(),
		`SELECT id, email, password_hash, full_name, nationality, phone, role, created_at, updated_at
		   FROM users WHERE email = $1`, req.Email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Nationality,
		&user.Phone, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		User:  userToResponse(&user),
		Token: token,
	})
}

// Profile dispatches by HTTP method for /api/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetProfile(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateProfile(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GetProfile returns the authenticated user's profile
// @Summary Get current user profile
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	user, err := h.loadUser(userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "User not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, userToResponse(user))
}

// UpdateProfile updates optional profile fields
// @Summary Update current user profile
// @Tags authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.UpdateProfileRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	cur, err := h.loadUser(userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "User not found")
		return
	}

	fullName := cur.FullName
	if req.FullName != nil {
		fullName = strings.TrimSpace(*req.FullName)
		if fullName == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "full_name cannot be empty")
			return
		}
	}
	nationality := cur.Nationality
	if req.Nationality != nil {
		nationality = strings.ToLower(strings.TrimSpace(*req.Nationality))
	}
	phone := cur.Phone
	if req.Phone != nil {
		phone = req.Phone
	}

	now := time.Now()
	_, err = h.db.Exec(context.Background(),
		`UPDATE users SET full_name = $1, nationality = $2, phone = $3, updated_at = $4 WHERE id = $5`,
		fullName, nationality, phone, now, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	cur.FullName = fullName
	cur.Nationality = nationality
	cur.Phone = phone
	cur.UpdatedAt = now
	utils.WriteJSONResponse(w, http.StatusOK, userToResponse(cur))
}

func (h *AuthHandler) loadUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := h.db.QueryRow(context.Background(),
		`SELECT id, email, full_name, nationality, phone, role, created_at, updated_at
		   FROM users WHERE id = $1`, userID).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Nationality, &user.Phone,
		&user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
