package dto

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	FullName    string  `json:"full_name" validate:"required,min=2,max=100"`
	Nationality string  `json:"nationality"`
	Phone       *string `json:"phone,omitempty"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries optional profile fields; only provided ones
// are written.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	Nationality *string `json:"nationality"`
	Phone       *string `json:"phone"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    string  `json:"full_name"`
	Nationality string  `json:"nationality"`
	Phone       *string `json:"phone"`
	Role        string  `json:"role"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// GoogleUserInfo represents the profile returned by Google's userinfo API
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
