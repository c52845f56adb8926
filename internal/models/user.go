package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// User represents a registered traveler or staff account
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Nationality  string    `json:"nationality" db:"nationality"`
	Phone        *string   `json:"phone" db:"phone"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsStaff reports whether the account may use the back-office endpoints.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}
