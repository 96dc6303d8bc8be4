// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

// SignupRequest mirrors the signup form, hence the camelCase keys.
type SignupRequest struct {
	FirstName     string  `json:"firstName"     validate:"required,max=100"`
	MiddleName    *string `json:"middleName"    validate:"omitempty,max=100"`
	LastName      string  `json:"lastName"      validate:"required,max=100"`
	Email         string  `json:"email"         validate:"required,max=255"`
	ContactNumber string  `json:"contactNumber" validate:"required,max=32"`
	Password      string  `json:"password"      validate:"required,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

type SignupResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
