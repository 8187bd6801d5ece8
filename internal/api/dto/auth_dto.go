package dto

import (
	"time"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PrincipalResponse describes the caller's identity.
type PrincipalResponse struct {
	AccountID string        `json:"accountId"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Claims    domain.Claims `json:"claims"`
}

// MeResponse reports the resolved role and the UI affordances visible
// for it. Principal is null for anonymous callers.
type MeResponse struct {
	Role    domain.Role        `json:"role"`
	Visible []string           `json:"visible"`
	User    *PrincipalResponse `json:"principal"`
}
