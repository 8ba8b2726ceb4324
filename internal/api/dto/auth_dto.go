package dto

import (
	"time"

	"github.com/lumis/servicedesk/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Password   string            `json:"password"`
	Department domain.Department `json:"department"`
	DealerID   *string           `json:"dealer_id"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Department domain.Department `json:"department"`
	DealerID   *string           `json:"dealer_id,omitempty"`
}
