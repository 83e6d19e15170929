package dto

import (
	"github.com/accumanage/portal/internal/auth"
	"github.com/accumanage/portal/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest payload for both login surfaces.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// SessionResponse describes the established session. The token itself only
// travels in the HttpOnly cookie.
type SessionResponse struct {
	User  UserResponse        `json:"user"`
	Scope domain.SessionScope `json:"scope"`
}

// ClaimsResponse mirrors the decoded session claims.
type ClaimsResponse struct {
	UserID    string      `json:"userId"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IssuedAt  int64       `json:"iat"`
	ExpiresAt int64       `json:"exp"`
}

// FromClaims builds the claims response.
func FromClaims(c *auth.Claims) ClaimsResponse {
	return ClaimsResponse{
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Role:      c.Role,
		IssuedAt:  c.IssuedAt.Unix(),
		ExpiresAt: c.ExpiresAt.Unix(),
	}
}
