package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest carries the shared admin secret.
type LoginRequest struct {
	Secret string `json:"secret" validate:"required"`
}

// LoginResponse returns the issued capability token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	Role        Role      `json:"role"`
}

// SessionClaims is the JWT payload for an authenticated admin session.
type SessionClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}
