package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims carried by a session credential
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
}
