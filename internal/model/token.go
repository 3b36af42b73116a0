package model

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity data embedded in a signed access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
}

// TokenManager issues and verifies signed, time-limited access tokens.
// Tokens are stateless; there is no server-side revocation.
type TokenManager interface {
	Issue(userID uuid.UUID, email string) (string, error)
	Parse(token string) (*Claims, error)
}
