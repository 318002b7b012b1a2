// Package service defines stateless domain service interfaces implemented
// under internal/infra.
package service

import "time"

// TokenType distinguishes access from refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims are the verified contents of a token issued by this service.
type Claims struct {
	UID      string
	Roles    []string
	Type     TokenType
	IssuedAt time.Time
}

// TokenPair bundles the tokens handed to a client on login or rotation.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// TokenService issues and validates signed session tokens.
type TokenService interface {
	// GenerateTokenPair issues an access and refresh token for the identity.
	GenerateTokenPair(uid string, roles []string) (*TokenPair, error)
	// ValidateToken verifies the signature and expiry and returns the claims.
	// The token type is read from the unverified payload first so the
	// matching secret can be selected.
	ValidateToken(tokenString string) (*Claims, error)
}
