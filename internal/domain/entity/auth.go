package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthProvider identifies how a credential was established.
type AuthProvider string

const (
	// ProviderPassword is an email/password credential managed by this service.
	ProviderPassword AuthProvider = "password"
	// ProviderFirebase is an identity asserted by a verified Firebase ID token.
	ProviderFirebase AuthProvider = "firebase"
)

// Authentication is one credential bound to a profile identifier.
type Authentication struct {
	ID           uuid.UUID
	UID          string
	Provider     AuthProvider
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is a stored, hashed refresh token for session rotation.
type RefreshToken struct {
	ID        uuid.UUID
	UID       string
	TokenHash string
	ExpiresAt time.Time
	IssuedAt  time.Time
	Revoked   bool
	CreatedAt time.Time
}

// IsExpired checks whether the token has passed its expiry.
func (rt *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(rt.ExpiresAt)
}

// IsUsable reports whether the token may still be exchanged.
func (rt *RefreshToken) IsUsable(now time.Time) bool {
	return !rt.Revoked && !rt.IsExpired(now)
}
