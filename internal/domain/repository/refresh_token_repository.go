package repository

import (
	"context"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"
)

// ErrRefreshTokenNotFound is returned when the presented token is unknown.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores hashed refresh tokens for session rotation.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	// FindByTokenHash looks up a stored token by its SHA-256 hash or returns
	// ErrRefreshTokenNotFound.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)
	// Revoke marks a single token unusable.
	Revoke(ctx context.Context, tokenHash string) error
	// RevokeAllByUID invalidates every session for the identifier.
	RevokeAllByUID(ctx context.Context, uid string) error
	// DeleteExpired removes tokens past their expiry and returns the count.
	DeleteExpired(ctx context.Context) (int64, error)
}
