package repository

import (
	"context"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"
)

// ErrAuthNotFound is returned when no credential matches the lookup.
var ErrAuthNotFound = errors.New("authentication not found")

// AuthRepository persists login credentials.
type AuthRepository interface {
	Create(ctx context.Context, auth *entity.Authentication) error
	// FindByEmail returns the password credential for the email or
	// ErrAuthNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.Authentication, error)
	FindByUID(ctx context.Context, uid string) (*entity.Authentication, error)
	// UpdatePasswordHash replaces the stored hash for the identifier.
	UpdatePasswordHash(ctx context.Context, uid, passwordHash string) error
	// DeleteByUID removes every credential bound to the identifier.
	DeleteByUID(ctx context.Context, uid string) error
}
