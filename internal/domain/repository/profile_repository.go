package repository

import (
	"context"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"
)

// ErrProfileNotFound is returned when no profile row exists for the identifier.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileListFilter narrows admin profile listings.
type ProfileListFilter struct {
	Role       *entity.Role
	BloodGroup *entity.BloodGroup
	Limit      int
	Offset     int
}

// ProfileRepository persists application profiles keyed by identifier.
type ProfileRepository interface {
	// Create inserts a new profile row. A duplicate identifier is an error.
	Create(ctx context.Context, profile *entity.Profile) error
	// Upsert inserts the profile or leaves an existing row in place. Used by
	// the lazy default-creation path where a concurrent first sign-in may
	// have already written the stub.
	Upsert(ctx context.Context, profile *entity.Profile) error
	// FindByUID returns the profile for the identifier or ErrProfileNotFound.
	FindByUID(ctx context.Context, uid string) (*entity.Profile, error)
	// Update persists changed profile fields.
	Update(ctx context.Context, profile *entity.Profile) error
	// List returns profiles matching the filter, newest first.
	List(ctx context.Context, filter ProfileListFilter) ([]*entity.Profile, error)
}
