// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/service"
)

// ResolvedSession is the unified view of an authenticated identity: the
// external identity, the stored profile, and the derived admin flag. Err
// carries a non-fatal resolution problem so callers can render a degraded
// session instead of failing the whole request.
type ResolvedSession struct {
	Identity *service.ExternalIdentity
	Profile  *entity.Profile
	IsAdmin  bool
	Err      error
}

// SessionUsecase unifies auth state and profile state into one consistent
// session view.
type SessionUsecase interface {
	// Resolve produces the session view for a verified identity. Identities
	// on the admin allow-list short-circuit with IsAdmin=true and no profile
	// store access. Everyone else goes through the get-or-create path.
	Resolve(ctx context.Context, identity *service.ExternalIdentity) *ResolvedSession

	// GetOrCreateProfile fetches the profile for the identity, persisting a
	// default stub on first sign-in. When neither fetch nor creation
	// succeeds the returned error matches domainerrors.ErrProfileNotFound.
	GetOrCreateProfile(ctx context.Context, identity *service.ExternalIdentity) (*entity.Profile, error)

	// Refresh refetches the stored profile once. It never creates a profile
	// and surfaces transient failures to the caller.
	Refresh(ctx context.Context, uid string) (*entity.Profile, error)

	// IsAdmin reports whether the profile role or the identity email grants
	// administrative rights.
	IsAdmin(profile *entity.Profile, email string) bool
}
