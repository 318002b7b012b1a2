// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"lifeline/config"
	deliverycontext "lifeline/internal/delivery/context"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"
)

// sessionService implements the SessionUsecase interface. It is the single
// place that derives the {identity, profile, isAdmin} view, so handlers and
// middleware never re-run the derivation themselves.
type sessionService struct {
	profileRepo repository.ProfileRepository
	adminEmails []string
	logger      *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	ProfileRepo repository.ProfileRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	var adminEmails []string
	if params.Config != nil && params.Config.Auth != nil {
		adminEmails = params.Config.Auth.AdminEmails
	}

	return &sessionService{
		profileRepo: params.ProfileRepo,
		adminEmails: adminEmails,
		logger:      params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve produces the session view for a verified identity.
func (srv *sessionService) Resolve(ctx context.Context, identity *service.ExternalIdentity) *usecase.ResolvedSession {
	if identity == nil {
		return &usecase.ResolvedSession{}
	}

	// Allow-listed identities are administrators regardless of profile
	// state. The profile store is not touched, so no stub row appears for
	// back-office accounts.
	if srv.emailAllowListed(identity.Email) {
		return &usecase.ResolvedSession{
			Identity: identity,
			IsAdmin:  true,
		}
	}

	profile, err := srv.GetOrCreateProfile(ctx, identity)
	if err != nil {
		srv.log(ctx).Warn("Session resolution degraded, profile unavailable",
			slog.String("uid", identity.UID),
			slog.Any("error", err),
		)

		// The identity is still authenticated; the caller decides how much
		// of the surface works without a profile.
		return &usecase.ResolvedSession{
			Identity: identity,
			Err:      err,
		}
	}

	return &usecase.ResolvedSession{
		Identity: identity,
		Profile:  profile,
		IsAdmin:  srv.IsAdmin(profile, identity.Email),
	}
}

// GetOrCreateProfile fetches the profile for the identity, persisting the
// default stub on first sign-in.
func (srv *sessionService) GetOrCreateProfile(ctx context.Context, identity *service.ExternalIdentity) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByUID(ctx, identity.UID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	stub := entity.NewDefaultProfile(identity.UID, identity.Email)

	// Upsert rather than insert: two first sign-ins racing on the same
	// identifier both succeed and converge on one stored stub.
	if err := srv.profileRepo.Upsert(ctx, stub); err != nil {
		return nil, domainerrors.ErrProfileNotFound.WithCause(err)
	}

	// Re-read so the caller sees the winning row, not necessarily our stub.
	profile, err = srv.profileRepo.FindByUID(ctx, identity.UID)
	if err != nil {
		return nil, domainerrors.ErrProfileNotFound.WithCause(err)
	}

	srv.log(ctx).Info("Created default profile on first sign-in",
		slog.String("uid", identity.UID),
	)

	return profile, nil
}

// Refresh refetches the stored profile once. It never creates a profile.
func (srv *sessionService) Refresh(ctx context.Context, uid string) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound.WithCause(err)
		}

		return nil, errors.Wrap(err, "failed to refresh profile")
	}

	return profile, nil
}

// IsAdmin reports whether the stored role or the identity email grants
// administrative rights.
func (srv *sessionService) IsAdmin(profile *entity.Profile, email string) bool {
	if profile != nil && profile.Role == entity.RoleAdmin {
		return true
	}

	return srv.emailAllowListed(email)
}

// emailAllowListed matches the email against the configured allow-list.
// Entries are exact addresses or "*@domain" patterns, compared
// case-insensitively.
func (srv *sessionService) emailAllowListed(email string) bool {
	if email == "" {
		return false
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, pattern := range srv.adminEmails {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}

		if domain, ok := strings.CutPrefix(pattern, "*@"); ok {
			if strings.HasSuffix(email, "@"+domain) {
				return true
			}

			continue
		}

		if email == pattern {
			return true
		}
	}

	return false
}
