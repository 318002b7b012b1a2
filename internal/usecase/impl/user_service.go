package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
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

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	identityVerifier  service.IdentityVerifier
	sessions          usecase.SessionUsecase
	recentLoginWindow time.Duration
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	IdentityVerifier service.IdentityVerifier `optional:"true"`
	Sessions         usecase.SessionUsecase
	Config           *config.Config
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	var window time.Duration
	if params.Config != nil && params.Config.Auth != nil {
		window = params.Config.Auth.RecentLoginWindow
	}

	return &userService{
		txManager:         params.TxManager,
		refreshTokenRepo:  params.RefreshTokenRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		identityVerifier:  params.IdentityVerifier,
		sessions:          params.Sessions,
		recentLoginWindow: window,
		logger:            params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the credential and the profile in one transaction, then
// signs the new account in.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email), slog.Any("role", input.Role))

	if input.Role != entity.RoleDonor && input.Role != entity.RoleRecipient {
		return nil, domainerrors.ErrInvalidInput.WithMessage("role must be donor or recipient")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	uid := uuid.NewString()
	profile := entity.NewDefaultProfile(uid, input.Email)
	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.Role = input.Role

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()

		_, findErr := authRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailTaken
		}
		if !errors.Is(findErr, repository.ErrAuthNotFound) {
			return errors.Wrap(findErr, "failed to check existing credential")
		}

		if createErr := authRepo.Create(ctx, &entity.Authentication{
			UID:          uid,
			Provider:     entity.ProviderPassword,
			Email:        input.Email,
			PasswordHash: passwordHash,
		}); createErr != nil {
			return errors.Wrap(createErr, "failed to create credential")
		}

		if createErr := repoFactory.ProfileRepo().Create(ctx, profile); createErr != nil {
			return errors.Wrap(createErr, "failed to create profile")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "registration failed")
	}

	output, err := srv.issueSession(ctx, profile, input.Email)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Registration completed", slog.String("uid", uid))

	return output, nil
}

// Login verifies the password credential and issues a token pair.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	var authRecord *entity.Authentication
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		authRecord, findErr = repoFactory.AuthRepo().FindByEmail(ctx, input.Email)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAuthNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(findErr, "failed to load credential")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "login failed")
	}

	// bcrypt is CPU-bound, keep it outside any transaction.
	if err := srv.hasher.Verify(authRecord.PasswordHash, input.Password); err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	profile, err := srv.sessions.Refresh(ctx, authRecord.UID)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to load profile during login")
	}

	output, err := srv.issueSession(ctx, profile, authRecord.Email)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Login completed", slog.String("uid", authRecord.UID))

	return output, nil
}

// RefreshSession rotates the presented refresh token and issues a new pair.
// The old token is revoked so every refresh token can be exchanged only once.
func (srv *userService) RefreshSession(ctx context.Context, refreshToken string) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Rotating refresh token")

	claims, err := srv.tokenService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WithCause(err)
	}
	if claims.Type != service.RefreshToken {
		return nil, domainerrors.ErrInvalidToken.WithMessage("token is not a refresh token")
	}

	profile, err := srv.sessions.Refresh(ctx, claims.UID)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to load profile during refresh")
	}

	var output *usecase.SessionOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		tokenHash := hashToken(refreshToken)

		stored, findErr := refreshRepo.FindByTokenHash(ctx, tokenHash)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrInvalidToken.WithMessage("refresh token is not recognized")
			}

			return errors.Wrap(findErr, "failed to load refresh token")
		}
		if !stored.IsUsable(time.Now()) {
			return domainerrors.ErrInvalidToken.WithMessage("refresh token is revoked or expired")
		}

		if revokeErr := refreshRepo.Revoke(ctx, tokenHash); revokeErr != nil {
			return errors.Wrap(revokeErr, "failed to revoke rotated refresh token")
		}

		pair, genErr := srv.tokenService.GenerateTokenPair(claims.UID, sessionRoles(profile, srv.sessions.IsAdmin(profile, profile.Email)))
		if genErr != nil {
			return errors.Wrap(genErr, "failed to generate token pair")
		}

		if storeErr := srv.storeRefreshToken(ctx, refreshRepo, claims.UID, pair); storeErr != nil {
			return storeErr
		}

		output = &usecase.SessionOutput{
			Tokens:  pair,
			Profile: profile,
			IsAdmin: srv.sessions.IsAdmin(profile, profile.Email),
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh token rotation failed", slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to rotate refresh token")
	}

	return output, nil
}

// Logout revokes the presented refresh token. An unparseable token is still
// looked up by hash so a leaked-then-expired token gets cleaned up.
func (srv *userService) Logout(ctx context.Context, refreshToken string) error {
	if _, err := srv.tokenService.ValidateToken(refreshToken); err != nil {
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	if err := srv.refreshTokenRepo.Revoke(ctx, hashToken(refreshToken)); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return domainerrors.WrapMessage(err, "failed to revoke refresh token")
	}

	srv.log(ctx).Info("Logged out")

	return nil
}

// SignInWithIDToken verifies a provider ID token and resolves the session,
// creating the default profile on first sign-in.
func (srv *userService) SignInWithIDToken(ctx context.Context, idToken string) (*usecase.SessionOutput, error) {
	if srv.identityVerifier == nil {
		return nil, domainerrors.ErrServiceUnavailable.WithMessage("identity provider sign-in is not configured")
	}

	identity, err := srv.identityVerifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		srv.log(ctx).Warn("ID token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken.WithCause(err)
	}

	session := srv.sessions.Resolve(ctx, identity)
	if session.Err != nil {
		return nil, domainerrors.WrapMessage(session.Err, "failed to resolve session")
	}

	pair, err := srv.tokenService.GenerateTokenPair(identity.UID, sessionRoles(session.Profile, session.IsAdmin))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token pair")
	}

	if err := srv.storeRefreshToken(ctx, srv.refreshTokenRepo, identity.UID, pair); err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to store refresh token")
	}

	srv.log(ctx).Info("Signed in with ID token", slog.String("uid", identity.UID))

	return &usecase.SessionOutput{
		Tokens:  pair,
		Profile: session.Profile,
		IsAdmin: session.IsAdmin,
	}, nil
}

// ChangePassword updates the password credential and revokes every other
// session. The presented session must be recent.
func (srv *userService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	if err := srv.requireRecentLogin(input.TokenIssuedAt); err != nil {
		return err
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()

		authRecord, findErr := authRepo.FindByUID(ctx, input.UID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAuthNotFound) {
				return domainerrors.ErrNotFound.WithMessage("no password credential for this account")
			}

			return errors.Wrap(findErr, "failed to load credential")
		}

		if verifyErr := srv.hasher.Verify(authRecord.PasswordHash, input.CurrentPassword); verifyErr != nil {
			return domainerrors.ErrInvalidCredentials.WithMessage("current password is incorrect")
		}

		if updateErr := authRepo.UpdatePasswordHash(ctx, input.UID, newHash); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update password hash")
		}

		// Force re-authentication everywhere else.
		if revokeErr := repoFactory.RefreshTokenRepo().RevokeAllByUID(ctx, input.UID); revokeErr != nil {
			return errors.Wrap(revokeErr, "failed to revoke sessions after password change")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password change failed", slog.String("uid", input.UID), slog.Any("error", err))

		return domainerrors.WrapMessage(err, "failed to change password")
	}

	srv.log(ctx).Info("Password changed", slog.String("uid", input.UID))

	return nil
}

// DeleteAccount removes the credential and revokes all sessions. The profile
// row is retained so historical donations keep their donor reference.
func (srv *userService) DeleteAccount(ctx context.Context, input usecase.DeleteAccountInput) error {
	if err := srv.requireRecentLogin(input.TokenIssuedAt); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()

		authRecord, findErr := authRepo.FindByUID(ctx, input.UID)
		if findErr != nil && !errors.Is(findErr, repository.ErrAuthNotFound) {
			return errors.Wrap(findErr, "failed to load credential")
		}

		// Provider-backed accounts have no local password to confirm with.
		if findErr == nil && authRecord.Provider == entity.ProviderPassword {
			if verifyErr := srv.hasher.Verify(authRecord.PasswordHash, input.Password); verifyErr != nil {
				return domainerrors.ErrInvalidCredentials.WithMessage("password is incorrect")
			}
		}

		if findErr == nil {
			if deleteErr := authRepo.DeleteByUID(ctx, input.UID); deleteErr != nil {
				return errors.Wrap(deleteErr, "failed to delete credential")
			}
		}

		if revokeErr := repoFactory.RefreshTokenRepo().RevokeAllByUID(ctx, input.UID); revokeErr != nil {
			return errors.Wrap(revokeErr, "failed to revoke sessions during account deletion")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account deletion failed", slog.String("uid", input.UID), slog.Any("error", err))

		return domainerrors.WrapMessage(err, "failed to delete account")
	}

	srv.log(ctx).Info("Account deleted", slog.String("uid", input.UID))

	return nil
}

func (srv *userService) requireRecentLogin(tokenIssuedAt int64) error {
	window := srv.recentLoginWindow
	if window <= 0 {
		window = 5 * time.Minute
	}

	issuedAt := time.Unix(tokenIssuedAt, 0)
	if tokenIssuedAt <= 0 || time.Since(issuedAt) > window {
		return domainerrors.ErrRequiresRecentLogin
	}

	return nil
}

func (srv *userService) issueSession(ctx context.Context, profile *entity.Profile, email string) (*usecase.SessionOutput, error) {
	isAdmin := srv.sessions.IsAdmin(profile, email)

	pair, err := srv.tokenService.GenerateTokenPair(profile.UID, sessionRoles(profile, isAdmin))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token pair")
	}

	if err := srv.storeRefreshToken(ctx, srv.refreshTokenRepo, profile.UID, pair); err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to store refresh token")
	}

	return &usecase.SessionOutput{
		Tokens:  pair,
		Profile: profile,
		IsAdmin: isAdmin,
	}, nil
}

func (srv *userService) storeRefreshToken(ctx context.Context, refreshRepo repository.RefreshTokenRepository, uid string, pair *service.TokenPair) error {
	token := &entity.RefreshToken{
		UID:       uid,
		TokenHash: hashToken(pair.RefreshToken),
		ExpiresAt: pair.RefreshTokenExpiresAt,
		IssuedAt:  time.Now(),
	}

	if err := refreshRepo.Create(ctx, token); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

// sessionRoles builds the role claims embedded in access tokens.
func sessionRoles(profile *entity.Profile, isAdmin bool) []string {
	roles := entity.Roles{}
	if profile != nil {
		roles = append(roles, profile.Role)
	}
	if isAdmin && !roles.Contains(entity.RoleAdmin) {
		roles = append(roles, entity.RoleAdmin)
	}

	return roles.ToStrings()
}

// hashToken stores only a digest of refresh tokens so a database leak cannot
// replay live sessions.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
