package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lifeline/config"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
	mockrepo "lifeline/internal/mocks/repository"
	mockservice "lifeline/internal/mocks/service"
	"lifeline/internal/usecase"
)

type userServiceFixture struct {
	svc          usecase.UserUsecase
	factory      *mockrepo.StubRepositoryFactory
	hasher       *mockservice.MockPasswordHasher
	tokenService *mockservice.MockTokenService
	verifier     *mockservice.MockIdentityVerifier
}

func newUserServiceFixture(t *testing.T, adminEmails []string) *userServiceFixture {
	t.Helper()

	factory := &mockrepo.StubRepositoryFactory{
		Profiles:      mockrepo.NewMockProfileRepository(t),
		Auths:         mockrepo.NewMockAuthRepository(t),
		RefreshTokens: mockrepo.NewMockRefreshTokenRepository(t),
	}
	hasher := mockservice.NewMockPasswordHasher(t)
	tokenService := mockservice.NewMockTokenService(t)
	verifier := mockservice.NewMockIdentityVerifier(t)

	cfg := &config.Config{Auth: &config.AuthConfig{
		AdminEmails:       adminEmails,
		RecentLoginWindow: 5 * time.Minute,
	}}

	sessions := NewSessionService(SessionServiceParams{
		ProfileRepo: factory.Profiles,
		Config:      cfg,
		Logger:      slog.Default(),
	})

	svc := NewUserService(UserServiceParams{
		TxManager:        &mockrepo.FakeTransactionManager{Factory: factory},
		RefreshTokenRepo: factory.RefreshTokens,
		Hasher:           hasher,
		TokenService:     tokenService,
		IdentityVerifier: verifier,
		Sessions:         sessions,
		Config:           cfg,
		Logger:           slog.Default(),
	})

	return &userServiceFixture{
		svc:          svc,
		factory:      factory,
		hasher:       hasher,
		tokenService: tokenService,
		verifier:     verifier,
	}
}

func testTokenPair() *service.TokenPair {
	return &service.TokenPair{
		AccessToken:           "access-jwt",
		RefreshToken:          "refresh-jwt",
		AccessTokenExpiresAt:  time.Now().Add(15 * time.Minute),
		RefreshTokenExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
}

func TestRegister_CreatesCredentialAndProfile(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.factory.Auths.On("FindByEmail", mock.Anything, "dana@example.com").
		Return(nil, repository.ErrAuthNotFound)
	f.hasher.On("Hash", "s3cret").Return("hashed", nil)
	f.factory.Auths.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Authentication) bool {
		return a.Provider == entity.ProviderPassword &&
			a.Email == "dana@example.com" &&
			a.PasswordHash == "hashed" &&
			a.UID != ""
	})).Return(nil)
	f.factory.Profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.Email == "dana@example.com" &&
			p.FirstName == "Dana" &&
			p.Role == entity.RoleDonor &&
			p.IsEligible
	})).Return(nil)
	f.tokenService.On("GenerateTokenPair", mock.Anything, []string{"donor"}).
		Return(testTokenPair(), nil)
	f.factory.RefreshTokens.On("Create", mock.Anything, mock.MatchedBy(func(rt *entity.RefreshToken) bool {
		return rt.TokenHash == hashToken("refresh-jwt")
	})).Return(nil)

	output, err := f.svc.Register(context.Background(), usecase.RegisterInput{
		Email:     "dana@example.com",
		Password:  "s3cret",
		FirstName: "Dana",
		Role:      entity.RoleDonor,
	})

	require.NoError(t, err)
	assert.Equal(t, "access-jwt", output.Tokens.AccessToken)
	assert.False(t, output.IsAdmin)
	assert.Equal(t, entity.RoleDonor, output.Profile.Role)
}

func TestRegister_EmailTaken(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.hasher.On("Hash", "s3cret").Return("hashed", nil)
	f.factory.Auths.On("FindByEmail", mock.Anything, "dana@example.com").
		Return(&entity.Authentication{UID: "uid-1"}, nil)

	_, err := f.svc.Register(context.Background(), usecase.RegisterInput{
		Email:    "dana@example.com",
		Password: "s3cret",
		Role:     entity.RoleDonor,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	_, err := f.svc.Register(context.Background(), usecase.RegisterInput{
		Email:    "dana@example.com",
		Password: "s3cret",
		Role:     entity.RoleAdmin,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestLogin_Success(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.factory.Auths.On("FindByEmail", mock.Anything, "dana@example.com").
		Return(&entity.Authentication{UID: "uid-1", Email: "dana@example.com", PasswordHash: "hashed"}, nil)
	f.hasher.On("Verify", "hashed", "s3cret").Return(nil)
	f.factory.Profiles.On("FindByUID", mock.Anything, "uid-1").
		Return(donorProfile("uid-1"), nil)
	f.tokenService.On("GenerateTokenPair", "uid-1", []string{"donor"}).
		Return(testTokenPair(), nil)
	f.factory.RefreshTokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	output, err := f.svc.Login(context.Background(), usecase.LoginInput{
		Email:    "dana@example.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-1", output.Profile.UID)
	assert.False(t, output.IsAdmin)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.factory.Auths.On("FindByEmail", mock.Anything, "dana@example.com").
		Return(&entity.Authentication{UID: "uid-1", PasswordHash: "hashed"}, nil)
	f.hasher.On("Verify", "hashed", "wrong").Return(errors.New("mismatch"))

	_, err := f.svc.Login(context.Background(), usecase.LoginInput{
		Email:    "dana@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestLogin_UnknownEmailIsInvalidCredentials(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.factory.Auths.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrAuthNotFound)

	_, err := f.svc.Login(context.Background(), usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestRefreshSession_RotatesToken(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	oldHash := hashToken("old-refresh")
	f.tokenService.On("ValidateToken", "old-refresh").
		Return(&service.Claims{UID: "uid-1", Type: service.RefreshToken}, nil)
	f.factory.Profiles.On("FindByUID", mock.Anything, "uid-1").
		Return(donorProfile("uid-1"), nil)
	f.factory.RefreshTokens.On("FindByTokenHash", mock.Anything, oldHash).
		Return(&entity.RefreshToken{UID: "uid-1", TokenHash: oldHash, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	f.factory.RefreshTokens.On("Revoke", mock.Anything, oldHash).Return(nil)
	f.tokenService.On("GenerateTokenPair", "uid-1", []string{"donor"}).
		Return(testTokenPair(), nil)
	f.factory.RefreshTokens.On("Create", mock.Anything, mock.MatchedBy(func(rt *entity.RefreshToken) bool {
		return rt.UID == "uid-1" && rt.TokenHash == hashToken("refresh-jwt")
	})).Return(nil)

	output, err := f.svc.RefreshSession(context.Background(), "old-refresh")

	require.NoError(t, err)
	assert.Equal(t, "refresh-jwt", output.Tokens.RefreshToken)
}

func TestRefreshSession_RejectsAccessToken(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.tokenService.On("ValidateToken", "an-access-token").
		Return(&service.Claims{UID: "uid-1", Type: service.AccessToken}, nil)

	_, err := f.svc.RefreshSession(context.Background(), "an-access-token")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestRefreshSession_RejectsRevokedToken(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	hash := hashToken("revoked-refresh")
	f.tokenService.On("ValidateToken", "revoked-refresh").
		Return(&service.Claims{UID: "uid-1", Type: service.RefreshToken}, nil)
	f.factory.Profiles.On("FindByUID", mock.Anything, "uid-1").
		Return(donorProfile("uid-1"), nil)
	f.factory.RefreshTokens.On("FindByTokenHash", mock.Anything, hash).
		Return(&entity.RefreshToken{UID: "uid-1", TokenHash: hash, Revoked: true, ExpiresAt: time.Now().Add(time.Hour)}, nil)

	_, err := f.svc.RefreshSession(context.Background(), "revoked-refresh")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	f.factory.RefreshTokens.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
}

func TestLogout_RevokesToken(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.tokenService.On("ValidateToken", "refresh-jwt").
		Return(&service.Claims{UID: "uid-1", Type: service.RefreshToken}, nil)
	f.factory.RefreshTokens.On("Revoke", mock.Anything, hashToken("refresh-jwt")).Return(nil)

	err := f.svc.Logout(context.Background(), "refresh-jwt")

	require.NoError(t, err)
}

func TestLogout_UnknownTokenIsNoOp(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.tokenService.On("ValidateToken", "stale").
		Return(nil, errors.New("expired"))
	f.factory.RefreshTokens.On("Revoke", mock.Anything, hashToken("stale")).
		Return(repository.ErrRefreshTokenNotFound)

	err := f.svc.Logout(context.Background(), "stale")

	require.NoError(t, err)
}

func TestSignInWithIDToken_FirstSignInCreatesProfile(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.verifier.On("VerifyIDToken", mock.Anything, "id-token").
		Return(&service.ExternalIdentity{UID: "uid-new", Email: "uid-new@example.com"}, nil)
	f.factory.Profiles.On("FindByUID", mock.Anything, "uid-new").
		Return(nil, repository.ErrProfileNotFound).Once()
	f.factory.Profiles.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	f.factory.Profiles.On("FindByUID", mock.Anything, "uid-new").
		Return(donorProfile("uid-new"), nil).Once()
	f.tokenService.On("GenerateTokenPair", "uid-new", []string{"donor"}).
		Return(testTokenPair(), nil)
	f.factory.RefreshTokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	output, err := f.svc.SignInWithIDToken(context.Background(), "id-token")

	require.NoError(t, err)
	assert.Equal(t, "uid-new", output.Profile.UID)
	assert.False(t, output.IsAdmin)
}

func TestSignInWithIDToken_AllowListedAdmin(t *testing.T) {
	f := newUserServiceFixture(t, []string{"ops@lifeline.example"})

	f.verifier.On("VerifyIDToken", mock.Anything, "id-token").
		Return(&service.ExternalIdentity{UID: "admin-1", Email: "ops@lifeline.example"}, nil)
	f.tokenService.On("GenerateTokenPair", "admin-1", []string{"admin"}).
		Return(testTokenPair(), nil)
	f.factory.RefreshTokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	output, err := f.svc.SignInWithIDToken(context.Background(), "id-token")

	require.NoError(t, err)
	assert.True(t, output.IsAdmin)
	assert.Nil(t, output.Profile)
	f.factory.Profiles.AssertNotCalled(t, "FindByUID", mock.Anything, mock.Anything)
}

func TestSignInWithIDToken_VerifierNotConfigured(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	svc := NewUserService(UserServiceParams{
		TxManager:        &mockrepo.FakeTransactionManager{Factory: f.factory},
		RefreshTokenRepo: f.factory.RefreshTokens,
		Hasher:           f.hasher,
		TokenService:     f.tokenService,
		IdentityVerifier: nil,
		Sessions: NewSessionService(SessionServiceParams{
			ProfileRepo: f.factory.Profiles,
			Config:      &config.Config{},
			Logger:      slog.Default(),
		}),
		Config: &config.Config{},
		Logger: slog.Default(),
	})

	_, err := svc.SignInWithIDToken(context.Background(), "id-token")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrServiceUnavailable))
}

func TestChangePassword_RequiresRecentLogin(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	err := f.svc.ChangePassword(context.Background(), usecase.ChangePasswordInput{
		UID:             "uid-1",
		CurrentPassword: "old",
		NewPassword:     "new",
		TokenIssuedAt:   time.Now().Add(-time.Hour).Unix(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRequiresRecentLogin))
}

func TestChangePassword_UpdatesHashAndRevokesSessions(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.hasher.On("Hash", "new").Return("new-hash", nil)
	f.factory.Auths.On("FindByUID", mock.Anything, "uid-1").
		Return(&entity.Authentication{UID: "uid-1", Provider: entity.ProviderPassword, PasswordHash: "old-hash"}, nil)
	f.hasher.On("Verify", "old-hash", "old").Return(nil)
	f.factory.Auths.On("UpdatePasswordHash", mock.Anything, "uid-1", "new-hash").Return(nil)
	f.factory.RefreshTokens.On("RevokeAllByUID", mock.Anything, "uid-1").Return(nil)

	err := f.svc.ChangePassword(context.Background(), usecase.ChangePasswordInput{
		UID:             "uid-1",
		CurrentPassword: "old",
		NewPassword:     "new",
		TokenIssuedAt:   time.Now().Unix(),
	})

	require.NoError(t, err)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.hasher.On("Hash", "new").Return("new-hash", nil)
	f.factory.Auths.On("FindByUID", mock.Anything, "uid-1").
		Return(&entity.Authentication{UID: "uid-1", PasswordHash: "old-hash"}, nil)
	f.hasher.On("Verify", "old-hash", "wrong").Return(errors.New("mismatch"))

	err := f.svc.ChangePassword(context.Background(), usecase.ChangePasswordInput{
		UID:             "uid-1",
		CurrentPassword: "wrong",
		NewPassword:     "new",
		TokenIssuedAt:   time.Now().Unix(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	f.factory.Auths.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteAccount_RemovesCredentialKeepsProfile(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.factory.Auths.On("FindByUID", mock.Anything, "uid-1").
		Return(&entity.Authentication{UID: "uid-1", Provider: entity.ProviderPassword, PasswordHash: "hashed"}, nil)
	f.hasher.On("Verify", "hashed", "s3cret").Return(nil)
	f.factory.Auths.On("DeleteByUID", mock.Anything, "uid-1").Return(nil)
	f.factory.RefreshTokens.On("RevokeAllByUID", mock.Anything, "uid-1").Return(nil)

	err := f.svc.DeleteAccount(context.Background(), usecase.DeleteAccountInput{
		UID:           "uid-1",
		Password:      "s3cret",
		TokenIssuedAt: time.Now().Unix(),
	})

	require.NoError(t, err)
	// The profile row survives account deletion.
	f.factory.Profiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteAccount_ProviderAccountNeedsNoPassword(t *testing.T) {
	f := newUserServiceFixture(t, nil)

	f.factory.Auths.On("FindByUID", mock.Anything, "uid-2").
		Return(&entity.Authentication{UID: "uid-2", Provider: entity.ProviderFirebase}, nil)
	f.factory.Auths.On("DeleteByUID", mock.Anything, "uid-2").Return(nil)
	f.factory.RefreshTokens.On("RevokeAllByUID", mock.Anything, "uid-2").Return(nil)

	err := f.svc.DeleteAccount(context.Background(), usecase.DeleteAccountInput{
		UID:           "uid-2",
		TokenIssuedAt: time.Now().Unix(),
	})

	require.NoError(t, err)
	f.hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}
