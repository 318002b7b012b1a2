package impl

import (
	"context"
	"log/slog"
	"testing"

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
	"lifeline/internal/usecase"
)

func newSessionService(t *testing.T, adminEmails []string) (usecase.SessionUsecase, *mockrepo.MockProfileRepository) {
	t.Helper()

	profileRepo := mockrepo.NewMockProfileRepository(t)
	cfg := &config.Config{Auth: &config.AuthConfig{AdminEmails: adminEmails}}

	svc := NewSessionService(SessionServiceParams{
		ProfileRepo: profileRepo,
		Config:      cfg,
		Logger:      slog.Default(),
	})

	return svc, profileRepo
}

func donorProfile(uid string) *entity.Profile {
	return &entity.Profile{
		UID:        uid,
		Email:      uid + "@example.com",
		Role:       entity.RoleDonor,
		IsEligible: true,
	}
}

func TestResolve_SignedOut(t *testing.T) {
	svc, _ := newSessionService(t, nil)

	session := svc.Resolve(context.Background(), nil)

	require.NotNil(t, session)
	assert.Nil(t, session.Identity)
	assert.Nil(t, session.Profile)
	assert.False(t, session.IsAdmin)
	assert.NoError(t, session.Err)
}

func TestResolve_AllowListedEmailSkipsProfileStore(t *testing.T) {
	svc, profileRepo := newSessionService(t, []string{"ops@lifeline.example"})

	session := svc.Resolve(context.Background(), &service.ExternalIdentity{
		UID:   "admin-1",
		Email: "ops@lifeline.example",
	})

	assert.True(t, session.IsAdmin)
	assert.Nil(t, session.Profile)
	assert.NoError(t, session.Err)
	// No fetch, no stub write.
	profileRepo.AssertNotCalled(t, "FindByUID", mock.Anything, mock.Anything)
	profileRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestResolve_AllowListIsCaseInsensitive(t *testing.T) {
	svc, _ := newSessionService(t, []string{"Ops@Lifeline.Example"})

	session := svc.Resolve(context.Background(), &service.ExternalIdentity{
		UID:   "admin-1",
		Email: "OPS@lifeline.example",
	})

	assert.True(t, session.IsAdmin)
}

func TestResolve_WildcardDomainPattern(t *testing.T) {
	svc, _ := newSessionService(t, []string{"*@lifeline.example"})

	session := svc.Resolve(context.Background(), &service.ExternalIdentity{
		UID:   "admin-2",
		Email: "anyone@lifeline.example",
	})
	assert.True(t, session.IsAdmin)

	outsider := svc.IsAdmin(nil, "someone@elsewhere.example")
	assert.False(t, outsider)
}

func TestResolve_ExistingProfile(t *testing.T) {
	svc, profileRepo := newSessionService(t, nil)

	profile := donorProfile("uid-1")
	profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(profile, nil)

	session := svc.Resolve(context.Background(), &service.ExternalIdentity{
		UID:   "uid-1",
		Email: "uid-1@example.com",
	})

	require.NoError(t, session.Err)
	assert.Equal(t, profile, session.Profile)
	assert.False(t, session.IsAdmin)
}

func TestResolve_AdminRoleGrantsAdmin(t *testing.T) {
	svc, profileRepo := newSessionService(t, nil)

	profile := donorProfile("uid-9")
	profile.Role = entity.RoleAdmin
	profileRepo.On("FindByUID", mock.Anything, "uid-9").Return(profile, nil)

	session := svc.Resolve(context.Background(), &service.ExternalIdentity{
		UID:   "uid-9",
		Email: "uid-9@example.com",
	})

	assert.True(t, session.IsAdmin)
}

func TestGetOrCreateProfile_CreatesDefaultStubOnFirstSignIn(t *testing.T) {
	svc, profileRepo := newSessionService(t, nil)

	stored := donorProfile("uid-new")
	profileRepo.On("FindByUID", mock.Anything, "uid-new").
		Return(nil, repository.ErrProfileNotFound).Once()
	profileRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.UID == "uid-new" &&
			p.Email == "uid-new@example.com" &&
			p.Role == entity.RoleDonor &&
			p.IsEligible
	})).Return(nil).Once()
	profileRepo.On("FindByUID", mock.Anything, "uid-new").
		Return(stored, nil).Once()

	profile, err := svc.GetOrCreateProfile(context.Background(), &service.ExternalIdentity{
		UID:   "uid-new",
		Email: "uid-new@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, stored, profile)
}

func TestGetOrCreateProfile_CreationFailureIsProfileNotFoundKind(t *testing.T) {
	svc, profileRepo := newSessionService(t, nil)

	profileRepo.On("FindByUID", mock.Anything, "uid-new").
		Return(nil, repository.ErrProfileNotFound).Once()
	profileRepo.On("Upsert", mock.Anything, mock.Anything).
		Return(errors.New("disk full")).Once()

	_, err := svc.GetOrCreateProfile(context.Background(), &service.ExternalIdentity{
		UID:   "uid-new",
		Email: "uid-new@example.com",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))
}

func TestResolve_DegradedSessionOnProfileFailure(t *testing.T) {
	svc, profileRepo := newSessionService(t, nil)

	profileRepo.On("FindByUID", mock.Anything, "uid-3").
		Return(nil, errors.New("connection refused"))

	session := svc.Resolve(context.Background(), &service.ExternalIdentity{
		UID:   "uid-3",
		Email: "uid-3@example.com",
	})

	// The identity stays authenticated even though the profile is missing.
	require.Error(t, session.Err)
	assert.NotNil(t, session.Identity)
	assert.Nil(t, session.Profile)
	assert.False(t, session.IsAdmin)
}

func TestRefresh_NeverCreates(t *testing.T) {
	svc, profileRepo := newSessionService(t, nil)

	profileRepo.On("FindByUID", mock.Anything, "uid-gone").
		Return(nil, repository.ErrProfileNotFound)

	_, err := svc.Refresh(context.Background(), "uid-gone")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))
	profileRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	profileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRefresh_SurfacesTransientFailure(t *testing.T) {
	svc, profileRepo := newSessionService(t, nil)

	profileRepo.On("FindByUID", mock.Anything, "uid-1").
		Return(nil, errors.New("timeout"))

	assert.NotPanics(t, func() {
		_, err := svc.Refresh(context.Background(), "uid-1")
		require.Error(t, err)
		assert.False(t, errors.Is(err, domainerrors.ErrProfileNotFound))
	})
}

func TestRefresh_ReturnsFreshProfile(t *testing.T) {
	svc, profileRepo := newSessionService(t, nil)

	fresh := donorProfile("uid-1")
	fresh.TotalDonations = 3
	profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(fresh, nil)

	profile, err := svc.Refresh(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Equal(t, 3, profile.TotalDonations)
}
