package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/errors"
	mockrepo "lifeline/internal/mocks/repository"
	"lifeline/internal/usecase"
)

func newProfileService(t *testing.T) (usecase.ProfileUsecase, *mockrepo.MockProfileRepository) {
	t.Helper()

	profileRepo := mockrepo.NewMockProfileRepository(t)
	factory := &mockrepo.StubRepositoryFactory{Profiles: profileRepo}

	svc := NewProfileService(ProfileServiceParams{
		TxManager:   &mockrepo.FakeTransactionManager{Factory: factory},
		ProfileRepo: profileRepo,
		Logger:      slog.Default(),
	})

	return svc, profileRepo
}

func strPtr(s string) *string { return &s }

func TestGetProfile_NotFound(t *testing.T) {
	svc, profileRepo := newProfileService(t)

	profileRepo.On("FindByUID", mock.Anything, "uid-x").
		Return(nil, repository.ErrProfileNotFound)

	_, err := svc.GetProfile(context.Background(), "uid-x")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))
}

func TestUpdateProfile_AppliesOnlyProvidedFields(t *testing.T) {
	svc, profileRepo := newProfileService(t)

	stored := donorProfile("uid-1")
	stored.FirstName = "Old"
	stored.LastName = "Name"
	profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(stored, nil)
	profileRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.FirstName == "New" && p.LastName == "Name" && p.Phone != nil && *p.Phone == "555-0100"
	})).Return(nil)

	updated, err := svc.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		UID:       "uid-1",
		FirstName: strPtr("New"),
		Phone:     strPtr("555-0100"),
	})

	require.NoError(t, err)
	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, "Name", updated.LastName)
}

func TestUpdateProfile_RejectsUnknownBloodGroup(t *testing.T) {
	svc, _ := newProfileService(t)

	bogus := entity.BloodGroup("X+")
	_, err := svc.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		UID:        "uid-1",
		BloodGroup: &bogus,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestChangeRole_PersistsNewRole(t *testing.T) {
	svc, profileRepo := newProfileService(t)

	profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(donorProfile("uid-1"), nil)
	profileRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.Role == entity.RoleAdmin
	})).Return(nil)

	updated, err := svc.ChangeRole(context.Background(), "uid-1", entity.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
}

func TestChangeRole_RejectsUnknownRole(t *testing.T) {
	svc, _ := newProfileService(t)

	_, err := svc.ChangeRole(context.Background(), "uid-1", entity.Role("superuser"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestSetEligibility_ReEnableClearsDeferralDate(t *testing.T) {
	svc, profileRepo := newProfileService(t)

	stored := donorProfile("uid-1")
	stored.RecordDonation(stored.CreatedAt)
	require.False(t, stored.IsEligible)
	require.NotNil(t, stored.NextEligibleDate)

	profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(stored, nil)
	profileRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.SetEligibility(context.Background(), "uid-1", true)

	require.NoError(t, err)
	assert.True(t, updated.IsEligible)
	assert.Nil(t, updated.NextEligibleDate)
}

func TestListProfiles_PassesFilterThrough(t *testing.T) {
	svc, profileRepo := newProfileService(t)

	role := entity.RoleDonor
	filter := repository.ProfileListFilter{Role: &role, Limit: 10}
	profileRepo.On("List", mock.Anything, filter).
		Return([]*entity.Profile{donorProfile("uid-1")}, nil)

	profiles, err := svc.ListProfiles(context.Background(), filter)

	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}
