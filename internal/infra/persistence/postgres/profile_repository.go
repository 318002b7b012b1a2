package postgres

import (
	"context"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepository implements the repository.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// Create persists a new profile row keyed by the auth identifier.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WithMessage("profile already exists for this identity").WithCause(err)
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithMessage("missing required profile information").WithCause(err)
		}

		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to create profile"))
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// Upsert inserts the profile or leaves an existing row untouched. The
// conflict target is the primary key, so a concurrent first sign-in racing
// on the same identifier converges on a single stored stub.
func (repo *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uid"}},
			DoNothing: true,
		}).
		Create(profileM).Error; err != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to upsert profile"))
	}

	return nil
}

// FindByUID retrieves the profile for an identifier.
func (repo *profileRepository) FindByUID(ctx context.Context, uid string) (*entity.Profile, error) {
	var profileM model.ProfileModel

	if err := repo.db.WithContext(ctx).
		Where("uid = ?", uid).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by uid")
	}

	return toProfileDomain(&profileM), nil
}

// Update persists changed profile fields.
func (repo *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("uid = ?", profile.UID).
		Select("*").
		Omit("uid", "created_at").
		Updates(profileM)

	if result.Error != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(result.Error, "failed to update profile"))
	}

	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// List returns profiles matching the filter, newest first.
func (repo *profileRepository) List(ctx context.Context, filter repository.ProfileListFilter) ([]*entity.Profile, error) {
	var profileModels []*model.ProfileModel

	query := repo.db.WithContext(ctx).Order("created_at DESC")

	if filter.Role != nil {
		query = query.Where("role = ?", filter.Role.String())
	}
	if filter.BloodGroup != nil {
		query = query.Where("blood_group = ?", filter.BloodGroup.String())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list profiles")
	}

	profiles := make([]*entity.Profile, 0, len(profileModels))
	for _, profileM := range profileModels {
		profiles = append(profiles, toProfileDomain(profileM))
	}

	return profiles, nil
}

// --- Mapper Functions ---

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	profile := &entity.Profile{
		UID:               data.UID,
		Email:             data.Email,
		FirstName:         data.FirstName,
		LastName:          data.LastName,
		Phone:             data.Phone,
		DateOfBirth:       data.DateOfBirth,
		Gender:            data.Gender,
		Role:              entity.Role(data.Role),
		MedicalConditions: data.MedicalConditions,
		IsEligible:        data.IsEligible,
		NextEligibleDate:  data.NextEligibleDate,
		LastDonationDate:  data.LastDonationDate,
		TotalDonations:    data.TotalDonations,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	if data.BloodGroup != nil {
		group := entity.BloodGroup(*data.BloodGroup)
		profile.BloodGroup = &group
	}

	return profile
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel.
func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	profileM := &model.ProfileModel{
		UID:               data.UID,
		Email:             data.Email,
		FirstName:         data.FirstName,
		LastName:          data.LastName,
		Phone:             data.Phone,
		DateOfBirth:       data.DateOfBirth,
		Gender:            data.Gender,
		Role:              data.Role.String(),
		MedicalConditions: data.MedicalConditions,
		IsEligible:        data.IsEligible,
		NextEligibleDate:  data.NextEligibleDate,
		LastDonationDate:  data.LastDonationDate,
		TotalDonations:    data.TotalDonations,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	if data.BloodGroup != nil {
		group := data.BloodGroup.String()
		profileM.BloodGroup = &group
	}

	return profileM
}
