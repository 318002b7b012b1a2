package postgres

import (
	"context"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// campaignRepository implements the repository.CampaignRepository interface.
type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository is the constructor for campaignRepository.
func NewCampaignRepository(db *gorm.DB) repository.CampaignRepository {
	return &campaignRepository{
		db: db,
	}
}

// Create persists a new campaign.
func (repo *campaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	campaignM := fromCampaignDomain(campaign)

	if err := repo.db.WithContext(ctx).Create(campaignM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithMessage("missing required campaign information").WithCause(err)
		}

		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to create campaign"))
	}

	campaign.ID = campaignM.ID
	campaign.CreatedAt = campaignM.CreatedAt
	campaign.UpdatedAt = campaignM.UpdatedAt

	return nil
}

// FindByID retrieves a campaign by its unique ID.
func (repo *campaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	var campaignM model.CampaignModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&campaignM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCampaignNotFound
		}

		return nil, errors.Wrap(err, "failed to find campaign by ID")
	}

	return toCampaignDomain(&campaignM), nil
}

// Update persists changed campaign fields.
func (repo *campaignRepository) Update(ctx context.Context, campaign *entity.Campaign) error {
	campaignM := fromCampaignDomain(campaign)

	result := repo.db.WithContext(ctx).
		Model(&model.CampaignModel{}).
		Where("id = ?", campaign.ID).
		Select("*").
		Omit("id", "registered_count", "created_at").
		Updates(campaignM)

	if result.Error != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(result.Error, "failed to update campaign"))
	}

	if result.RowsAffected == 0 {
		return repository.ErrCampaignNotFound
	}

	return nil
}

// Delete removes a campaign and its registrations.
func (repo *campaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("campaign_id = ?", id).
		Delete(&model.CampaignRegistrationModel{}).Error; err != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to delete campaign registrations"))
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CampaignModel{})

	if result.Error != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(result.Error, "failed to delete campaign"))
	}

	if result.RowsAffected == 0 {
		return repository.ErrCampaignNotFound
	}

	return nil
}

// List returns campaigns matching the filter ordered by start date.
func (repo *campaignRepository) List(ctx context.Context, filter repository.CampaignListFilter) ([]*entity.Campaign, error) {
	var campaignModels []*model.CampaignModel

	query := repo.db.WithContext(ctx).Order("start_date ASC")

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.City != nil {
		query = query.Where("city = ?", *filter.City)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&campaignModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list campaigns")
	}

	campaigns := make([]*entity.Campaign, 0, len(campaignModels))
	for _, campaignM := range campaignModels {
		campaigns = append(campaigns, toCampaignDomain(campaignM))
	}

	return campaigns, nil
}

// Register inserts a registration and increments the registered count in one
// transactional scope. The unique index on (campaign_id, donor_uid) turns a
// duplicate sign-up into ErrDuplicateRegistration.
func (repo *campaignRepository) Register(ctx context.Context, registration *entity.CampaignRegistration) error {
	registrationM := fromRegistrationDomain(registration)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(registrationM).Error; err != nil {
			if isUniqueConstraintViolation(err) {
				return repository.ErrDuplicateRegistration
			}

			return errors.Wrap(err, "failed to create campaign registration")
		}

		if err := tx.Model(&model.CampaignModel{}).
			Where("id = ?", registration.CampaignID).
			Update("registered_count", gorm.Expr("registered_count + 1")).Error; err != nil {
			return errors.Wrap(err, "failed to increment registered count")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return err
		}

		return domainerrors.DatabaseExecuteError(err)
	}

	registration.ID = registrationM.ID
	registration.CreatedAt = registrationM.CreatedAt

	return nil
}

// ListRegistrations returns all registrations for a campaign.
func (repo *campaignRepository) ListRegistrations(ctx context.Context, campaignID uuid.UUID) ([]*entity.CampaignRegistration, error) {
	var registrationModels []*model.CampaignRegistrationModel

	if err := repo.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&registrationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list campaign registrations")
	}

	registrations := make([]*entity.CampaignRegistration, 0, len(registrationModels))
	for _, registrationM := range registrationModels {
		registrations = append(registrations, toRegistrationDomain(registrationM))
	}

	return registrations, nil
}

// FindRegistration returns one donor's registration for a campaign.
func (repo *campaignRepository) FindRegistration(ctx context.Context, campaignID uuid.UUID, donorUID string) (*entity.CampaignRegistration, error) {
	var registrationM model.CampaignRegistrationModel

	if err := repo.db.WithContext(ctx).
		Where("campaign_id = ? AND donor_uid = ?", campaignID, donorUID).
		First(&registrationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRegistrationNotFound
		}

		return nil, errors.Wrap(err, "failed to find campaign registration")
	}

	return toRegistrationDomain(&registrationM), nil
}

// --- Mapper Functions ---

func toCampaignDomain(data *model.CampaignModel) *entity.Campaign {
	if data == nil {
		return nil
	}

	return &entity.Campaign{
		ID:              data.ID,
		Title:           data.Title,
		Description:     data.Description,
		Organizer:       data.Organizer,
		Location:        data.Location,
		City:            data.City,
		BankID:          data.BankID,
		StartDate:       data.StartDate,
		EndDate:         data.EndDate,
		Capacity:        data.Capacity,
		RegisteredCount: data.RegisteredCount,
		Status:          entity.CampaignStatus(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromCampaignDomain(data *entity.Campaign) *model.CampaignModel {
	if data == nil {
		return nil
	}

	return &model.CampaignModel{
		ID:              data.ID,
		Title:           data.Title,
		Description:     data.Description,
		Organizer:       data.Organizer,
		Location:        data.Location,
		City:            data.City,
		BankID:          data.BankID,
		StartDate:       data.StartDate,
		EndDate:         data.EndDate,
		Capacity:        data.Capacity,
		RegisteredCount: data.RegisteredCount,
		Status:          string(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toRegistrationDomain(data *model.CampaignRegistrationModel) *entity.CampaignRegistration {
	if data == nil {
		return nil
	}

	return &entity.CampaignRegistration{
		ID:         data.ID,
		CampaignID: data.CampaignID,
		DonorUID:   data.DonorUID,
		CheckedIn:  data.CheckedIn,
		CreatedAt:  data.CreatedAt,
	}
}

func fromRegistrationDomain(data *entity.CampaignRegistration) *model.CampaignRegistrationModel {
	if data == nil {
		return nil
	}

	return &model.CampaignRegistrationModel{
		ID:         data.ID,
		CampaignID: data.CampaignID,
		DonorUID:   data.DonorUID,
		CheckedIn:  data.CheckedIn,
		CreatedAt:  data.CreatedAt,
	}
}
