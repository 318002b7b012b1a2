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

// donationRepository implements the repository.DonationRepository interface.
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository is the constructor for donationRepository.
func NewDonationRepository(db *gorm.DB) repository.DonationRepository {
	return &donationRepository{
		db: db,
	}
}

// Create persists a new donation record.
func (repo *donationRepository) Create(ctx context.Context, donation *entity.Donation) error {
	donationM := fromDonationDomain(donation)

	if err := repo.db.WithContext(ctx).Create(donationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithMessage("invalid bank or campaign reference").WithCause(err)
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithMessage("missing required donation information").WithCause(err)
		}

		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to create donation"))
	}

	donation.ID = donationM.ID
	donation.CreatedAt = donationM.CreatedAt
	donation.UpdatedAt = donationM.UpdatedAt

	return nil
}

// FindByID retrieves a donation by its unique ID.
func (repo *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Donation, error) {
	var donationM model.DonationModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&donationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDonationNotFound
		}

		return nil, errors.Wrap(err, "failed to find donation by ID")
	}

	return toDonationDomain(&donationM), nil
}

// Update persists changed donation fields, including verification state.
func (repo *donationRepository) Update(ctx context.Context, donation *entity.Donation) error {
	donationM := fromDonationDomain(donation)

	result := repo.db.WithContext(ctx).
		Model(&model.DonationModel{}).
		Where("id = ?", donation.ID).
		Select("*").
		Omit("id", "donor_uid", "created_at").
		Updates(donationM)

	if result.Error != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(result.Error, "failed to update donation"))
	}

	if result.RowsAffected == 0 {
		return repository.ErrDonationNotFound
	}

	return nil
}

// List returns donations matching the filter, newest first.
func (repo *donationRepository) List(ctx context.Context, filter repository.DonationListFilter) ([]*entity.Donation, error) {
	var donationModels []*model.DonationModel

	query := repo.db.WithContext(ctx).Order("donated_at DESC")

	if filter.DonorUID != nil {
		query = query.Where("donor_uid = ?", *filter.DonorUID)
	}
	if filter.BankID != nil {
		query = query.Where("bank_id = ?", *filter.BankID)
	}
	if filter.CampaignID != nil {
		query = query.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&donationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list donations")
	}

	donations := make([]*entity.Donation, 0, len(donationModels))
	for _, donationM := range donationModels {
		donations = append(donations, toDonationDomain(donationM))
	}

	return donations, nil
}

// --- Mapper Functions ---

func toDonationDomain(data *model.DonationModel) *entity.Donation {
	if data == nil {
		return nil
	}

	return &entity.Donation{
		ID:         data.ID,
		DonorUID:   data.DonorUID,
		BankID:     data.BankID,
		CampaignID: data.CampaignID,
		BloodGroup: entity.BloodGroup(data.BloodGroup),
		Units:      data.Units,
		DonatedAt:  data.DonatedAt,
		Status:     entity.DonationStatus(data.Status),
		VerifiedBy: data.VerifiedBy,
		VerifiedAt: data.VerifiedAt,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromDonationDomain(data *entity.Donation) *model.DonationModel {
	if data == nil {
		return nil
	}

	return &model.DonationModel{
		ID:         data.ID,
		DonorUID:   data.DonorUID,
		BankID:     data.BankID,
		CampaignID: data.CampaignID,
		BloodGroup: data.BloodGroup.String(),
		Units:      data.Units,
		DonatedAt:  data.DonatedAt,
		Status:     string(data.Status),
		VerifiedBy: data.VerifiedBy,
		VerifiedAt: data.VerifiedAt,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
