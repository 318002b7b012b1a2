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

// bloodRequestRepository implements the repository.BloodRequestRepository interface.
type bloodRequestRepository struct {
	db *gorm.DB
}

// NewBloodRequestRepository is the constructor for bloodRequestRepository.
func NewBloodRequestRepository(db *gorm.DB) repository.BloodRequestRepository {
	return &bloodRequestRepository{
		db: db,
	}
}

// Create persists a new blood request.
func (repo *bloodRequestRepository) Create(ctx context.Context, request *entity.BloodRequest) error {
	requestM := fromRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithMessage("missing required request information").WithCause(err)
		}

		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to create blood request"))
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// FindByID retrieves a request by its unique ID.
func (repo *bloodRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodRequest, error) {
	var requestM model.BloodRequestModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find blood request by ID")
	}

	return toRequestDomain(&requestM), nil
}

// Update persists changed request fields, including status transitions.
func (repo *bloodRequestRepository) Update(ctx context.Context, request *entity.BloodRequest) error {
	requestM := fromRequestDomain(request)

	result := repo.db.WithContext(ctx).
		Model(&model.BloodRequestModel{}).
		Where("id = ?", request.ID).
		Select("*").
		Omit("id", "requester_uid", "created_at").
		Updates(requestM)

	if result.Error != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(result.Error, "failed to update blood request"))
	}

	if result.RowsAffected == 0 {
		return repository.ErrRequestNotFound
	}

	return nil
}

// List returns requests matching the filter, newest first.
func (repo *bloodRequestRepository) List(ctx context.Context, filter repository.RequestListFilter) ([]*entity.BloodRequest, error) {
	var requestModels []*model.BloodRequestModel

	query := repo.db.WithContext(ctx).Order("created_at DESC")

	if filter.RequesterUID != nil {
		query = query.Where("requester_uid = ?", *filter.RequesterUID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.BloodGroup != nil {
		query = query.Where("blood_group = ?", filter.BloodGroup.String())
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

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list blood requests")
	}

	requests := make([]*entity.BloodRequest, 0, len(requestModels))
	for _, requestM := range requestModels {
		requests = append(requests, toRequestDomain(requestM))
	}

	return requests, nil
}

// --- Mapper Functions ---

func toRequestDomain(data *model.BloodRequestModel) *entity.BloodRequest {
	if data == nil {
		return nil
	}

	return &entity.BloodRequest{
		ID:             data.ID,
		RequesterUID:   data.RequesterUID,
		RequesterName:  data.RequesterName,
		RequesterPhone: data.RequesterPhone,
		PatientName:    data.PatientName,
		BloodGroup:     entity.BloodGroup(data.BloodGroup),
		Units:          data.Units,
		Urgency:        entity.RequestUrgency(data.Urgency),
		HospitalName:   data.HospitalName,
		City:           data.City,
		Notes:          data.Notes,
		Status:         entity.RequestStatus(data.Status),
		NeededBy:       data.NeededBy,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromRequestDomain(data *entity.BloodRequest) *model.BloodRequestModel {
	if data == nil {
		return nil
	}

	return &model.BloodRequestModel{
		ID:             data.ID,
		RequesterUID:   data.RequesterUID,
		RequesterName:  data.RequesterName,
		RequesterPhone: data.RequesterPhone,
		PatientName:    data.PatientName,
		BloodGroup:     data.BloodGroup.String(),
		Units:          data.Units,
		Urgency:        string(data.Urgency),
		HospitalName:   data.HospitalName,
		City:           data.City,
		Notes:          data.Notes,
		Status:         data.Status.String(),
		NeededBy:       data.NeededBy,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
