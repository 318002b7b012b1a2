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
	"gorm.io/gorm/clause"
)

// bloodBankRepository implements the repository.BloodBankRepository interface.
type bloodBankRepository struct {
	db *gorm.DB
}

// NewBloodBankRepository is the constructor for bloodBankRepository.
func NewBloodBankRepository(db *gorm.DB) repository.BloodBankRepository {
	return &bloodBankRepository{
		db: db,
	}
}

// Create persists a new blood bank together with any initial inventory rows.
func (repo *bloodBankRepository) Create(ctx context.Context, bank *entity.BloodBank) error {
	bankM := fromBloodBankDomain(bank)

	if err := repo.db.WithContext(ctx).Create(bankM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithMessage("missing required blood bank information").WithCause(err)
		}

		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to create blood bank"))
	}

	bank.ID = bankM.ID
	bank.CreatedAt = bankM.CreatedAt
	bank.UpdatedAt = bankM.UpdatedAt

	return nil
}

// FindByID retrieves a bank with its inventory.
func (repo *bloodBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodBank, error) {
	var bankM model.BloodBankModel

	if err := repo.db.WithContext(ctx).
		Preload("Inventory").
		Where("id = ?", id).
		First(&bankM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBloodBankNotFound
		}

		return nil, errors.Wrap(err, "failed to find blood bank by ID")
	}

	return toBloodBankDomain(&bankM), nil
}

// Update persists changed bank fields. Inventory moves through AdjustInventory.
func (repo *bloodBankRepository) Update(ctx context.Context, bank *entity.BloodBank) error {
	bankM := fromBloodBankDomain(bank)

	result := repo.db.WithContext(ctx).
		Model(&model.BloodBankModel{}).
		Where("id = ?", bank.ID).
		Select("name", "address", "city", "phone", "email", "latitude", "longitude").
		Updates(bankM)

	if result.Error != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(result.Error, "failed to update blood bank"))
	}

	if result.RowsAffected == 0 {
		return repository.ErrBloodBankNotFound
	}

	return nil
}

// Delete removes a bank and its inventory rows.
func (repo *bloodBankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("bank_id = ?", id).
		Delete(&model.InventoryItemModel{}).Error; err != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to delete bank inventory"))
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.BloodBankModel{})

	if result.Error != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(result.Error, "failed to delete blood bank"))
	}

	if result.RowsAffected == 0 {
		return repository.ErrBloodBankNotFound
	}

	return nil
}

// List returns banks matching the filter with their inventories.
func (repo *bloodBankRepository) List(ctx context.Context, filter repository.BloodBankListFilter) ([]*entity.BloodBank, error) {
	var bankModels []*model.BloodBankModel

	query := repo.db.WithContext(ctx).
		Preload("Inventory").
		Order("name ASC")

	if filter.City != nil {
		query = query.Where("city = ?", *filter.City)
	}
	if filter.AvailableGroup != nil {
		query = query.Where(
			"id IN (?)",
			repo.db.Model(&model.InventoryItemModel{}).
				Select("bank_id").
				Where("blood_group = ? AND units > 0", filter.AvailableGroup.String()),
		)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&bankModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list blood banks")
	}

	banks := make([]*entity.BloodBank, 0, len(bankModels))
	for _, bankM := range bankModels {
		banks = append(banks, toBloodBankDomain(bankM))
	}

	return banks, nil
}

// ListWithCoordinates returns every geocoded bank for nearby search.
func (repo *bloodBankRepository) ListWithCoordinates(ctx context.Context) ([]*entity.BloodBank, error) {
	var bankModels []*model.BloodBankModel

	if err := repo.db.WithContext(ctx).
		Preload("Inventory").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&bankModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list geocoded blood banks")
	}

	banks := make([]*entity.BloodBank, 0, len(bankModels))
	for _, bankM := range bankModels {
		banks = append(banks, toBloodBankDomain(bankM))
	}

	return banks, nil
}

// AdjustInventory adds delta units of a group at a bank, creating the row
// when missing. GREATEST keeps the stored value from going below zero.
func (repo *bloodBankRepository) AdjustInventory(ctx context.Context, bankID uuid.UUID, group entity.BloodGroup, delta int) error {
	item := &model.InventoryItemModel{
		BankID:     bankID,
		BloodGroup: group.String(),
		Units:      max(delta, 0),
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "bank_id"}, {Name: "blood_group"}},
			DoUpdates: clause.Assignments(map[string]any{
				"units":      gorm.Expr("GREATEST(bank_inventory.units + ?, 0)", delta),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(item).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBloodBankNotFound
		}

		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to adjust inventory"))
	}

	return nil
}

// --- Mapper Functions ---

func toBloodBankDomain(data *model.BloodBankModel) *entity.BloodBank {
	if data == nil {
		return nil
	}

	inventory := make([]entity.InventoryItem, 0, len(data.Inventory))
	for _, itemM := range data.Inventory {
		inventory = append(inventory, entity.InventoryItem{
			ID:         itemM.ID,
			BankID:     itemM.BankID,
			BloodGroup: entity.BloodGroup(itemM.BloodGroup),
			Units:      itemM.Units,
			UpdatedAt:  itemM.UpdatedAt,
		})
	}

	return &entity.BloodBank{
		ID:        data.ID,
		Name:      data.Name,
		Address:   data.Address,
		City:      data.City,
		Phone:     data.Phone,
		Email:     data.Email,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		Inventory: inventory,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromBloodBankDomain(data *entity.BloodBank) *model.BloodBankModel {
	if data == nil {
		return nil
	}

	inventory := make([]model.InventoryItemModel, 0, len(data.Inventory))
	for _, item := range data.Inventory {
		inventory = append(inventory, model.InventoryItemModel{
			ID:         item.ID,
			BankID:     item.BankID,
			BloodGroup: item.BloodGroup.String(),
			Units:      item.Units,
			UpdatedAt:  item.UpdatedAt,
		})
	}

	return &model.BloodBankModel{
		ID:        data.ID,
		Name:      data.Name,
		Address:   data.Address,
		City:      data.City,
		Phone:     data.Phone,
		Email:     data.Email,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		Inventory: inventory,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
