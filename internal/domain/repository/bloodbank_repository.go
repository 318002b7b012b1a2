package repository

import (
	"context"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"
)

// ErrBloodBankNotFound is returned when no bank matches the identifier.
var ErrBloodBankNotFound = errors.New("blood bank not found")

// BloodBankListFilter narrows bank listings.
type BloodBankListFilter struct {
	City *string
	// AvailableGroup restricts results to banks stocking at least one unit
	// of the group.
	AvailableGroup *entity.BloodGroup
	Limit          int
	Offset         int
}

// BloodBankRepository persists blood banks and their inventories.
type BloodBankRepository interface {
	Create(ctx context.Context, bank *entity.BloodBank) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodBank, error)
	Update(ctx context.Context, bank *entity.BloodBank) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter BloodBankListFilter) ([]*entity.BloodBank, error)
	// ListWithCoordinates returns every bank that has a geocoded position.
	// Distance filtering happens in the usecase.
	ListWithCoordinates(ctx context.Context) ([]*entity.BloodBank, error)
	// AdjustInventory adds delta units of the group at the bank, creating the
	// inventory row when missing. The stored value never goes below zero.
	AdjustInventory(ctx context.Context, bankID uuid.UUID, group entity.BloodGroup, delta int) error
}
