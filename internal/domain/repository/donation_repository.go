package repository

import (
	"context"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"
)

// ErrDonationNotFound is returned when no donation matches the identifier.
var ErrDonationNotFound = errors.New("donation not found")

// DonationListFilter narrows donation listings.
type DonationListFilter struct {
	DonorUID   *string
	BankID     *uuid.UUID
	CampaignID *uuid.UUID
	Status     *entity.DonationStatus
	Limit      int
	Offset     int
}

// DonationRepository persists donation records.
type DonationRepository interface {
	Create(ctx context.Context, donation *entity.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Donation, error)
	Update(ctx context.Context, donation *entity.Donation) error
	List(ctx context.Context, filter DonationListFilter) ([]*entity.Donation, error)
}
