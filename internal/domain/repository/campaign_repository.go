package repository

import (
	"context"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"
)

// Campaign lookup sentinel errors.
var (
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrRegistrationNotFound  = errors.New("campaign registration not found")
	ErrDuplicateRegistration = errors.New("donor already registered for campaign")
)

// CampaignListFilter narrows campaign listings.
type CampaignListFilter struct {
	Status *entity.CampaignStatus
	City   *string
	Limit  int
	Offset int
}

// CampaignRepository persists campaigns and donor registrations.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	Update(ctx context.Context, campaign *entity.Campaign) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter CampaignListFilter) ([]*entity.Campaign, error)

	// Register inserts a registration and increments the registered count
	// atomically. A duplicate donor yields ErrDuplicateRegistration.
	Register(ctx context.Context, registration *entity.CampaignRegistration) error
	ListRegistrations(ctx context.Context, campaignID uuid.UUID) ([]*entity.CampaignRegistration, error)
	FindRegistration(ctx context.Context, campaignID uuid.UUID, donorUID string) (*entity.CampaignRegistration, error)
}
