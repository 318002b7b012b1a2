package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
)

// CampaignInput defines the data for creating or updating a campaign.
type CampaignInput struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Organizer   string                `json:"organizer"`
	Location    string                `json:"location"`
	City        string                `json:"city"`
	BankID      *uuid.UUID            `json:"bank_id,omitempty"`
	StartDate   time.Time             `json:"start_date"`
	EndDate     time.Time             `json:"end_date"`
	Capacity    int                   `json:"capacity"`
	Status      entity.CampaignStatus `json:"status"`
}

// CampaignUsecase defines campaign business operations.
type CampaignUsecase interface {
	CreateCampaign(ctx context.Context, input CampaignInput) (*entity.Campaign, error)
	GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	UpdateCampaign(ctx context.Context, id uuid.UUID, input CampaignInput) (*entity.Campaign, error)
	DeleteCampaign(ctx context.Context, id uuid.UUID) error
	ListCampaigns(ctx context.Context, filter repository.CampaignListFilter) ([]*entity.Campaign, error)
	// RegisterDonor signs a donor up for a campaign, enforcing the capacity
	// and open-for-registration rules.
	RegisterDonor(ctx context.Context, campaignID uuid.UUID, donorUID string) (*entity.CampaignRegistration, error)
	// CheckInQR renders the donor's check-in QR code as a PNG. The donor
	// must be registered for the campaign.
	CheckInQR(ctx context.Context, campaignID uuid.UUID, donorUID string) ([]byte, error)
}
