package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
)

// RecordDonationInput defines the data for recording a donation.
type RecordDonationInput struct {
	DonorUID   string            `json:"-"`
	BankID     uuid.UUID         `json:"bank_id"`
	CampaignID *uuid.UUID        `json:"campaign_id,omitempty"`
	BloodGroup entity.BloodGroup `json:"blood_group"`
	Units      int               `json:"units"`
	DonatedAt  time.Time         `json:"donated_at"`
}

// DonationUsecase defines donation business operations.
type DonationUsecase interface {
	RecordDonation(ctx context.Context, input RecordDonationInput) (*entity.Donation, error)
	GetDonation(ctx context.Context, id uuid.UUID) (*entity.Donation, error)
	ListDonations(ctx context.Context, filter repository.DonationListFilter) ([]*entity.Donation, error)
	// VerifyDonation marks a recorded donation verified, defers the donor
	// for the standard eligibility window, bumps the donation counters and
	// credits the bank inventory. All writes share one transaction.
	VerifyDonation(ctx context.Context, id uuid.UUID, adminUID string) (*entity.Donation, error)
	// RejectDonation marks a recorded donation rejected with no side effects.
	RejectDonation(ctx context.Context, id uuid.UUID, adminUID string) (*entity.Donation, error)
}
