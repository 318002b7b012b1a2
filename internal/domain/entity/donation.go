package entity

import (
	"time"

	"github.com/google/uuid"
)

// DonationStatus is the verification state of a recorded donation.
type DonationStatus string

const (
	DonationRecorded DonationStatus = "recorded"
	DonationVerified DonationStatus = "verified"
	DonationRejected DonationStatus = "rejected"
)

// IsValid checks if the DonationStatus is a valid value.
func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationRecorded, DonationVerified, DonationRejected:
		return true
	default:
		return false
	}
}

// Donation is one donation event by a donor at a bank, optionally tied to
// a campaign. Verification by an admin drives the donor counters and the
// bank inventory.
type Donation struct {
	ID         uuid.UUID      `json:"id"`
	DonorUID   string         `json:"donor_uid"`
	BankID     uuid.UUID      `json:"bank_id"`
	CampaignID *uuid.UUID     `json:"campaign_id,omitempty"`
	BloodGroup BloodGroup     `json:"blood_group"`
	Units      int            `json:"units"`
	DonatedAt  time.Time      `json:"donated_at"`
	Status     DonationStatus `json:"status"`
	VerifiedBy *string        `json:"verified_by,omitempty"`
	VerifiedAt *time.Time     `json:"verified_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Verify marks the donation verified by the given admin identifier.
func (d *Donation) Verify(adminUID string, now time.Time) {
	d.Status = DonationVerified
	d.VerifiedBy = &adminUID
	d.VerifiedAt = &now
}
