package entity

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus is the lifecycle state of a donation campaign.
type CampaignStatus string

const (
	CampaignUpcoming  CampaignStatus = "upcoming"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

// IsValid checks if the CampaignStatus is a valid value.
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignUpcoming, CampaignActive, CampaignCompleted, CampaignCancelled:
		return true
	default:
		return false
	}
}

// Campaign is an organized donation drive donors can register for.
type Campaign struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Organizer       string         `json:"organizer"`
	Location        string         `json:"location"`
	City            string         `json:"city"`
	BankID          *uuid.UUID     `json:"bank_id,omitempty"`
	StartDate       time.Time      `json:"start_date"`
	EndDate         time.Time      `json:"end_date"`
	Capacity        int            `json:"capacity"`
	RegisteredCount int            `json:"registered_count"`
	Status          CampaignStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// IsFull reports whether the campaign has reached registration capacity.
// A zero capacity means unlimited.
func (c *Campaign) IsFull() bool {
	return c.Capacity > 0 && c.RegisteredCount >= c.Capacity
}

// IsOpenForRegistration reports whether donors may still register.
func (c *Campaign) IsOpenForRegistration(now time.Time) bool {
	if c.Status != CampaignUpcoming && c.Status != CampaignActive {
		return false
	}

	return now.Before(c.EndDate)
}

// CampaignRegistration records one donor signing up for a campaign.
type CampaignRegistration struct {
	ID         uuid.UUID `json:"id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	DonorUID   string    `json:"donor_uid"`
	CheckedIn  bool      `json:"checked_in"`
	CreatedAt  time.Time `json:"created_at"`
}
