package model

import (
	"time"

	"github.com/google/uuid"
)

// CampaignModel mirrors the 'campaigns' table.
type CampaignModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Title           string     `gorm:"type:varchar(255);not null"`
	Description     string     `gorm:"type:text"`
	Organizer       string     `gorm:"type:varchar(255)"`
	Location        string     `gorm:"type:text"`
	City            string     `gorm:"type:varchar(100);index"`
	BankID          *uuid.UUID `gorm:"type:uuid;index"`
	StartDate       time.Time  `gorm:"not null;index"`
	EndDate         time.Time  `gorm:"not null"`
	Capacity        int        `gorm:"not null;default:0"`
	RegisteredCount int        `gorm:"not null;default:0"`
	Status          string     `gorm:"type:varchar(16);not null;default:'upcoming';index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Registrations []CampaignRegistrationModel `gorm:"foreignKey:CampaignID"`
}

// TableName explicitly sets the table name for GORM.
func (CampaignModel) TableName() string {
	return "campaigns"
}

// CampaignRegistrationModel mirrors the 'campaign_registrations' table.
type CampaignRegistrationModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	CampaignID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_campaign_donor"`
	DonorUID   string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_campaign_donor"`
	CheckedIn  bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (CampaignRegistrationModel) TableName() string {
	return "campaign_registrations"
}
