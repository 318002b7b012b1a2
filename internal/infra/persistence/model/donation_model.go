package model

import (
	"time"

	"github.com/google/uuid"
)

// DonationModel mirrors the 'donations' table.
type DonationModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	DonorUID   string     `gorm:"type:varchar(128);not null;index"`
	BankID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CampaignID *uuid.UUID `gorm:"type:uuid;index"`
	BloodGroup string     `gorm:"type:varchar(3);not null"`
	Units      int        `gorm:"not null;default:1"`
	DonatedAt  time.Time  `gorm:"not null"`
	Status     string     `gorm:"type:varchar(16);not null;default:'recorded';index"`
	VerifiedBy *string    `gorm:"type:varchar(128)"`
	VerifiedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (DonationModel) TableName() string {
	return "donations"
}
