// Package model holds the GORM table mappings for the persistence layer.
package model

import "time"

// ProfileModel mirrors the 'profiles' table. The primary key is the external
// auth identifier, so exactly one row can exist per identity.
type ProfileModel struct {
	UID               string  `gorm:"type:varchar(128);primaryKey"`
	Email             string  `gorm:"type:varchar(255);not null;index"`
	FirstName         string  `gorm:"type:varchar(100)"`
	LastName          string  `gorm:"type:varchar(100)"`
	Phone             *string `gorm:"type:varchar(32)"`
	DateOfBirth       *time.Time
	BloodGroup        *string `gorm:"type:varchar(3);index"`
	Gender            *string `gorm:"type:varchar(16)"`
	Role              string  `gorm:"type:varchar(16);not null;default:'donor';index"`
	MedicalConditions *string `gorm:"type:text"`
	IsEligible        bool    `gorm:"not null;default:true"`
	NextEligibleDate  *time.Time
	LastDonationDate  *time.Time
	TotalDonations    int `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
