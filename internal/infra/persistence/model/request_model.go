package model

import (
	"time"

	"github.com/google/uuid"
)

// BloodRequestModel mirrors the 'blood_requests' table. Requester contact
// fields are denormalized so listings avoid a profile join.
type BloodRequestModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	RequesterUID   string    `gorm:"type:varchar(128);not null;index"`
	RequesterName  string    `gorm:"type:varchar(200)"`
	RequesterPhone string    `gorm:"type:varchar(32)"`
	PatientName    string    `gorm:"type:varchar(200);not null"`
	BloodGroup     string    `gorm:"type:varchar(3);not null;index"`
	Units          int       `gorm:"not null"`
	Urgency        string    `gorm:"type:varchar(16);not null"`
	HospitalName   string    `gorm:"type:varchar(255)"`
	City           string    `gorm:"type:varchar(100);index"`
	Notes          *string   `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(32);not null;default:'pending_verification';index"`
	NeededBy       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (BloodRequestModel) TableName() string {
	return "blood_requests"
}
