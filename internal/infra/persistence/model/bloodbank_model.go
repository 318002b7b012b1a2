package model

import (
	"time"

	"github.com/google/uuid"
)

// BloodBankModel mirrors the 'blood_banks' table.
type BloodBankModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Address   string    `gorm:"type:text;not null"`
	City      string    `gorm:"type:varchar(100);index"`
	Phone     string    `gorm:"type:varchar(32)"`
	Email     string    `gorm:"type:varchar(255)"`
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time

	Inventory []InventoryItemModel `gorm:"foreignKey:BankID"`
}

// TableName explicitly sets the table name for GORM.
func (BloodBankModel) TableName() string {
	return "blood_banks"
}

// InventoryItemModel mirrors the 'bank_inventory' table, one row per bank
// and blood group.
type InventoryItemModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	BankID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bank_group"`
	BloodGroup string    `gorm:"type:varchar(3);not null;uniqueIndex:idx_bank_group"`
	Units      int       `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (InventoryItemModel) TableName() string {
	return "bank_inventory"
}
