package entity

import (
	"time"

	"github.com/google/uuid"
)

// BloodBank is a physical donation center with a stocked inventory.
type BloodBank struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	City      string          `json:"city"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Latitude  *float64        `json:"latitude,omitempty"`
	Longitude *float64        `json:"longitude,omitempty"`
	Inventory []InventoryItem `json:"inventory"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InventoryItem tracks stocked units of one blood group at one bank.
type InventoryItem struct {
	ID         uuid.UUID  `json:"id"`
	BankID     uuid.UUID  `json:"bank_id"`
	BloodGroup BloodGroup `json:"blood_group"`
	Units      int        `json:"units"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// HasCoordinates reports whether the bank can participate in nearby search.
func (b *BloodBank) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}

// UnitsOf returns the stocked units for a blood group, zero if untracked.
func (b *BloodBank) UnitsOf(group BloodGroup) int {
	for _, item := range b.Inventory {
		if item.BloodGroup == group {
			return item.Units
		}
	}

	return 0
}
