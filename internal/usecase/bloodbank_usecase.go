package usecase

import (
	"context"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
)

// BankInput defines the data for creating or updating a blood bank. When
// coordinates are absent on create, the address is geocoded.
type BankInput struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// BankView is a bank together with presentation extras.
type BankView struct {
	Bank *entity.BloodBank `json:"bank"`
	// MapEmbedURL is empty when the map widget is not configured.
	MapEmbedURL string `json:"map_embed_url,omitempty"`
	// DistanceKm is populated by nearby search only.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// NearbyBanksInput defines a nearby search around a point.
type NearbyBanksInput struct {
	Latitude  float64 `json:"latitude" query:"lat"`
	Longitude float64 `json:"longitude" query:"lng"`
	RadiusKm  float64 `json:"radius_km" query:"radius_km"`
	// Group optionally restricts results to banks stocking the group.
	Group *entity.BloodGroup `json:"group,omitempty" query:"group"`
}

// BloodBankUsecase defines blood bank business operations.
type BloodBankUsecase interface {
	CreateBank(ctx context.Context, input BankInput) (*BankView, error)
	GetBank(ctx context.Context, id uuid.UUID) (*BankView, error)
	UpdateBank(ctx context.Context, id uuid.UUID, input BankInput) (*BankView, error)
	DeleteBank(ctx context.Context, id uuid.UUID) error
	ListBanks(ctx context.Context, filter repository.BloodBankListFilter) ([]*BankView, error)
	// NearbyBanks returns geocoded banks within the radius, closest first.
	NearbyBanks(ctx context.Context, input NearbyBanksInput) ([]*BankView, error)
	// AdjustInventory applies an admin stock correction.
	AdjustInventory(ctx context.Context, bankID uuid.UUID, group entity.BloodGroup, delta int) (*BankView, error)
}
