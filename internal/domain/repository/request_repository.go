package repository

import (
	"context"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"
)

// ErrRequestNotFound is returned when no blood request matches the identifier.
var ErrRequestNotFound = errors.New("blood request not found")

// RequestListFilter narrows blood request listings.
type RequestListFilter struct {
	RequesterUID *string
	Status       *entity.RequestStatus
	BloodGroup   *entity.BloodGroup
	City         *string
	Limit        int
	Offset       int
}

// BloodRequestRepository persists blood requests.
type BloodRequestRepository interface {
	Create(ctx context.Context, request *entity.BloodRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodRequest, error)
	Update(ctx context.Context, request *entity.BloodRequest) error
	List(ctx context.Context, filter RequestListFilter) ([]*entity.BloodRequest, error)
}
