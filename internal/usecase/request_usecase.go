package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
)

// CreateRequestInput defines the data for submitting a blood request.
// Requester contact fields are denormalized onto the stored row.
type CreateRequestInput struct {
	RequesterUID   string                `json:"-"`
	RequesterName  string                `json:"requester_name"`
	RequesterPhone string                `json:"requester_phone"`
	PatientName    string                `json:"patient_name"`
	BloodGroup     entity.BloodGroup     `json:"blood_group"`
	Units          int                   `json:"units"`
	Urgency        entity.RequestUrgency `json:"urgency"`
	HospitalName   string                `json:"hospital_name"`
	City           string                `json:"city"`
	Notes          *string               `json:"notes,omitempty"`
	NeededBy       *time.Time            `json:"needed_by,omitempty"`
}

// BloodRequestUsecase defines blood request business operations.
type BloodRequestUsecase interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*entity.BloodRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*entity.BloodRequest, error)
	ListRequests(ctx context.Context, filter repository.RequestListFilter) ([]*entity.BloodRequest, error)
	// ChangeStatus applies one step of the request lifecycle. Illegal steps
	// fail with the invalid-transition error kind; legal ones update the row
	// and write a notification for the requester.
	ChangeStatus(ctx context.Context, id uuid.UUID, next entity.RequestStatus) (*entity.BloodRequest, error)
}
