package usecase

import (
	"context"
	"time"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
)

// UpdateProfileInput carries the settings-screen fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileInput struct {
	UID               string             `json:"-"`
	FirstName         *string            `json:"first_name,omitempty"`
	LastName          *string            `json:"last_name,omitempty"`
	Phone             *string            `json:"phone,omitempty"`
	DateOfBirth       *time.Time         `json:"date_of_birth,omitempty"`
	BloodGroup        *entity.BloodGroup `json:"blood_group,omitempty"`
	Gender            *string            `json:"gender,omitempty"`
	MedicalConditions *string            `json:"medical_conditions,omitempty"`
}

// ProfileUsecase defines profile read and mutation operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, uid string) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.Profile, error)

	// Admin operations.
	ListProfiles(ctx context.Context, filter repository.ProfileListFilter) ([]*entity.Profile, error)
	ChangeRole(ctx context.Context, uid string, role entity.Role) (*entity.Profile, error)
	SetEligibility(ctx context.Context, uid string, eligible bool) (*entity.Profile, error)
}
