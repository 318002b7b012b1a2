package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "lifeline/internal/delivery/context"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProfileRepo repository.ProfileRepository
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		profileRepo: params.ProfileRepo,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) GetProfile(ctx context.Context, uid string) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound.WithCause(err)
		}

		return nil, domainerrors.WrapMessage(err, "failed to load profile")
	}

	return profile, nil
}

// UpdateProfile applies the settings-screen fields. Nil inputs leave the
// stored value untouched. Role, eligibility and donation counters are not
// editable here.
func (srv *profileService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.Profile, error) {
	if input.BloodGroup != nil && !input.BloodGroup.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("unknown blood group")
	}

	var updated *entity.Profile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		profile, findErr := profileRepo.FindByUID(ctx, input.UID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound.WithCause(findErr)
			}

			return errors.Wrap(findErr, "failed to load profile for update")
		}

		applyProfileUpdate(profile, input)

		if updateErr := profileRepo.Update(ctx, profile); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist profile update")
		}

		updated = profile

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.String("uid", input.UID), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to update profile")
	}

	srv.log(ctx).Debug("Profile updated", slog.String("uid", input.UID))

	return updated, nil
}

func (srv *profileService) ListProfiles(ctx context.Context, filter repository.ProfileListFilter) ([]*entity.Profile, error) {
	profiles, err := srv.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to list profiles")
	}

	return profiles, nil
}

// ChangeRole sets the stored role. Promoting to admin grants the role-based
// admin path alongside the email allow-list.
func (srv *profileService) ChangeRole(ctx context.Context, uid string, role entity.Role) (*entity.Profile, error) {
	if role != entity.RoleDonor && role != entity.RoleRecipient && role != entity.RoleAdmin {
		return nil, domainerrors.ErrInvalidInput.WithMessage("unknown role")
	}

	profile, err := srv.mutateProfile(ctx, uid, func(p *entity.Profile) {
		p.Role = role
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile role changed", slog.String("uid", uid), slog.Any("role", role))

	return profile, nil
}

// SetEligibility is the admin override for the donation deferral flag. It
// also clears the deferral date when re-enabling.
func (srv *profileService) SetEligibility(ctx context.Context, uid string, eligible bool) (*entity.Profile, error) {
	profile, err := srv.mutateProfile(ctx, uid, func(p *entity.Profile) {
		p.IsEligible = eligible
		if eligible {
			p.NextEligibleDate = nil
		}
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile eligibility changed", slog.String("uid", uid), slog.Bool("eligible", eligible))

	return profile, nil
}

func (srv *profileService) mutateProfile(ctx context.Context, uid string, mutate func(*entity.Profile)) (*entity.Profile, error) {
	var updated *entity.Profile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		profile, findErr := profileRepo.FindByUID(ctx, uid)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound.WithCause(findErr)
			}

			return errors.Wrap(findErr, "failed to load profile")
		}

		mutate(profile)

		if updateErr := profileRepo.Update(ctx, profile); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist profile")
		}

		updated = profile

		return nil
	})
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to mutate profile")
	}

	return updated, nil
}

func applyProfileUpdate(profile *entity.Profile, input usecase.UpdateProfileInput) {
	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}
	if input.BloodGroup != nil {
		profile.BloodGroup = input.BloodGroup
	}
	if input.Gender != nil {
		profile.Gender = input.Gender
	}
	if input.MedicalConditions != nil {
		profile.MedicalConditions = input.MedicalConditions
	}
}
