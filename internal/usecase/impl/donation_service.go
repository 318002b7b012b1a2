package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "lifeline/internal/delivery/context"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"
)

// donationService implements the DonationUsecase interface.
type donationService struct {
	txManager     repository.TransactionManager
	donationRepo  repository.DonationRepository
	notifications usecase.NotificationUsecase
	logger        *slog.Logger
}

// DonationServiceParams holds dependencies for DonationService, injected by Fx.
type DonationServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	DonationRepo  repository.DonationRepository
	Notifications usecase.NotificationUsecase
	Logger        *slog.Logger
}

// NewDonationService is the constructor for donationService.
func NewDonationService(params DonationServiceParams) usecase.DonationUsecase {
	return &donationService{
		txManager:     params.TxManager,
		donationRepo:  params.DonationRepo,
		notifications: params.Notifications,
		logger:        params.Logger,
	}
}

func (srv *donationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RecordDonation stores a donation awaiting admin verification. The donor
// must exist and be inside their eligibility window.
func (srv *donationService) RecordDonation(ctx context.Context, input usecase.RecordDonationInput) (*entity.Donation, error) {
	if !input.BloodGroup.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("unknown blood group")
	}
	if input.Units <= 0 {
		return nil, domainerrors.ErrInvalidInput.WithMessage("units must be positive")
	}

	donatedAt := input.DonatedAt
	if donatedAt.IsZero() {
		donatedAt = time.Now()
	}

	donation := &entity.Donation{
		DonorUID:   input.DonorUID,
		BankID:     input.BankID,
		CampaignID: input.CampaignID,
		BloodGroup: input.BloodGroup,
		Units:      input.Units,
		DonatedAt:  donatedAt,
		Status:     entity.DonationRecorded,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		donor, findErr := repoFactory.ProfileRepo().FindByUID(ctx, input.DonorUID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrProfileNotFound) {
				return domainerrors.ErrProfileNotFound.WithCause(findErr)
			}

			return errors.Wrap(findErr, "failed to load donor profile")
		}

		if !donor.CanDonate(donatedAt) {
			return domainerrors.ErrIneligibleDonor.WithDetails(map[string]any{
				"nextEligibleDate": donor.NextEligibleDate,
			})
		}

		if createErr := repoFactory.DonationRepo().Create(ctx, donation); createErr != nil {
			return errors.Wrap(createErr, "failed to create donation")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Donation recording failed", slog.String("uid", input.DonorUID), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to record donation")
	}

	srv.log(ctx).Info("Donation recorded", slog.Any("donationID", donation.ID), slog.String("uid", input.DonorUID))

	return donation, nil
}

func (srv *donationService) GetDonation(ctx context.Context, id uuid.UUID) (*entity.Donation, error) {
	donation, err := srv.donationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDonationNotFound) {
			return nil, domainerrors.ErrNotFound.WithCause(err)
		}

		return nil, domainerrors.WrapMessage(err, "failed to load donation")
	}

	return donation, nil
}

func (srv *donationService) ListDonations(ctx context.Context, filter repository.DonationListFilter) ([]*entity.Donation, error) {
	donations, err := srv.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to list donations")
	}

	return donations, nil
}

// VerifyDonation marks the donation verified, defers the donor and credits
// the bank inventory. All three writes commit or roll back together.
func (srv *donationService) VerifyDonation(ctx context.Context, id uuid.UUID, adminUID string) (*entity.Donation, error) {
	var verified *entity.Donation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		donationRepo := repoFactory.DonationRepo()
		profileRepo := repoFactory.ProfileRepo()

		donation, findErr := donationRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrDonationNotFound) {
				return domainerrors.ErrNotFound.WithCause(findErr)
			}

			return errors.Wrap(findErr, "failed to load donation for verification")
		}
		if donation.Status != entity.DonationRecorded {
			return domainerrors.ErrInvalidStatusTransition.WithDetails(map[string]any{
				"from": string(donation.Status),
				"to":   string(entity.DonationVerified),
			})
		}

		donation.Verify(adminUID, time.Now())
		if updateErr := donationRepo.Update(ctx, donation); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist donation verification")
		}

		donor, findErr := profileRepo.FindByUID(ctx, donation.DonorUID)
		if findErr != nil {
			return errors.Wrap(findErr, "failed to load donor for verification")
		}
		donor.RecordDonation(donation.DonatedAt)
		if updateErr := profileRepo.Update(ctx, donor); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist donor deferral")
		}

		if adjustErr := repoFactory.BloodBankRepo().AdjustInventory(ctx, donation.BankID, donation.BloodGroup, donation.Units); adjustErr != nil {
			return errors.Wrap(adjustErr, "failed to credit bank inventory")
		}

		verified = donation

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Donation verification failed", slog.Any("donationID", id), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to verify donation")
	}

	if notifyErr := srv.notifications.Notify(ctx, &entity.Notification{
		UID:   verified.DonorUID,
		Type:  entity.NotificationDonation,
		Title: "Donation verified",
		Body:  fmt.Sprintf("Thank you! Your donation of %d unit(s) of %s was verified.", verified.Units, verified.BloodGroup),
	}); notifyErr != nil {
		srv.log(ctx).Warn("Failed to notify donor after verification", slog.Any("donationID", id), slog.Any("error", notifyErr))
	}

	srv.log(ctx).Info("Donation verified", slog.Any("donationID", id), slog.String("adminUID", adminUID))

	return verified, nil
}

// RejectDonation marks the donation rejected. No donor or inventory side
// effects.
func (srv *donationService) RejectDonation(ctx context.Context, id uuid.UUID, adminUID string) (*entity.Donation, error) {
	var rejected *entity.Donation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		donationRepo := repoFactory.DonationRepo()

		donation, findErr := donationRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrDonationNotFound) {
				return domainerrors.ErrNotFound.WithCause(findErr)
			}

			return errors.Wrap(findErr, "failed to load donation for rejection")
		}
		if donation.Status != entity.DonationRecorded {
			return domainerrors.ErrInvalidStatusTransition.WithDetails(map[string]any{
				"from": string(donation.Status),
				"to":   string(entity.DonationRejected),
			})
		}

		now := time.Now()
		donation.Status = entity.DonationRejected
		donation.VerifiedBy = &adminUID
		donation.VerifiedAt = &now
		if updateErr := donationRepo.Update(ctx, donation); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist donation rejection")
		}

		rejected = donation

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Donation rejection failed", slog.Any("donationID", id), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to reject donation")
	}

	srv.log(ctx).Info("Donation rejected", slog.Any("donationID", id), slog.String("adminUID", adminUID))

	return rejected, nil
}
