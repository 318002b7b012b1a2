package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"lifeline/config"
	deliverycontext "lifeline/internal/delivery/context"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"
)

// campaignService implements the CampaignUsecase interface.
type campaignService struct {
	txManager     repository.TransactionManager
	campaignRepo  repository.CampaignRepository
	qrService     service.QRCodeService
	notifications usecase.NotificationUsecase
	qrSize        int
	logger        *slog.Logger
}

// CampaignServiceParams holds dependencies for CampaignService, injected by Fx.
type CampaignServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	CampaignRepo  repository.CampaignRepository
	QRService     service.QRCodeService
	Notifications usecase.NotificationUsecase
	Config        *config.Config
	Logger        *slog.Logger
}

// NewCampaignService is the constructor for campaignService.
func NewCampaignService(params CampaignServiceParams) usecase.CampaignUsecase {
	qrSize := 256
	if params.Config != nil && params.Config.QRCode != nil && params.Config.QRCode.Size > 0 {
		qrSize = params.Config.QRCode.Size
	}

	return &campaignService{
		txManager:     params.TxManager,
		campaignRepo:  params.CampaignRepo,
		qrService:     params.QRService,
		notifications: params.Notifications,
		qrSize:        qrSize,
		logger:        params.Logger,
	}
}

func (srv *campaignService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *campaignService) CreateCampaign(ctx context.Context, input usecase.CampaignInput) (*entity.Campaign, error) {
	if err := validateCampaignInput(input); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = entity.CampaignUpcoming
	}

	campaign := &entity.Campaign{
		Title:       input.Title,
		Description: input.Description,
		Organizer:   input.Organizer,
		Location:    input.Location,
		City:        input.City,
		BankID:      input.BankID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Capacity:    input.Capacity,
		Status:      status,
	}

	if err := srv.campaignRepo.Create(ctx, campaign); err != nil {
		srv.log(ctx).Warn("Campaign creation failed", slog.String("title", input.Title), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to create campaign")
	}

	srv.log(ctx).Info("Campaign created", slog.Any("campaignID", campaign.ID), slog.String("title", campaign.Title))

	return campaign, nil
}

func (srv *campaignService) GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	campaign, err := srv.campaignRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, domainerrors.ErrNotFound.WithCause(err)
		}

		return nil, domainerrors.WrapMessage(err, "failed to load campaign")
	}

	return campaign, nil
}

func (srv *campaignService) UpdateCampaign(ctx context.Context, id uuid.UUID, input usecase.CampaignInput) (*entity.Campaign, error) {
	if err := validateCampaignInput(input); err != nil {
		return nil, err
	}

	var updated *entity.Campaign
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		campaignRepo := repoFactory.CampaignRepo()

		campaign, findErr := campaignRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrCampaignNotFound) {
				return domainerrors.ErrNotFound.WithCause(findErr)
			}

			return errors.Wrap(findErr, "failed to load campaign for update")
		}

		campaign.Title = input.Title
		campaign.Description = input.Description
		campaign.Organizer = input.Organizer
		campaign.Location = input.Location
		campaign.City = input.City
		campaign.BankID = input.BankID
		campaign.StartDate = input.StartDate
		campaign.EndDate = input.EndDate
		campaign.Capacity = input.Capacity
		if input.Status != "" {
			campaign.Status = input.Status
		}

		if updateErr := campaignRepo.Update(ctx, campaign); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist campaign update")
		}

		updated = campaign

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Campaign update failed", slog.Any("campaignID", id), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to update campaign")
	}

	return updated, nil
}

func (srv *campaignService) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	if err := srv.campaignRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domainerrors.ErrNotFound.WithCause(err)
		}

		return domainerrors.WrapMessage(err, "failed to delete campaign")
	}

	srv.log(ctx).Info("Campaign deleted", slog.Any("campaignID", id))

	return nil
}

func (srv *campaignService) ListCampaigns(ctx context.Context, filter repository.CampaignListFilter) ([]*entity.Campaign, error) {
	campaigns, err := srv.campaignRepo.List(ctx, filter)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to list campaigns")
	}

	return campaigns, nil
}

// RegisterDonor signs a donor up for a campaign. Capacity and the
// open-for-registration window are checked inside the transaction so two
// racing sign-ups cannot overshoot the capacity.
func (srv *campaignService) RegisterDonor(ctx context.Context, campaignID uuid.UUID, donorUID string) (*entity.CampaignRegistration, error) {
	registration := &entity.CampaignRegistration{
		CampaignID: campaignID,
		DonorUID:   donorUID,
	}

	var campaign *entity.Campaign
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		campaignRepo := repoFactory.CampaignRepo()

		var findErr error
		campaign, findErr = campaignRepo.FindByID(ctx, campaignID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrCampaignNotFound) {
				return domainerrors.ErrNotFound.WithCause(findErr)
			}

			return errors.Wrap(findErr, "failed to load campaign for registration")
		}

		if !campaign.IsOpenForRegistration(time.Now()) {
			return domainerrors.ErrCampaignClosed
		}
		if campaign.IsFull() {
			return domainerrors.ErrCampaignFull
		}

		if registerErr := campaignRepo.Register(ctx, registration); registerErr != nil {
			if errors.Is(registerErr, repository.ErrDuplicateRegistration) {
				return domainerrors.ErrAlreadyRegistered
			}

			return errors.Wrap(registerErr, "failed to register donor")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Campaign registration failed",
			slog.Any("campaignID", campaignID),
			slog.String("uid", donorUID),
			slog.Any("error", err),
		)

		return nil, domainerrors.WrapMessage(err, "failed to register for campaign")
	}

	if notifyErr := srv.notifications.Notify(ctx, &entity.Notification{
		UID:   donorUID,
		Type:  entity.NotificationCampaign,
		Title: "Campaign registration confirmed",
		Body:  fmt.Sprintf("You are registered for %s. Show your QR code at check-in.", campaign.Title),
	}); notifyErr != nil {
		srv.log(ctx).Warn("Failed to notify donor after registration",
			slog.Any("campaignID", campaignID),
			slog.Any("error", notifyErr),
		)
	}

	srv.log(ctx).Info("Donor registered for campaign", slog.Any("campaignID", campaignID), slog.String("uid", donorUID))

	return registration, nil
}

// CheckInQR renders the donor's check-in code. The payload is stable per
// (campaign, donor) pair so staff scanners can match it against the
// registration list.
func (srv *campaignService) CheckInQR(ctx context.Context, campaignID uuid.UUID, donorUID string) ([]byte, error) {
	if _, err := srv.campaignRepo.FindRegistration(ctx, campaignID, donorUID); err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return nil, domainerrors.ErrNotFound.WithMessage("donor is not registered for this campaign")
		}

		return nil, domainerrors.WrapMessage(err, "failed to load registration")
	}

	payload := checkInPayload(campaignID, donorUID)
	png, err := srv.qrService.GeneratePNG(payload, srv.qrSize)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to render check-in code")
	}

	return png, nil
}

func checkInPayload(campaignID uuid.UUID, donorUID string) string {
	return fmt.Sprintf("lifeline:campaign:%s:%s", campaignID, donorUID)
}

func validateCampaignInput(input usecase.CampaignInput) error {
	if input.Title == "" {
		return domainerrors.ErrInvalidInput.WithMessage("title is required")
	}
	if !input.EndDate.After(input.StartDate) {
		return domainerrors.ErrInvalidInput.WithMessage("end date must be after start date")
	}
	if input.Capacity < 0 {
		return domainerrors.ErrInvalidInput.WithMessage("capacity must not be negative")
	}
	if input.Status != "" && !input.Status.IsValid() {
		return domainerrors.ErrInvalidInput.WithMessage("unknown campaign status")
	}

	return nil
}
