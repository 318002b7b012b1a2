package impl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "lifeline/internal/delivery/context"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"
)

// requestService implements the BloodRequestUsecase interface.
type requestService struct {
	txManager     repository.TransactionManager
	requestRepo   repository.BloodRequestRepository
	notifications usecase.NotificationUsecase
	logger        *slog.Logger
}

// RequestServiceParams holds dependencies for RequestService, injected by Fx.
type RequestServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	RequestRepo   repository.BloodRequestRepository
	Notifications usecase.NotificationUsecase
	Logger        *slog.Logger
}

// NewRequestService is the constructor for requestService.
func NewRequestService(params RequestServiceParams) usecase.BloodRequestUsecase {
	return &requestService{
		txManager:     params.TxManager,
		requestRepo:   params.RequestRepo,
		notifications: params.Notifications,
		logger:        params.Logger,
	}
}

func (srv *requestService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateRequest stores a new request in the pending-verification state.
func (srv *requestService) CreateRequest(ctx context.Context, input usecase.CreateRequestInput) (*entity.BloodRequest, error) {
	if !input.BloodGroup.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("unknown blood group")
	}
	if !input.Urgency.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("unknown urgency")
	}
	if input.Units <= 0 {
		return nil, domainerrors.ErrInvalidInput.WithMessage("units must be positive")
	}

	request := &entity.BloodRequest{
		RequesterUID:   input.RequesterUID,
		RequesterName:  input.RequesterName,
		RequesterPhone: input.RequesterPhone,
		PatientName:    input.PatientName,
		BloodGroup:     input.BloodGroup,
		Units:          input.Units,
		Urgency:        input.Urgency,
		HospitalName:   input.HospitalName,
		City:           input.City,
		Notes:          input.Notes,
		Status:         entity.RequestPendingVerification,
		NeededBy:       input.NeededBy,
	}

	if err := srv.requestRepo.Create(ctx, request); err != nil {
		srv.log(ctx).Warn("Request creation failed", slog.String("uid", input.RequesterUID), slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to create blood request")
	}

	srv.log(ctx).Info("Blood request created",
		slog.Any("requestID", request.ID),
		slog.Any("group", request.BloodGroup),
		slog.Any("urgency", request.Urgency),
	)

	return request, nil
}

func (srv *requestService) GetRequest(ctx context.Context, id uuid.UUID) (*entity.BloodRequest, error) {
	request, err := srv.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, domainerrors.ErrNotFound.WithCause(err)
		}

		return nil, domainerrors.WrapMessage(err, "failed to load blood request")
	}

	return request, nil
}

func (srv *requestService) ListRequests(ctx context.Context, filter repository.RequestListFilter) ([]*entity.BloodRequest, error) {
	requests, err := srv.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to list blood requests")
	}

	return requests, nil
}

// ChangeStatus applies one lifecycle step. After the row commits the
// requester is notified; a notification failure never rolls back the
// committed status change.
func (srv *requestService) ChangeStatus(ctx context.Context, id uuid.UUID, next entity.RequestStatus) (*entity.BloodRequest, error) {
	if !next.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("unknown request status")
	}

	var updated *entity.BloodRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		requestRepo := repoFactory.RequestRepo()

		request, findErr := requestRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrRequestNotFound) {
				return domainerrors.ErrNotFound.WithCause(findErr)
			}

			return errors.Wrap(findErr, "failed to load request for status change")
		}

		if !request.Status.CanTransitionTo(next) {
			return domainerrors.ErrInvalidStatusTransition.WithDetails(map[string]any{
				"from": request.Status.String(),
				"to":   next.String(),
			})
		}

		request.Status = next
		if updateErr := requestRepo.Update(ctx, request); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist status change")
		}

		updated = request

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Request status change failed",
			slog.Any("requestID", id),
			slog.Any("next", next),
			slog.Any("error", err),
		)

		return nil, domainerrors.WrapMessage(err, "failed to change request status")
	}

	if notifyErr := srv.notifications.Notify(ctx, &entity.Notification{
		UID:   updated.RequesterUID,
		Type:  entity.NotificationRequestUpdate,
		Title: "Blood request update",
		Body:  fmt.Sprintf("Your request for %s is now %s.", updated.BloodGroup, next),
	}); notifyErr != nil {
		srv.log(ctx).Warn("Failed to notify requester after status change",
			slog.Any("requestID", id),
			slog.Any("error", notifyErr),
		)
	}

	srv.log(ctx).Info("Request status changed", slog.Any("requestID", id), slog.Any("status", next))

	return updated, nil
}
