package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "lifeline/internal/delivery/context"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
	"lifeline/internal/usecase"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	txManager        repository.TransactionManager
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
	pushService      service.PushService
	eventPublisher   service.EventPublisher
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	NotificationRepo repository.NotificationRepository
	ProfileRepo      repository.ProfileRepository
	PushService      service.PushService `optional:"true"`
	EventPublisher   service.EventPublisher
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		txManager:        params.TxManager,
		notificationRepo: params.NotificationRepo,
		profileRepo:      params.ProfileRepo,
		pushService:      params.PushService,
		eventPublisher:   params.EventPublisher,
		logger:           params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Notify writes one in-app notification, then emits push and event side
// effects. Only the row write can fail the call; delivery problems are
// logged and swallowed.
func (srv *notificationService) Notify(ctx context.Context, notification *entity.Notification) error {
	if err := srv.notificationRepo.Create(ctx, notification); err != nil {
		srv.log(ctx).Warn("Notification write failed", slog.String("uid", notification.UID), slog.Any("error", err))

		return domainerrors.WrapMessage(err, "failed to write notification")
	}

	srv.emitSideEffects(ctx, notification)

	return nil
}

func (srv *notificationService) ListNotifications(ctx context.Context, uid string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	notifications, err := srv.notificationRepo.ListByUID(ctx, uid, onlyUnread, limit, offset)
	if err != nil {
		return nil, domainerrors.WrapMessage(err, "failed to list notifications")
	}

	return notifications, nil
}

// MarkRead flips one notification. The uid guards against marking another
// profile's notification.
func (srv *notificationService) MarkRead(ctx context.Context, id uuid.UUID, uid string) error {
	if err := srv.notificationRepo.MarkRead(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return domainerrors.ErrNotFound.WithCause(err)
		}

		return domainerrors.WrapMessage(err, "failed to mark notification read")
	}

	return nil
}

func (srv *notificationService) MarkAllRead(ctx context.Context, uid string) error {
	if err := srv.notificationRepo.MarkAllRead(ctx, uid); err != nil {
		return domainerrors.WrapMessage(err, "failed to mark notifications read")
	}

	return nil
}

func (srv *notificationService) CountUnread(ctx context.Context, uid string) (int64, error) {
	count, err := srv.notificationRepo.CountUnread(ctx, uid)
	if err != nil {
		return 0, domainerrors.WrapMessage(err, "failed to count unread notifications")
	}

	return count, nil
}

// Broadcast fans an announcement out to every matching profile. The rows are
// written in one batch inside a transaction; side effects follow afterwards.
func (srv *notificationService) Broadcast(ctx context.Context, input usecase.BroadcastInput) (int, error) {
	if input.Title == "" || input.Body == "" {
		return 0, domainerrors.ErrInvalidInput.WithMessage("title and body are required")
	}

	var notifications []*entity.Notification
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profiles, listErr := repoFactory.ProfileRepo().List(ctx, repository.ProfileListFilter{Role: input.Role})
		if listErr != nil {
			return errors.Wrap(listErr, "failed to load broadcast audience")
		}

		notifications = make([]*entity.Notification, 0, len(profiles))
		for _, profile := range profiles {
			notifications = append(notifications, &entity.Notification{
				UID:   profile.UID,
				Type:  entity.NotificationBroadcast,
				Title: input.Title,
				Body:  input.Body,
			})
		}

		if len(notifications) == 0 {
			return nil
		}

		if createErr := repoFactory.NotificationRepo().CreateBatch(ctx, notifications); createErr != nil {
			return errors.Wrap(createErr, "failed to write broadcast notifications")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Broadcast failed", slog.String("title", input.Title), slog.Any("error", err))

		return 0, domainerrors.WrapMessage(err, "failed to broadcast")
	}

	for _, notification := range notifications {
		srv.emitSideEffects(ctx, notification)
	}

	srv.log(ctx).Info("Broadcast sent", slog.String("title", input.Title), slog.Int("recipients", len(notifications)))

	return len(notifications), nil
}

// emitSideEffects delivers the push message and publishes the event. Both are
// best effort.
func (srv *notificationService) emitSideEffects(ctx context.Context, notification *entity.Notification) {
	if srv.pushService != nil {
		if err := srv.pushService.Send(ctx, &service.PushMessage{
			Topic: service.UserTopic(notification.UID),
			Title: notification.Title,
			Body:  notification.Body,
			Data:  map[string]string{"type": string(notification.Type)},
		}); err != nil {
			srv.log(ctx).Warn("Push delivery failed", slog.String("uid", notification.UID), slog.Any("error", err))
		}
	}

	if srv.eventPublisher != nil {
		if err := srv.eventPublisher.Publish(ctx, &service.Event{
			ID:   uuid.NewString(),
			Type: "notification." + string(notification.Type),
			UID:  notification.UID,
			Payload: map[string]any{
				"title": notification.Title,
				"body":  notification.Body,
			},
			OccurredAt: time.Now(),
		}); err != nil {
			srv.log(ctx).Warn("Event publish failed", slog.String("uid", notification.UID), slog.Any("error", err))
		}
	}
}
