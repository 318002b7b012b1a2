package postgres

import (
	"context"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create persists a single notification.
func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notificationM := fromNotificationDomain(notification)

	if err := repo.db.WithContext(ctx).Create(notificationM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithMessage("missing required notification information").WithCause(err)
		}

		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to create notification"))
	}

	notification.ID = notificationM.ID
	notification.CreatedAt = notificationM.CreatedAt

	return nil
}

// CreateBatch persists a broadcast fan-out efficiently.
func (repo *notificationRepository) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	notificationModels := make([]*model.NotificationModel, 0, len(notifications))
	for _, notification := range notifications {
		notificationModels = append(notificationModels, fromNotificationDomain(notification))
	}

	// Batches of 100 balance round trips against statement size.
	if err := repo.db.WithContext(ctx).CreateInBatches(notificationModels, 100).Error; err != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to batch create notifications"))
	}

	for i, notificationM := range notificationModels {
		notifications[i].ID = notificationM.ID
		notifications[i].CreatedAt = notificationM.CreatedAt
	}

	return nil
}

// ListByUID returns one user's notifications, newest first.
func (repo *notificationRepository) ListByUID(ctx context.Context, uid string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	var notificationModels []*model.NotificationModel

	query := repo.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC")

	if onlyUnread {
		query = query.Where("read = false")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for _, notificationM := range notificationModels {
		notifications = append(notifications, toNotificationDomain(notificationM))
	}

	return notifications, nil
}

// MarkRead marks one notification read, scoped to its owner.
func (repo *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID, uid string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ? AND uid = ?", id, uid).
		Update("read", true)

	if result.Error != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(result.Error, "failed to mark notification read"))
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks every unread notification for a user as read.
func (repo *notificationRepository) MarkAllRead(ctx context.Context, uid string) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("uid = ? AND read = false", uid).
		Update("read", true).Error; err != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to mark all notifications read"))
	}

	return nil
}

// CountUnread returns the unread count for a user.
func (repo *notificationRepository) CountUnread(ctx context.Context, uid string) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("uid = ? AND read = false", uid).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

// --- Mapper Functions ---

func toNotificationDomain(data *model.NotificationModel) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:        data.ID,
		UID:       data.UID,
		Type:      entity.NotificationType(data.Type),
		Title:     data.Title,
		Body:      data.Body,
		Read:      data.Read,
		CreatedAt: data.CreatedAt,
	}
}

func fromNotificationDomain(data *entity.Notification) *model.NotificationModel {
	if data == nil {
		return nil
	}

	return &model.NotificationModel{
		ID:        data.ID,
		UID:       data.UID,
		Type:      string(data.Type),
		Title:     data.Title,
		Body:      data.Body,
		Read:      data.Read,
		CreatedAt: data.CreatedAt,
	}
}
