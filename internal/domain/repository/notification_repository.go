package repository

import (
	"context"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
	"lifeline/internal/errors"
)

// ErrNotificationNotFound is returned when no notification matches.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository persists per-user in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// CreateBatch inserts a broadcast fan-out in one statement.
	CreateBatch(ctx context.Context, notifications []*entity.Notification) error
	ListByUID(ctx context.Context, uid string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	// MarkRead marks one notification read, scoped to its owner.
	MarkRead(ctx context.Context, id uuid.UUID, uid string) error
	MarkAllRead(ctx context.Context, uid string) error
	CountUnread(ctx context.Context, uid string) (int64, error)
}
