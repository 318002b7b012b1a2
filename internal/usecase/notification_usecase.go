package usecase

import (
	"context"

	"github.com/google/uuid"

	"lifeline/internal/domain/entity"
)

// BroadcastInput defines an admin broadcast to a set of profiles.
type BroadcastInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	// Role optionally restricts the audience; nil broadcasts to everyone.
	Role *entity.Role `json:"role,omitempty"`
}

// NotificationUsecase defines notification business operations.
type NotificationUsecase interface {
	// Notify writes one in-app notification and emits best-effort push and
	// event side effects that never fail the write.
	Notify(ctx context.Context, notification *entity.Notification) error
	ListNotifications(ctx context.Context, uid string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, uid string) error
	MarkAllRead(ctx context.Context, uid string) error
	CountUnread(ctx context.Context, uid string) (int64, error)
	// Broadcast fans an announcement out to the audience and returns the
	// number of notifications written.
	Broadcast(ctx context.Context, input BroadcastInput) (int, error)
}
