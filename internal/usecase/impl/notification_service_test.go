package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
	mockrepo "lifeline/internal/mocks/repository"
	mockservice "lifeline/internal/mocks/service"
	"lifeline/internal/usecase"
)

type notificationServiceFixture struct {
	svc              usecase.NotificationUsecase
	notificationRepo *mockrepo.MockNotificationRepository
	profileRepo      *mockrepo.MockProfileRepository
	pushService      *mockservice.MockPushService
	eventPublisher   *mockservice.MockEventPublisher
}

func newNotificationServiceFixture(t *testing.T) *notificationServiceFixture {
	t.Helper()

	notificationRepo := mockrepo.NewMockNotificationRepository(t)
	profileRepo := mockrepo.NewMockProfileRepository(t)
	pushService := mockservice.NewMockPushService(t)
	eventPublisher := mockservice.NewMockEventPublisher(t)
	factory := &mockrepo.StubRepositoryFactory{
		Profiles:      profileRepo,
		Notifications: notificationRepo,
	}

	svc := NewNotificationService(NotificationServiceParams{
		TxManager:        &mockrepo.FakeTransactionManager{Factory: factory},
		NotificationRepo: notificationRepo,
		ProfileRepo:      profileRepo,
		PushService:      pushService,
		EventPublisher:   eventPublisher,
		Logger:           slog.Default(),
	})

	return &notificationServiceFixture{
		svc:              svc,
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		pushService:      pushService,
		eventPublisher:   eventPublisher,
	}
}

func TestNotify_WritesRowAndEmitsSideEffects(t *testing.T) {
	f := newNotificationServiceFixture(t)

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.pushService.On("Send", mock.Anything, mock.MatchedBy(func(msg *service.PushMessage) bool {
		return msg.Topic == service.UserTopic("uid-1") && msg.Title == "Hello"
	})).Return(nil)
	f.eventPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(e *service.Event) bool {
		return e.Type == "notification.donation" && e.UID == "uid-1"
	})).Return(nil)

	err := f.svc.Notify(context.Background(), &entity.Notification{
		UID:   "uid-1",
		Type:  entity.NotificationDonation,
		Title: "Hello",
		Body:  "World",
	})

	require.NoError(t, err)
}

func TestNotify_SideEffectFailureDoesNotFailWrite(t *testing.T) {
	f := newNotificationServiceFixture(t)

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.pushService.On("Send", mock.Anything, mock.Anything).Return(errors.New("fcm down"))
	f.eventPublisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	err := f.svc.Notify(context.Background(), &entity.Notification{
		UID:   "uid-1",
		Type:  entity.NotificationCampaign,
		Title: "Hello",
	})

	require.NoError(t, err)
}

func TestNotify_WriteFailureFailsCall(t *testing.T) {
	f := newNotificationServiceFixture(t)

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("insert failed"))

	err := f.svc.Notify(context.Background(), &entity.Notification{UID: "uid-1", Title: "Hello"})

	require.Error(t, err)
	f.pushService.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestBroadcast_WritesBatchForAudience(t *testing.T) {
	f := newNotificationServiceFixture(t)

	role := entity.RoleDonor
	f.profileRepo.On("List", mock.Anything, repository.ProfileListFilter{Role: &role}).
		Return([]*entity.Profile{donorProfile("uid-1"), donorProfile("uid-2")}, nil)
	f.notificationRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(ns []*entity.Notification) bool {
		return len(ns) == 2 && ns[0].Type == entity.NotificationBroadcast
	})).Return(nil)
	f.pushService.On("Send", mock.Anything, mock.Anything).Return(nil).Times(2)
	f.eventPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Times(2)

	count, err := f.svc.Broadcast(context.Background(), usecase.BroadcastInput{
		Title: "Drive this weekend",
		Body:  "Visit the central bank",
		Role:  &role,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBroadcast_EmptyAudience(t *testing.T) {
	f := newNotificationServiceFixture(t)

	f.profileRepo.On("List", mock.Anything, mock.Anything).
		Return([]*entity.Profile{}, nil)

	count, err := f.svc.Broadcast(context.Background(), usecase.BroadcastInput{
		Title: "Drive",
		Body:  "Body",
	})

	require.NoError(t, err)
	assert.Zero(t, count)
	f.notificationRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestBroadcast_RequiresTitleAndBody(t *testing.T) {
	f := newNotificationServiceFixture(t)

	_, err := f.svc.Broadcast(context.Background(), usecase.BroadcastInput{Title: "only title"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestMarkRead_UnknownNotification(t *testing.T) {
	f := newNotificationServiceFixture(t)

	id := uuid.New()
	f.notificationRepo.On("MarkRead", mock.Anything, id, "uid-1").
		Return(repository.ErrNotificationNotFound)

	err := f.svc.MarkRead(context.Background(), id, "uid-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCountUnread_PassesThrough(t *testing.T) {
	f := newNotificationServiceFixture(t)

	f.notificationRepo.On("CountUnread", mock.Anything, "uid-1").Return(int64(4), nil)

	count, err := f.svc.CountUnread(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
