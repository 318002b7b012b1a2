// Package usecase contains hand-maintained testify mocks for usecase
// interfaces that other usecases depend on.
package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
	"lifeline/internal/usecase"
)

// MockNotificationUsecase is a mock implementation of usecase.NotificationUsecase.
type MockNotificationUsecase struct {
	mock.Mock
}

func NewMockNotificationUsecase(t *testing.T) *MockNotificationUsecase {
	m := &MockNotificationUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationUsecase) Notify(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}

func (m *MockNotificationUsecase) ListNotifications(ctx context.Context, uid string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(ctx, uid, onlyUnread, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, id uuid.UUID, uid string) error {
	args := m.Called(ctx, id, uid)

	return args.Error(0)
}

func (m *MockNotificationUsecase) MarkAllRead(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)

	return args.Error(0)
}

func (m *MockNotificationUsecase) CountUnread(ctx context.Context, uid string) (int64, error) {
	args := m.Called(ctx, uid)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationUsecase) Broadcast(ctx context.Context, input usecase.BroadcastInput) (int, error) {
	args := m.Called(ctx, input)

	return args.Int(0), args.Error(1)
}

// MockProfileUsecase is a mock implementation of usecase.ProfileUsecase.
type MockProfileUsecase struct {
	mock.Mock
}

func NewMockProfileUsecase(t *testing.T) *MockProfileUsecase {
	m := &MockProfileUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileUsecase) GetProfile(ctx context.Context, uid string) (*entity.Profile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileUsecase) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileUsecase) ListProfiles(ctx context.Context, filter repository.ProfileListFilter) ([]*entity.Profile, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Profile), args.Error(1)
}

func (m *MockProfileUsecase) ChangeRole(ctx context.Context, uid string, role entity.Role) (*entity.Profile, error) {
	args := m.Called(ctx, uid, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileUsecase) SetEligibility(ctx context.Context, uid string, eligible bool) (*entity.Profile, error) {
	args := m.Called(ctx, uid, eligible)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

// MockCampaignUsecase is a mock implementation of usecase.CampaignUsecase.
type MockCampaignUsecase struct {
	mock.Mock
}

func NewMockCampaignUsecase(t *testing.T) *MockCampaignUsecase {
	m := &MockCampaignUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCampaignUsecase) CreateCampaign(ctx context.Context, input usecase.CampaignInput) (*entity.Campaign, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignUsecase) GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignUsecase) UpdateCampaign(ctx context.Context, id uuid.UUID, input usecase.CampaignInput) (*entity.Campaign, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignUsecase) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockCampaignUsecase) ListCampaigns(ctx context.Context, filter repository.CampaignListFilter) ([]*entity.Campaign, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignUsecase) RegisterDonor(ctx context.Context, campaignID uuid.UUID, donorUID string) (*entity.CampaignRegistration, error) {
	args := m.Called(ctx, campaignID, donorUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.CampaignRegistration), args.Error(1)
}

func (m *MockCampaignUsecase) CheckInQR(ctx context.Context, campaignID uuid.UUID, donorUID string) ([]byte, error) {
	args := m.Called(ctx, campaignID, donorUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}
