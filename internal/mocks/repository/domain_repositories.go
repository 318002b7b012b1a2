package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
)

// MockBloodBankRepository is a mock implementation of repository.BloodBankRepository.
type MockBloodBankRepository struct {
	mock.Mock
}

func NewMockBloodBankRepository(t *testing.T) *MockBloodBankRepository {
	m := &MockBloodBankRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBloodBankRepository) Create(ctx context.Context, bank *entity.BloodBank) error {
	args := m.Called(ctx, bank)

	return args.Error(0)
}

func (m *MockBloodBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodBank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.BloodBank), args.Error(1)
}

func (m *MockBloodBankRepository) Update(ctx context.Context, bank *entity.BloodBank) error {
	args := m.Called(ctx, bank)

	return args.Error(0)
}

func (m *MockBloodBankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockBloodBankRepository) List(ctx context.Context, filter repository.BloodBankListFilter) ([]*entity.BloodBank, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.BloodBank), args.Error(1)
}

func (m *MockBloodBankRepository) ListWithCoordinates(ctx context.Context) ([]*entity.BloodBank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.BloodBank), args.Error(1)
}

func (m *MockBloodBankRepository) AdjustInventory(ctx context.Context, bankID uuid.UUID, group entity.BloodGroup, delta int) error {
	args := m.Called(ctx, bankID, group, delta)

	return args.Error(0)
}

// MockBloodRequestRepository is a mock implementation of repository.BloodRequestRepository.
type MockBloodRequestRepository struct {
	mock.Mock
}

func NewMockBloodRequestRepository(t *testing.T) *MockBloodRequestRepository {
	m := &MockBloodRequestRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBloodRequestRepository) Create(ctx context.Context, request *entity.BloodRequest) error {
	args := m.Called(ctx, request)

	return args.Error(0)
}

func (m *MockBloodRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.BloodRequest), args.Error(1)
}

func (m *MockBloodRequestRepository) Update(ctx context.Context, request *entity.BloodRequest) error {
	args := m.Called(ctx, request)

	return args.Error(0)
}

func (m *MockBloodRequestRepository) List(ctx context.Context, filter repository.RequestListFilter) ([]*entity.BloodRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.BloodRequest), args.Error(1)
}

// MockDonationRepository is a mock implementation of repository.DonationRepository.
type MockDonationRepository struct {
	mock.Mock
}

func NewMockDonationRepository(t *testing.T) *MockDonationRepository {
	m := &MockDonationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDonationRepository) Create(ctx context.Context, donation *entity.Donation) error {
	args := m.Called(ctx, donation)

	return args.Error(0)
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Donation), args.Error(1)
}

func (m *MockDonationRepository) Update(ctx context.Context, donation *entity.Donation) error {
	args := m.Called(ctx, donation)

	return args.Error(0)
}

func (m *MockDonationRepository) List(ctx context.Context, filter repository.DonationListFilter) ([]*entity.Donation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Donation), args.Error(1)
}

// MockCampaignRepository is a mock implementation of repository.CampaignRepository.
type MockCampaignRepository struct {
	mock.Mock
}

func NewMockCampaignRepository(t *testing.T) *MockCampaignRepository {
	m := &MockCampaignRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCampaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	args := m.Called(ctx, campaign)

	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Update(ctx context.Context, campaign *entity.Campaign) error {
	args := m.Called(ctx, campaign)

	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockCampaignRepository) List(ctx context.Context, filter repository.CampaignListFilter) ([]*entity.Campaign, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Register(ctx context.Context, registration *entity.CampaignRegistration) error {
	args := m.Called(ctx, registration)

	return args.Error(0)
}

func (m *MockCampaignRepository) ListRegistrations(ctx context.Context, campaignID uuid.UUID) ([]*entity.CampaignRegistration, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.CampaignRegistration), args.Error(1)
}

func (m *MockCampaignRepository) FindRegistration(ctx context.Context, campaignID uuid.UUID, donorUID string) (*entity.CampaignRegistration, error) {
	args := m.Called(ctx, campaignID, donorUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.CampaignRegistration), args.Error(1)
}

// MockNotificationRepository is a mock implementation of repository.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository(t *testing.T) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	args := m.Called(ctx, notifications)

	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUID(ctx context.Context, uid string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(ctx, uid, onlyUnread, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, uid string) error {
	args := m.Called(ctx, id, uid)

	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)

	return args.Error(0)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, uid string) (int64, error) {
	args := m.Called(ctx, uid)

	return args.Get(0).(int64), args.Error(1)
}

// MockStatsRepository is a mock implementation of repository.StatsRepository.
type MockStatsRepository struct {
	mock.Mock
}

func NewMockStatsRepository(t *testing.T) *MockStatsRepository {
	m := &MockStatsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStatsRepository) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.DashboardStats), args.Error(1)
}
