package repository

import (
	"context"

	"lifeline/internal/domain/repository"
)

// StubRepositoryFactory hands out the configured mocks as a
// repository.RepositoryFactory.
type StubRepositoryFactory struct {
	Profiles      *MockProfileRepository
	Auths         *MockAuthRepository
	RefreshTokens *MockRefreshTokenRepository
	BloodBanks    *MockBloodBankRepository
	Requests      *MockBloodRequestRepository
	Donations     *MockDonationRepository
	Campaigns     *MockCampaignRepository
	Notifications *MockNotificationRepository
	Stats         *MockStatsRepository
}

func (f *StubRepositoryFactory) ProfileRepo() repository.ProfileRepository { return f.Profiles }
func (f *StubRepositoryFactory) AuthRepo() repository.AuthRepository       { return f.Auths }
func (f *StubRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.RefreshTokens
}
func (f *StubRepositoryFactory) BloodBankRepo() repository.BloodBankRepository { return f.BloodBanks }
func (f *StubRepositoryFactory) RequestRepo() repository.BloodRequestRepository {
	return f.Requests
}
func (f *StubRepositoryFactory) DonationRepo() repository.DonationRepository { return f.Donations }
func (f *StubRepositoryFactory) CampaignRepo() repository.CampaignRepository { return f.Campaigns }
func (f *StubRepositoryFactory) NotificationRepo() repository.NotificationRepository {
	return f.Notifications
}
func (f *StubRepositoryFactory) StatsRepo() repository.StatsRepository { return f.Stats }

// FakeTransactionManager runs the callback immediately against the stub
// factory, standing in for a real database transaction.
type FakeTransactionManager struct {
	Factory *StubRepositoryFactory
}

func (tm *FakeTransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(tm.Factory)
}
