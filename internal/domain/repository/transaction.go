// Package repository defines persistence interfaces consumed by usecases.
package repository

import "context"

// RepositoryFactory hands out repositories bound to one storage scope,
// either the shared pool or a single transaction.
type RepositoryFactory interface {
	ProfileRepo() ProfileRepository
	AuthRepo() AuthRepository
	RefreshTokenRepo() RefreshTokenRepository
	BloodBankRepo() BloodBankRepository
	RequestRepo() BloodRequestRepository
	DonationRepo() DonationRepository
	CampaignRepo() CampaignRepository
	NotificationRepo() NotificationRepository
	StatsRepo() StatsRepository
}

// TransactionManager executes a function within a database transaction.
// The callback receives a factory whose repositories all share the
// transaction; returning an error rolls everything back.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
