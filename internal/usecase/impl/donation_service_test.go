package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/errors"
	mockrepo "lifeline/internal/mocks/repository"
	mockusecase "lifeline/internal/mocks/usecase"
	"lifeline/internal/usecase"
)

type donationServiceFixture struct {
	svc           usecase.DonationUsecase
	donationRepo  *mockrepo.MockDonationRepository
	profileRepo   *mockrepo.MockProfileRepository
	bankRepo      *mockrepo.MockBloodBankRepository
	notifications *mockusecase.MockNotificationUsecase
}

func newDonationServiceFixture(t *testing.T) *donationServiceFixture {
	t.Helper()

	donationRepo := mockrepo.NewMockDonationRepository(t)
	profileRepo := mockrepo.NewMockProfileRepository(t)
	bankRepo := mockrepo.NewMockBloodBankRepository(t)
	notifications := mockusecase.NewMockNotificationUsecase(t)
	factory := &mockrepo.StubRepositoryFactory{
		Profiles:   profileRepo,
		BloodBanks: bankRepo,
		Donations:  donationRepo,
	}

	svc := NewDonationService(DonationServiceParams{
		TxManager:     &mockrepo.FakeTransactionManager{Factory: factory},
		DonationRepo:  donationRepo,
		Notifications: notifications,
		Logger:        slog.Default(),
	})

	return &donationServiceFixture{
		svc:           svc,
		donationRepo:  donationRepo,
		profileRepo:   profileRepo,
		bankRepo:      bankRepo,
		notifications: notifications,
	}
}

func recordedDonation() *entity.Donation {
	return &entity.Donation{
		ID:         uuid.New(),
		DonorUID:   "uid-1",
		BankID:     uuid.New(),
		BloodGroup: entity.BloodAPositive,
		Units:      1,
		DonatedAt:  time.Now().Add(-time.Hour),
		Status:     entity.DonationRecorded,
	}
}

func TestRecordDonation_EligibleDonor(t *testing.T) {
	f := newDonationServiceFixture(t)

	f.profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(donorProfile("uid-1"), nil)
	f.donationRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *entity.Donation) bool {
		return d.Status == entity.DonationRecorded && d.DonorUID == "uid-1"
	})).Return(nil)

	donation, err := f.svc.RecordDonation(context.Background(), usecase.RecordDonationInput{
		DonorUID:   "uid-1",
		BankID:     uuid.New(),
		BloodGroup: entity.BloodAPositive,
		Units:      1,
		DonatedAt:  time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.DonationRecorded, donation.Status)
}

func TestRecordDonation_DeferredDonorRejected(t *testing.T) {
	f := newDonationServiceFixture(t)

	donor := donorProfile("uid-1")
	donor.RecordDonation(time.Now().Add(-24 * time.Hour))
	f.profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(donor, nil)

	_, err := f.svc.RecordDonation(context.Background(), usecase.RecordDonationInput{
		DonorUID:   "uid-1",
		BankID:     uuid.New(),
		BloodGroup: entity.BloodAPositive,
		Units:      1,
		DonatedAt:  time.Now(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrIneligibleDonor))
	f.donationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordDonation_DeferralWindowElapsed(t *testing.T) {
	f := newDonationServiceFixture(t)

	donor := donorProfile("uid-1")
	donor.RecordDonation(time.Now().Add(-60 * 24 * time.Hour))
	f.profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(donor, nil)
	f.donationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.RecordDonation(context.Background(), usecase.RecordDonationInput{
		DonorUID:   "uid-1",
		BankID:     uuid.New(),
		BloodGroup: entity.BloodAPositive,
		Units:      1,
		DonatedAt:  time.Now(),
	})

	require.NoError(t, err)
}

func TestVerifyDonation_DefersDonorAndCreditsInventory(t *testing.T) {
	f := newDonationServiceFixture(t)

	donation := recordedDonation()
	donor := donorProfile("uid-1")
	f.donationRepo.On("FindByID", mock.Anything, donation.ID).Return(donation, nil)
	f.donationRepo.On("Update", mock.Anything, mock.MatchedBy(func(d *entity.Donation) bool {
		return d.Status == entity.DonationVerified && d.VerifiedBy != nil && *d.VerifiedBy == "admin-1"
	})).Return(nil)
	f.profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(donor, nil)
	f.profileRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return !p.IsEligible && p.TotalDonations == 1 && p.NextEligibleDate != nil
	})).Return(nil)
	f.bankRepo.On("AdjustInventory", mock.Anything, donation.BankID, entity.BloodAPositive, 1).Return(nil)
	f.notifications.On("Notify", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UID == "uid-1" && n.Type == entity.NotificationDonation
	})).Return(nil)

	verified, err := f.svc.VerifyDonation(context.Background(), donation.ID, "admin-1")

	require.NoError(t, err)
	assert.Equal(t, entity.DonationVerified, verified.Status)
}

func TestVerifyDonation_AlreadyVerified(t *testing.T) {
	f := newDonationServiceFixture(t)

	donation := recordedDonation()
	donation.Status = entity.DonationVerified
	f.donationRepo.On("FindByID", mock.Anything, donation.ID).Return(donation, nil)

	_, err := f.svc.VerifyDonation(context.Background(), donation.ID, "admin-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidStatusTransition))
	f.bankRepo.AssertNotCalled(t, "AdjustInventory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyDonation_InventoryFailureRollsBack(t *testing.T) {
	f := newDonationServiceFixture(t)

	donation := recordedDonation()
	f.donationRepo.On("FindByID", mock.Anything, donation.ID).Return(donation, nil)
	f.donationRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.profileRepo.On("FindByUID", mock.Anything, "uid-1").Return(donorProfile("uid-1"), nil)
	f.profileRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.bankRepo.On("AdjustInventory", mock.Anything, donation.BankID, entity.BloodAPositive, 1).
		Return(errors.New("deadlock"))

	_, err := f.svc.VerifyDonation(context.Background(), donation.ID, "admin-1")

	require.Error(t, err)
	f.notifications.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestRejectDonation_NoSideEffects(t *testing.T) {
	f := newDonationServiceFixture(t)

	donation := recordedDonation()
	f.donationRepo.On("FindByID", mock.Anything, donation.ID).Return(donation, nil)
	f.donationRepo.On("Update", mock.Anything, mock.MatchedBy(func(d *entity.Donation) bool {
		return d.Status == entity.DonationRejected
	})).Return(nil)

	rejected, err := f.svc.RejectDonation(context.Background(), donation.ID, "admin-1")

	require.NoError(t, err)
	assert.Equal(t, entity.DonationRejected, rejected.Status)
	f.profileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.bankRepo.AssertNotCalled(t, "AdjustInventory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
