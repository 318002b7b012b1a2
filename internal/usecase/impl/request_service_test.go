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
	"lifeline/internal/errors"
	mockrepo "lifeline/internal/mocks/repository"
	mockusecase "lifeline/internal/mocks/usecase"
	"lifeline/internal/usecase"
)

type requestServiceFixture struct {
	svc           usecase.BloodRequestUsecase
	requestRepo   *mockrepo.MockBloodRequestRepository
	notifications *mockusecase.MockNotificationUsecase
}

func newRequestServiceFixture(t *testing.T) *requestServiceFixture {
	t.Helper()

	requestRepo := mockrepo.NewMockBloodRequestRepository(t)
	notifications := mockusecase.NewMockNotificationUsecase(t)
	factory := &mockrepo.StubRepositoryFactory{Requests: requestRepo}

	svc := NewRequestService(RequestServiceParams{
		TxManager:     &mockrepo.FakeTransactionManager{Factory: factory},
		RequestRepo:   requestRepo,
		Notifications: notifications,
		Logger:        slog.Default(),
	})

	return &requestServiceFixture{
		svc:           svc,
		requestRepo:   requestRepo,
		notifications: notifications,
	}
}

func pendingRequest() *entity.BloodRequest {
	return &entity.BloodRequest{
		ID:           uuid.New(),
		RequesterUID: "uid-1",
		PatientName:  "Pat",
		BloodGroup:   entity.BloodOPositive,
		Units:        2,
		Urgency:      entity.UrgencyHigh,
		Status:       entity.RequestPendingVerification,
	}
}

func TestCreateRequest_StartsPendingVerification(t *testing.T) {
	f := newRequestServiceFixture(t)

	f.requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.BloodRequest) bool {
		return r.Status == entity.RequestPendingVerification && r.Units == 2
	})).Return(nil)

	request, err := f.svc.CreateRequest(context.Background(), usecase.CreateRequestInput{
		RequesterUID: "uid-1",
		PatientName:  "Pat",
		BloodGroup:   entity.BloodOPositive,
		Units:        2,
		Urgency:      entity.UrgencyHigh,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RequestPendingVerification, request.Status)
}

func TestCreateRequest_ValidatesInput(t *testing.T) {
	f := newRequestServiceFixture(t)

	cases := []usecase.CreateRequestInput{
		{BloodGroup: entity.BloodGroup("Z+"), Units: 1, Urgency: entity.UrgencyLow},
		{BloodGroup: entity.BloodOPositive, Units: 1, Urgency: entity.RequestUrgency("panic")},
		{BloodGroup: entity.BloodOPositive, Units: 0, Urgency: entity.UrgencyLow},
	}

	for _, input := range cases {
		_, err := f.svc.CreateRequest(context.Background(), input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
	}
}

func TestChangeStatus_LegalTransitionNotifiesRequester(t *testing.T) {
	f := newRequestServiceFixture(t)

	request := pendingRequest()
	f.requestRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	f.requestRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *entity.BloodRequest) bool {
		return r.Status == entity.RequestActive
	})).Return(nil)
	f.notifications.On("Notify", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UID == "uid-1" && n.Type == entity.NotificationRequestUpdate
	})).Return(nil)

	updated, err := f.svc.ChangeStatus(context.Background(), request.ID, entity.RequestActive)

	require.NoError(t, err)
	assert.Equal(t, entity.RequestActive, updated.Status)
}

func TestChangeStatus_IllegalTransition(t *testing.T) {
	f := newRequestServiceFixture(t)

	request := pendingRequest()
	f.requestRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)

	_, err := f.svc.ChangeStatus(context.Background(), request.ID, entity.RequestFulfilled)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidStatusTransition))
	f.requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.notifications.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestChangeStatus_TerminalStateCannotMove(t *testing.T) {
	f := newRequestServiceFixture(t)

	request := pendingRequest()
	request.Status = entity.RequestFulfilled
	f.requestRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)

	_, err := f.svc.ChangeStatus(context.Background(), request.ID, entity.RequestActive)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidStatusTransition))
}

func TestChangeStatus_NotificationFailureDoesNotFailChange(t *testing.T) {
	f := newRequestServiceFixture(t)

	request := pendingRequest()
	f.requestRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	f.requestRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.notifications.On("Notify", mock.Anything, mock.Anything).
		Return(errors.New("notification store down"))

	updated, err := f.svc.ChangeStatus(context.Background(), request.ID, entity.RequestRejected)

	require.NoError(t, err)
	assert.Equal(t, entity.RequestRejected, updated.Status)
}

func TestChangeStatus_UnknownRequest(t *testing.T) {
	f := newRequestServiceFixture(t)

	id := uuid.New()
	f.requestRepo.On("FindByID", mock.Anything, id).
		Return(nil, repository.ErrRequestNotFound)

	_, err := f.svc.ChangeStatus(context.Background(), id, entity.RequestActive)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
