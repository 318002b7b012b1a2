// Package service contains hand-maintained testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"lifeline/internal/domain/service"
)

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)

	return args.Error(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokenPair(uid string, roles []string) (*service.TokenPair, error) {
	args := m.Called(uid, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

// MockIdentityVerifier is a mock implementation of service.IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

func NewMockIdentityVerifier(t *testing.T) *MockIdentityVerifier {
	m := &MockIdentityVerifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockIdentityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.ExternalIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.ExternalIdentity), args.Error(1)
}

// MockGeocoder is a mock implementation of service.Geocoder.
type MockGeocoder struct {
	mock.Mock
}

func NewMockGeocoder(t *testing.T) *MockGeocoder {
	m := &MockGeocoder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*service.Coordinates, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Coordinates), args.Error(1)
}

// MockPushService is a mock implementation of service.PushService.
type MockPushService struct {
	mock.Mock
}

func NewMockPushService(t *testing.T) *MockPushService {
	m := &MockPushService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPushService) Send(ctx context.Context, message *service.PushMessage) error {
	args := m.Called(ctx, message)

	return args.Error(0)
}

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *service.Event) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockQRCodeService is a mock implementation of service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GeneratePNG(content string, size int) ([]byte, error) {
	args := m.Called(content, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// MockMapService is a mock implementation of service.MapService.
type MockMapService struct {
	mock.Mock
}

func NewMockMapService(t *testing.T) *MockMapService {
	m := &MockMapService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMapService) EmbedURLForPlace(query string) string {
	args := m.Called(query)

	return args.String(0)
}

func (m *MockMapService) EmbedURLForCoordinates(lat, lng float64) string {
	args := m.Called(lat, lng)

	return args.String(0)
}
