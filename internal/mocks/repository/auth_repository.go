package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"lifeline/internal/domain/entity"
)

// MockAuthRepository is a mock implementation of repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func NewMockAuthRepository(t *testing.T) *MockAuthRepository {
	m := &MockAuthRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthRepository) Create(ctx context.Context, auth *entity.Authentication) error {
	args := m.Called(ctx, auth)

	return args.Error(0)
}

func (m *MockAuthRepository) FindByEmail(ctx context.Context, email string) (*entity.Authentication, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Authentication), args.Error(1)
}

func (m *MockAuthRepository) FindByUID(ctx context.Context, uid string) (*entity.Authentication, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Authentication), args.Error(1)
}

func (m *MockAuthRepository) UpdatePasswordHash(ctx context.Context, uid, passwordHash string) error {
	args := m.Called(ctx, uid, passwordHash)

	return args.Error(0)
}

func (m *MockAuthRepository) DeleteByUID(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)

	return args.Error(0)
}

// MockRefreshTokenRepository is a mock implementation of repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func NewMockRefreshTokenRepository(t *testing.T) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllByUID(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}
