// Package repository contains hand-maintained testify mocks for the domain
// repository interfaces.
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
)

// MockProfileRepository is a mock implementation of repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

// NewMockProfileRepository creates the mock and registers expectation
// assertion on test cleanup.
func NewMockProfileRepository(t *testing.T) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *MockProfileRepository) FindByUID(ctx context.Context, uid string) (*entity.Profile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *MockProfileRepository) List(ctx context.Context, filter repository.ProfileListFilter) ([]*entity.Profile, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Profile), args.Error(1)
}
