package usecase

import (
	"context"

	"lifeline/internal/domain/entity"
)

// StatsUsecase exposes the admin dashboard aggregates.
type StatsUsecase interface {
	Dashboard(ctx context.Context) (*entity.DashboardStats, error)
}
