package repository

import (
	"context"

	"lifeline/internal/domain/entity"
)

// StatsRepository produces dashboard aggregates. Implementations must push
// the counting into SQL rather than loading rows.
type StatsRepository interface {
	DashboardStats(ctx context.Context) (*entity.DashboardStats, error)
}
