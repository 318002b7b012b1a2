package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "lifeline/internal/delivery/context"
	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/usecase"
)

// statsService implements the StatsUsecase interface.
type statsService struct {
	statsRepo repository.StatsRepository
	logger    *slog.Logger
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	StatsRepo repository.StatsRepository
	Logger    *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{
		statsRepo: params.StatsRepo,
		logger:    params.Logger,
	}
}

func (srv *statsService) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	stats, err := srv.statsRepo.DashboardStats(ctx)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).
			Warn("Dashboard aggregation failed", slog.Any("error", err))

		return nil, domainerrors.WrapMessage(err, "failed to load dashboard stats")
	}

	return stats, nil
}
