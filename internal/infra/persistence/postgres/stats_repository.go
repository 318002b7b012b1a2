package postgres

import (
	"context"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
	"lifeline/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// statsRepository implements the repository.StatsRepository interface. All
// figures come from SQL counts and grouped aggregates.
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository is the constructor for statsRepository.
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{
		db: db,
	}
}

// DashboardStats produces the admin dashboard aggregates.
func (repo *statsRepository) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{
		DonorsByBloodGroup: make(map[entity.BloodGroup]int64),
	}

	counts := []struct {
		dest  *int64
		model any
		where string
		args  []any
	}{
		{&stats.TotalProfiles, &model.ProfileModel{}, "", nil},
		{&stats.TotalDonors, &model.ProfileModel{}, "role = ?", []any{entity.RoleDonor.String()}},
		{&stats.TotalBanks, &model.BloodBankModel{}, "", nil},
		{&stats.TotalDonations, &model.DonationModel{}, "", nil},
		{&stats.VerifiedDonations, &model.DonationModel{}, "status = ?", []any{string(entity.DonationVerified)}},
		{&stats.PendingRequests, &model.BloodRequestModel{}, "status = ?", []any{entity.RequestPendingVerification.String()}},
		{&stats.ActiveRequests, &model.BloodRequestModel{}, "status = ?", []any{entity.RequestActive.String()}},
		{&stats.ActiveCampaigns, &model.CampaignModel{}, "status = ?", []any{string(entity.CampaignActive)}},
	}

	for _, c := range counts {
		query := repo.db.WithContext(ctx).Model(c.model)
		if c.where != "" {
			query = query.Where(c.where, c.args...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, errors.Wrap(err, "failed to count dashboard stats")
		}
	}

	var groupRows []struct {
		BloodGroup string
		Total      int64
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Select("blood_group, COUNT(*) AS total").
		Where("role = ? AND blood_group IS NOT NULL", entity.RoleDonor.String()).
		Group("blood_group").
		Scan(&groupRows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to group donors by blood group")
	}

	for _, row := range groupRows {
		stats.DonorsByBloodGroup[entity.BloodGroup(row.BloodGroup)] = row.Total
	}

	return stats, nil
}
