package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/types"
	"github.com/pageza/renewals/backend/internal/workflow"
)

// RenewalWindow is how far ahead a renewal counts as upcoming
const RenewalWindow = 90 * 24 * time.Hour

type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

func (s *DashboardService) GetStats(ctx context.Context) (*types.DashboardStats, error) {
	db := s.db.WithContext(ctx)
	now := s.now()
	horizon := now.Add(RenewalWindow)
	stats := &types.DashboardStats{}

	counts := []struct {
		dst   *int64
		model interface{}
		where string
		args  []interface{}
	}{
		{&stats.TotalCustomers, &models.Customer{}, "", nil},
		{&stats.ChurnedCustomers, &models.Customer{}, "churn = ?", []interface{}{true}},
		{&stats.PilotCustomers, &models.Customer{}, "pilot_customer = ?", []interface{}{true}},
		{&stats.UpcomingRenewals, &models.Subscription{}, "renewal_date >= ? AND renewal_date <= ?", []interface{}{now, horizon}},
		{&stats.AtRiskSubscriptions, &models.Subscription{}, "status <> ?", []interface{}{"healthy"}},
		{&stats.OpenFeedback, &models.Feedback{}, "phase <> ?", []interface{}{string(workflow.PhaseClosed)}},
		{&stats.OpenLessonsLearned, &models.LessonsLearned{}, "phase <> ?", []interface{}{string(workflow.PhaseClosed)}},
	}
	for _, c := range counts {
		query := db.Model(c.model)
		if c.where != "" {
			query = query.Where(c.where, c.args...)
		}
		if err := query.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	var total struct{ Sum float64 }
	if err := db.Model(&models.Subscription{}).
		Select("COALESCE(SUM(value), 0) AS sum").
		Where("renewal_date >= ? AND renewal_date <= ?", now, horizon).
		Scan(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	stats.UpcomingRenewalValue = total.Sum

	return stats, nil
}
