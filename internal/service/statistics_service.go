package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hrms/internal/cache"
	"hrms/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "loan_stats"
	statsCacheTTL = 60 * time.Second
)

type StatisticsService interface {
	GetStats(ctx context.Context) (model.LoanStats, error)
}

type statisticsService struct {
	db    *gorm.DB
	cache cache.CacheRepository
}

func NewStatisticsService(db *gorm.DB, cacheRepo cache.CacheRepository) StatisticsService {
	return &statisticsService{db: db, cache: cacheRepo}
}

// GetStats aggregates the loan portfolio for the dashboard. Results are cached
// briefly since every back-office home screen requests them.
func (s *statisticsService) GetStats(ctx context.Context) (model.LoanStats, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, statsCacheKey); ok {
			var stats model.LoanStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats := model.LoanStats{
		CountByStatus:    make(map[string]int64),
		TotalDisbursed:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
		TotalCollected:   decimal.Zero,
		GeneratedAt:      time.Now(),
	}

	var statusCounts []struct {
		Status string
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&model.Loan{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return model.LoanStats{}, err
	}
	for _, sc := range statusCounts {
		stats.CountByStatus[sc.Status] = sc.Count
	}

	var totals struct {
		Disbursed   decimal.Decimal
		Outstanding decimal.Decimal
		Collected   decimal.Decimal
	}
	if err := s.db.WithContext(ctx).Model(&model.Loan{}).
		Select(`COALESCE(SUM(CASE WHEN status IN ('disbursed','active','completed') THEN principal ELSE 0 END), 0) as disbursed,
			COALESCE(SUM(CASE WHEN status IN ('disbursed','active') THEN outstanding_balance ELSE 0 END), 0) as outstanding,
			COALESCE(SUM(total_paid), 0) as collected`).
		Scan(&totals).Error; err != nil {
		return model.LoanStats{}, err
	}
	stats.TotalDisbursed = totals.Disbursed
	stats.TotalOutstanding = totals.Outstanding
	stats.TotalCollected = totals.Collected

	if err := s.db.WithContext(ctx).Model(&model.LoanRepayment{}).
		Joins("JOIN loans ON loans.id = loan_repayments.loan_id").
		Where("loan_repayments.due_date < ? AND loan_repayments.status NOT IN ?", time.Now(),
			[]string{model.RepaymentStatusPaid, model.RepaymentStatusWaived}).
		Where("loans.status IN ?", []string{model.LoanStatusActive, model.LoanStatusDisbursed}).
		Count(&stats.OverdueCount).Error; err != nil {
		return model.LoanStats{}, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			if cacheErr := s.cache.Set(ctx, statsCacheKey, string(encoded), statsCacheTTL); cacheErr != nil {
				log.Printf("failed to cache loan stats: %v", cacheErr)
			}
		}
	}

	return stats, nil
}
