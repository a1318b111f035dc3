package analytics

import (
	"context"
	"fmt"
	"time"

	"shopadmin/internal/caching"
	"shopadmin/internal/common"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	topProductsLimit = 5
	summaryCacheTTL  = 5 * time.Minute
)

// Service computes read-only revenue analytics over recorded sales.
type Service struct {
	salesRepo repositories.SalesRepository
	cache     caching.CacheService
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(salesRepo repositories.SalesRepository, cache caching.CacheService, logger *zap.Logger) *Service {
	return &Service{
		salesRepo: salesRepo,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// Period describes the resolved window of an analytics query.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// SalesSummary is the aggregate view over one window.
type SalesSummary struct {
	Period            Period                  `json:"period"`
	TotalOrders       int                     `json:"total_orders"`
	TotalRevenue      float64                 `json:"total_revenue"`
	AverageOrderValue float64                 `json:"average_order_value"`
	Platforms         []*models.PlatformSales `json:"platforms"`
	TopProducts       []*models.TopProduct    `json:"top_products"`
}

// PeriodRevenue is one side of a period comparison.
type PeriodRevenue struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Revenue   float64   `json:"revenue"`
}

// RevenueComparison reports current vs previous window revenue. PercentChange
// is zero when the previous window had no revenue.
type RevenueComparison struct {
	PeriodType     string        `json:"period_type"`
	CurrentPeriod  PeriodRevenue `json:"current_period"`
	PreviousPeriod PeriodRevenue `json:"previous_period"`
	Change         float64       `json:"change"`
	PercentChange  float64       `json:"percent_change"`
}

// Summary aggregates order count, revenue, the per-platform breakdown and the
// top selling products over [start, end]. Missing bounds default to the
// trailing 30 days ending now.
func (s *Service) Summary(ctx context.Context, start, end *time.Time) (*SalesSummary, error) {
	endAt := s.now()
	if end != nil {
		endAt = *end
	}
	startAt := endAt.AddDate(0, 0, -30)
	if start != nil {
		startAt = *start
	}

	cacheKey := summaryCacheKey(startAt, endAt)
	cached := &SalesSummary{}
	if found, err := s.cache.GetJSON(ctx, cacheKey, cached); found {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("summary cache read failed", zap.Error(err))
	}

	totalOrders, totalRevenue, err := s.salesRepo.SummaryTotals(ctx, startAt, endAt)
	if err != nil {
		return nil, err
	}

	averageOrderValue := 0.0
	if totalOrders > 0 {
		averageOrderValue = totalRevenue / float64(totalOrders)
	}

	platforms, err := s.salesRepo.PlatformBreakdown(ctx, startAt, endAt)
	if err != nil {
		return nil, err
	}
	if platforms == nil {
		platforms = []*models.PlatformSales{}
	}

	topProducts, err := s.salesRepo.TopProducts(ctx, startAt, endAt, topProductsLimit)
	if err != nil {
		return nil, err
	}
	if topProducts == nil {
		topProducts = []*models.TopProduct{}
	}

	summary := &SalesSummary{
		Period:            Period{StartDate: startAt, EndDate: endAt},
		TotalOrders:       totalOrders,
		TotalRevenue:      totalRevenue,
		AverageOrderValue: averageOrderValue,
		Platforms:         platforms,
		TopProducts:       topProducts,
	}

	if err := s.cache.SetJSON(ctx, cacheKey, summary, summaryCacheTTL); err != nil {
		s.logger.Warn("summary cache write failed", zap.Error(err))
	}
	return summary, nil
}

// RevenueByPeriod returns calendar-bucketed revenue in ascending period order.
// The default window depends on the bucket size so each grain gets a useful
// number of buckets.
func (s *Service) RevenueByPeriod(ctx context.Context, period repositories.PeriodType, start, end *time.Time, platform *string, categoryID *uuid.UUID) ([]*models.RevenueBucket, error) {
	if !period.Valid() {
		return nil, common.Validationf("period_type must be one of daily, weekly, monthly, yearly")
	}

	endAt := s.now()
	if end != nil {
		endAt = *end
	}
	startAt := endAt.AddDate(0, 0, -defaultLookbackDays(period))
	if start != nil {
		startAt = *start
	}

	buckets, err := s.salesRepo.RevenueByPeriod(ctx, period, startAt, endAt, platform, categoryID)
	if err != nil {
		return nil, err
	}
	if buckets == nil {
		buckets = []*models.RevenueBucket{}
	}
	for _, bucket := range buckets {
		bucket.Period = periodLabel(period, bucket.PeriodStart)
	}
	return buckets, nil
}

// CompareRevenue sums revenue over two windows and reports the delta. Defaults
// make the windows contiguous: the previous period ends exactly where the
// current one begins.
func (s *Service) CompareRevenue(ctx context.Context, period repositories.PeriodType, currentStart, currentEnd, previousStart, previousEnd *time.Time, platform *string, categoryID *uuid.UUID) (*RevenueComparison, error) {
	if !period.Valid() {
		return nil, common.Validationf("period_type must be one of daily, weekly, monthly, yearly")
	}

	window := comparisonWindowDays(period)

	curEnd := s.now()
	if currentEnd != nil {
		curEnd = *currentEnd
	}
	curStart := curEnd.AddDate(0, 0, -window)
	if currentStart != nil {
		curStart = *currentStart
	}
	prevEnd := curStart
	if previousEnd != nil {
		prevEnd = *previousEnd
	}
	prevStart := prevEnd.AddDate(0, 0, -window)
	if previousStart != nil {
		prevStart = *previousStart
	}

	currentRevenue, err := s.salesRepo.RevenueTotal(ctx, curStart, curEnd, platform, categoryID)
	if err != nil {
		return nil, err
	}
	previousRevenue, err := s.salesRepo.RevenueTotal(ctx, prevStart, prevEnd, platform, categoryID)
	if err != nil {
		return nil, err
	}

	change := currentRevenue - previousRevenue
	percentChange := 0.0
	if previousRevenue > 0 {
		percentChange = change / previousRevenue * 100
	}

	return &RevenueComparison{
		PeriodType:     string(period),
		CurrentPeriod:  PeriodRevenue{StartDate: curStart, EndDate: curEnd, Revenue: currentRevenue},
		PreviousPeriod: PeriodRevenue{StartDate: prevStart, EndDate: prevEnd, Revenue: previousRevenue},
		Change:         change,
		PercentChange:  percentChange,
	}, nil
}

// RefreshSummaryCache recomputes and re-caches the default summary window.
// Called from the background scheduler so dashboard reads stay warm.
func (s *Service) RefreshSummaryCache(ctx context.Context) error {
	endAt := s.now()
	startAt := endAt.AddDate(0, 0, -30)
	if err := s.cache.Delete(ctx, summaryCacheKey(startAt, endAt)); err != nil {
		s.logger.Warn("summary cache delete failed", zap.Error(err))
	}
	_, err := s.Summary(ctx, &startAt, &endAt)
	return err
}

// summaryCacheKey encodes the exact window bounds. Callers may request
// sub-day windows, so the key must not truncate to calendar dates.
func summaryCacheKey(start, end time.Time) string {
	return fmt.Sprintf("shopadmin:analytics:summary:%d:%d", start.Unix(), end.Unix())
}

func defaultLookbackDays(period repositories.PeriodType) int {
	switch period {
	case repositories.PeriodDaily:
		return 30
	case repositories.PeriodWeekly:
		return 90
	case repositories.PeriodMonthly:
		return 365
	default:
		return 1095
	}
}

func comparisonWindowDays(period repositories.PeriodType) int {
	switch period {
	case repositories.PeriodDaily:
		return 1
	case repositories.PeriodWeekly:
		return 7
	case repositories.PeriodMonthly:
		return 30
	default:
		return 365
	}
}

func periodLabel(period repositories.PeriodType, bucketStart time.Time) string {
	switch period {
	case repositories.PeriodMonthly:
		return bucketStart.Format("2006-01")
	case repositories.PeriodYearly:
		return bucketStart.Format("2006")
	default:
		return bucketStart.Format("2006-01-02")
	}
}
