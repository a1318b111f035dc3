package analytics

import (
	"context"
	"testing"
	"time"

	"shopadmin/internal/common"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type MockSalesRepository struct {
	mock.Mock
}

func (m *MockSalesRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSalesRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockSalesRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Sale, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockSalesRepository) List(ctx context.Context, filter *models.SaleFilter) ([]*models.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Sale), args.Error(1)
}

func (m *MockSalesRepository) SummaryTotals(ctx context.Context, start, end time.Time) (int, float64, error) {
	args := m.Called(ctx, start, end)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

func (m *MockSalesRepository) PlatformBreakdown(ctx context.Context, start, end time.Time) ([]*models.PlatformSales, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]*models.PlatformSales), args.Error(1)
}

func (m *MockSalesRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]*models.TopProduct, error) {
	args := m.Called(ctx, start, end, limit)
	return args.Get(0).([]*models.TopProduct), args.Error(1)
}

func (m *MockSalesRepository) RevenueByPeriod(ctx context.Context, period repositories.PeriodType, start, end time.Time, platform *string, categoryID *uuid.UUID) ([]*models.RevenueBucket, error) {
	args := m.Called(ctx, period, start, end, platform, categoryID)
	return args.Get(0).([]*models.RevenueBucket), args.Error(1)
}

func (m *MockSalesRepository) RevenueTotal(ctx context.Context, start, end time.Time, platform *string, categoryID *uuid.UUID) (float64, error) {
	args := m.Called(ctx, start, end, platform, categoryID)
	return args.Get(0).(float64), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetInventory(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockCacheService) SetInventory(ctx context.Context, inventory *models.Inventory, ttl time.Duration) error {
	args := m.Called(ctx, inventory, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteInventory(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockCacheService) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type AnalyticsServiceTestSuite struct {
	suite.Suite
	salesRepo *MockSalesRepository
	cache     *MockCacheService
	service   *Service
	context   context.Context
	now       time.Time
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.salesRepo = new(MockSalesRepository)
	suite.cache = new(MockCacheService)
	suite.service = NewService(suite.salesRepo, suite.cache, zap.NewNop())
	suite.now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.now }
	suite.context = context.Background()
}

func TestAnalyticsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}

func (suite *AnalyticsServiceTestSuite) TestSummary_DefaultsToTrailing30Days() {
	expectedStart := suite.now.AddDate(0, 0, -30)
	platform := "web"

	suite.cache.On("GetJSON", suite.context, mock.AnythingOfType("string"), mock.Anything).
		Return(false, nil)
	suite.salesRepo.On("SummaryTotals", suite.context, expectedStart, suite.now).
		Return(4, 200.0, nil)
	suite.salesRepo.On("PlatformBreakdown", suite.context, expectedStart, suite.now).
		Return([]*models.PlatformSales{{Platform: &platform, OrderCount: 4, Revenue: 200}}, nil)
	suite.salesRepo.On("TopProducts", suite.context, expectedStart, suite.now, 5).
		Return([]*models.TopProduct{}, nil)
	suite.cache.On("SetJSON", suite.context, mock.AnythingOfType("string"), mock.Anything, summaryCacheTTL).
		Return(nil)

	summary, err := suite.service.Summary(suite.context, nil, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, summary.TotalOrders)
	assert.Equal(suite.T(), 200.0, summary.TotalRevenue)
	assert.Equal(suite.T(), 50.0, summary.AverageOrderValue)
	assert.Equal(suite.T(), expectedStart, summary.Period.StartDate)
	assert.Equal(suite.T(), suite.now, summary.Period.EndDate)
}

func (suite *AnalyticsServiceTestSuite) TestSummary_ZeroOrders() {
	start := suite.now.AddDate(0, 0, -7)

	suite.cache.On("GetJSON", suite.context, mock.AnythingOfType("string"), mock.Anything).
		Return(false, nil)
	suite.salesRepo.On("SummaryTotals", suite.context, start, suite.now).
		Return(0, 0.0, nil)
	suite.salesRepo.On("PlatformBreakdown", suite.context, start, suite.now).
		Return([]*models.PlatformSales(nil), nil)
	suite.salesRepo.On("TopProducts", suite.context, start, suite.now, 5).
		Return([]*models.TopProduct(nil), nil)
	suite.cache.On("SetJSON", suite.context, mock.AnythingOfType("string"), mock.Anything, summaryCacheTTL).
		Return(nil)

	summary, err := suite.service.Summary(suite.context, &start, &suite.now)
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), summary.TotalOrders)
	assert.Zero(suite.T(), summary.AverageOrderValue)
	assert.NotNil(suite.T(), summary.Platforms)
	assert.NotNil(suite.T(), summary.TopProducts)
	assert.Empty(suite.T(), summary.Platforms)
}

func (suite *AnalyticsServiceTestSuite) TestSummary_SubDayWindowsGetDistinctCacheKeys() {
	firstStart := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	firstEnd := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)
	secondStart := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	secondEnd := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)

	// Same calendar dates, different times of day: must not collide.
	assert.NotEqual(suite.T(),
		summaryCacheKey(firstStart, firstEnd),
		summaryCacheKey(secondStart, secondEnd))

	suite.cache.On("GetJSON", suite.context, summaryCacheKey(secondStart, secondEnd), mock.Anything).
		Return(false, nil)
	suite.salesRepo.On("SummaryTotals", suite.context, secondStart, secondEnd).
		Return(2, 999.0, nil)
	suite.salesRepo.On("PlatformBreakdown", suite.context, secondStart, secondEnd).
		Return([]*models.PlatformSales{}, nil)
	suite.salesRepo.On("TopProducts", suite.context, secondStart, secondEnd, 5).
		Return([]*models.TopProduct{}, nil)
	suite.cache.On("SetJSON", suite.context, summaryCacheKey(secondStart, secondEnd), mock.Anything, summaryCacheTTL).
		Return(nil)

	summary, err := suite.service.Summary(suite.context, &secondStart, &secondEnd)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 999.0, summary.TotalRevenue)
	assert.Equal(suite.T(), secondEnd, summary.Period.EndDate)
}

func (suite *AnalyticsServiceTestSuite) TestSummary_CacheHitSkipsRepo() {
	suite.cache.On("GetJSON", suite.context, mock.AnythingOfType("string"), mock.Anything).
		Return(true, nil)

	_, err := suite.service.Summary(suite.context, nil, nil)
	assert.NoError(suite.T(), err)
	suite.salesRepo.AssertNotCalled(suite.T(), "SummaryTotals", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AnalyticsServiceTestSuite) TestRevenueByPeriod_MonthlyLabels() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	buckets := []*models.RevenueBucket{
		{PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Revenue: 100, OrderCount: 1},
		{PeriodStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Revenue: 75, OrderCount: 2},
	}

	suite.salesRepo.On("RevenueByPeriod", suite.context, repositories.PeriodMonthly, start, end, (*string)(nil), (*uuid.UUID)(nil)).
		Return(buckets, nil)

	result, err := suite.service.RevenueByPeriod(suite.context, repositories.PeriodMonthly, &start, &end, nil, nil)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), "2024-01", result[0].Period)
	assert.Equal(suite.T(), "2024-02", result[1].Period)
}

func (suite *AnalyticsServiceTestSuite) TestRevenueByPeriod_DailyDefaultLookback() {
	expectedStart := suite.now.AddDate(0, 0, -30)

	suite.salesRepo.On("RevenueByPeriod", suite.context, repositories.PeriodDaily, expectedStart, suite.now, (*string)(nil), (*uuid.UUID)(nil)).
		Return([]*models.RevenueBucket(nil), nil)

	result, err := suite.service.RevenueByPeriod(suite.context, repositories.PeriodDaily, nil, nil, nil, nil)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), result)
	assert.Empty(suite.T(), result)
}

func (suite *AnalyticsServiceTestSuite) TestRevenueByPeriod_InvalidPeriod() {
	result, err := suite.service.RevenueByPeriod(suite.context, "hourly", nil, nil, nil, nil)
	assert.Nil(suite.T(), result)
	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *AnalyticsServiceTestSuite) TestCompareRevenue_DefaultsAreContiguous() {
	curStart := suite.now.AddDate(0, 0, -7)
	prevStart := curStart.AddDate(0, 0, -7)

	suite.salesRepo.On("RevenueTotal", suite.context, curStart, suite.now, (*string)(nil), (*uuid.UUID)(nil)).
		Return(150.0, nil)
	suite.salesRepo.On("RevenueTotal", suite.context, prevStart, curStart, (*string)(nil), (*uuid.UUID)(nil)).
		Return(100.0, nil)

	comparison, err := suite.service.CompareRevenue(suite.context, repositories.PeriodWeekly, nil, nil, nil, nil, nil, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 50.0, comparison.Change)
	assert.Equal(suite.T(), 50.0, comparison.PercentChange)
	assert.Equal(suite.T(), curStart, comparison.PreviousPeriod.EndDate)
}

func (suite *AnalyticsServiceTestSuite) TestCompareRevenue_ZeroPreviousRevenue() {
	curStart := suite.now.AddDate(0, 0, -1)
	prevStart := curStart.AddDate(0, 0, -1)

	suite.salesRepo.On("RevenueTotal", suite.context, curStart, suite.now, (*string)(nil), (*uuid.UUID)(nil)).
		Return(80.0, nil)
	suite.salesRepo.On("RevenueTotal", suite.context, prevStart, curStart, (*string)(nil), (*uuid.UUID)(nil)).
		Return(0.0, nil)

	comparison, err := suite.service.CompareRevenue(suite.context, repositories.PeriodDaily, nil, nil, nil, nil, nil, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 80.0, comparison.Change)
	assert.Zero(suite.T(), comparison.PercentChange)
}

func (suite *AnalyticsServiceTestSuite) TestCompareRevenue_InvalidPeriod() {
	comparison, err := suite.service.CompareRevenue(suite.context, "quarterly", nil, nil, nil, nil, nil, nil)
	assert.Nil(suite.T(), comparison)
	assert.True(suite.T(), common.IsValidation(err))
}
