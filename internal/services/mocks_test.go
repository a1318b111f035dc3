package services

import (
	"context"
	"time"

	"shopadmin/internal/models"
	"shopadmin/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) List(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountProducts(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, categoryID, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) CountReferences(ctx context.Context, id uuid.UUID) (int, int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Create(ctx context.Context, inventory *models.Inventory) error {
	args := m.Called(ctx, inventory)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetByProduct(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) List(ctx context.Context, lowStockOnly bool, limit, offset int) ([]*models.Inventory, error) {
	args := m.Called(ctx, lowStockOnly, limit, offset)
	return args.Get(0).([]*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) ListLowStock(ctx context.Context) ([]*models.Inventory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) Adjust(ctx context.Context, productID uuid.UUID, update *models.InventoryUpdate, reason *string) (*models.Inventory, error) {
	args := m.Called(ctx, productID, update, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) History(ctx context.Context, inventoryID uuid.UUID) ([]*models.InventoryHistory, error) {
	args := m.Called(ctx, inventoryID)
	return args.Get(0).([]*models.InventoryHistory), args.Error(1)
}

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
