package services

import (
	"context"
	"time"

	"shopadmin/internal/caching"
	"shopadmin/internal/common"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SalesService interface {
	RecordSale(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	GetSaleByOrderID(ctx context.Context, orderID string) (*models.Sale, error)
	ListSales(ctx context.Context, filter *models.SaleFilter) ([]*models.Sale, error)
}

type salesService struct {
	salesRepo repositories.SalesRepository
	cache     caching.CacheService
	logger    *zap.Logger
}

func NewSalesService(salesRepo repositories.SalesRepository, cache caching.CacheService, logger *zap.Logger) SalesService {
	return &salesService{
		salesRepo: salesRepo,
		cache:     cache,
		logger:    logger,
	}
}

// RecordSale validates the payload, rejects duplicate order ids before any
// write, then hands the sale + items + inventory decrements to the repository
// as one transaction. Item subtotals are stored as supplied; the service does
// not recompute them from quantity and unit price.
func (s *salesService) RecordSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if sale.OrderID == "" {
		return nil, common.Validationf("order_id is required")
	}
	if sale.TotalAmount <= 0 {
		return nil, common.Validationf("total_amount must be positive")
	}
	for i, item := range sale.Items {
		if item.Quantity <= 0 {
			return nil, common.Validationf("items[%d].quantity must be positive", i)
		}
		if item.UnitPrice <= 0 {
			return nil, common.Validationf("items[%d].unit_price must be positive", i)
		}
		if item.Subtotal <= 0 {
			return nil, common.Validationf("items[%d].subtotal must be positive", i)
		}
	}

	existing, err := s.salesRepo.GetByOrderID(ctx, sale.OrderID)
	if err != nil && !common.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, common.Conflictf("sale with order_id %q already exists", sale.OrderID)
	}

	sale.ID = uuid.New()
	if sale.OrderDate.IsZero() {
		sale.OrderDate = time.Now()
	}
	if sale.Status == "" {
		sale.Status = models.SaleStatusCompleted
	}
	for _, item := range sale.Items {
		item.ID = uuid.New()
		item.SaleID = sale.ID
	}

	if err := s.salesRepo.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	for _, item := range sale.Items {
		if err := s.cache.DeleteInventory(ctx, item.ProductID); err != nil {
			s.logger.Warn("inventory cache invalidation failed",
				zap.String("product_id", item.ProductID.String()), zap.Error(err))
		}
	}

	return s.salesRepo.GetByID(ctx, sale.ID)
}

func (s *salesService) GetSale(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	return s.salesRepo.GetByID(ctx, id)
}

func (s *salesService) GetSaleByOrderID(ctx context.Context, orderID string) (*models.Sale, error) {
	return s.salesRepo.GetByOrderID(ctx, orderID)
}

func (s *salesService) ListSales(ctx context.Context, filter *models.SaleFilter) ([]*models.Sale, error) {
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	return s.salesRepo.List(ctx, filter)
}
