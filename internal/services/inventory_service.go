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

const inventoryCacheTTL = 5 * time.Minute

type InventoryService interface {
	Create(ctx context.Context, productID uuid.UUID, quantity int, threshold *int) (*models.Inventory, error)
	GetByProduct(ctx context.Context, productID uuid.UUID) (*models.Inventory, error)
	GetWithHistory(ctx context.Context, productID uuid.UUID) (*models.InventoryWithHistory, error)
	List(ctx context.Context, lowStockOnly bool, limit, offset int) ([]*models.Inventory, error)
	Adjust(ctx context.Context, productID uuid.UUID, update *models.InventoryUpdate, reason *string) (*models.Inventory, error)
	LowStockAlerts(ctx context.Context) ([]*models.Inventory, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	productRepo   repositories.ProductRepository
	cache         caching.CacheService
	logger        *zap.Logger
}

func NewInventoryService(inventoryRepo repositories.InventoryRepository, productRepo repositories.ProductRepository, cache caching.CacheService, logger *zap.Logger) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		cache:         cache,
		logger:        logger,
	}
}

// Create makes the single inventory row for a product. The product must exist
// and must not already have one.
func (s *inventoryService) Create(ctx context.Context, productID uuid.UUID, quantity int, threshold *int) (*models.Inventory, error) {
	if quantity < 0 {
		return nil, common.Validationf("quantity must not be negative")
	}
	lowStockThreshold := models.DefaultLowStockThreshold
	if threshold != nil {
		if *threshold < 0 {
			return nil, common.Validationf("low_stock_threshold must not be negative")
		}
		lowStockThreshold = *threshold
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	existing, err := s.inventoryRepo.GetByProduct(ctx, productID)
	if err != nil && !common.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, common.Conflictf("inventory for product %s already exists", productID)
	}

	inventory := &models.Inventory{
		ID:                uuid.New(),
		ProductID:         productID,
		Quantity:          quantity,
		LowStockThreshold: lowStockThreshold,
	}
	if err := s.inventoryRepo.Create(ctx, inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

func (s *inventoryService) GetByProduct(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	if cached, err := s.cache.GetInventory(ctx, productID); cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("inventory cache read failed", zap.String("product_id", productID.String()), zap.Error(err))
	}

	inventory, err := s.inventoryRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetInventory(ctx, inventory, inventoryCacheTTL); err != nil {
		s.logger.Warn("inventory cache write failed", zap.String("product_id", productID.String()), zap.Error(err))
	}
	return inventory, nil
}

func (s *inventoryService) GetWithHistory(ctx context.Context, productID uuid.UUID) (*models.InventoryWithHistory, error) {
	inventory, err := s.inventoryRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	history, err := s.inventoryRepo.History(ctx, inventory.ID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []*models.InventoryHistory{}
	}
	return &models.InventoryWithHistory{Inventory: *inventory, History: history}, nil
}

func (s *inventoryService) List(ctx context.Context, lowStockOnly bool, limit, offset int) ([]*models.Inventory, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.inventoryRepo.List(ctx, lowStockOnly, limit, offset)
}

// Adjust applies a partial update. Repositories append the audit row and move
// last_restock_date; this layer enforces the non-negative invariants and keeps
// the cache honest.
func (s *inventoryService) Adjust(ctx context.Context, productID uuid.UUID, update *models.InventoryUpdate, reason *string) (*models.Inventory, error) {
	if update.Quantity != nil && *update.Quantity < 0 {
		return nil, common.Validationf("quantity must not be negative")
	}
	if update.LowStockThreshold != nil && *update.LowStockThreshold < 0 {
		return nil, common.Validationf("low_stock_threshold must not be negative")
	}

	inventory, err := s.inventoryRepo.Adjust(ctx, productID, update, reason)
	if err != nil {
		return nil, err
	}

	if err := s.cache.DeleteInventory(ctx, productID); err != nil {
		s.logger.Warn("inventory cache invalidation failed", zap.String("product_id", productID.String()), zap.Error(err))
	}
	return inventory, nil
}

func (s *inventoryService) LowStockAlerts(ctx context.Context) ([]*models.Inventory, error) {
	return s.inventoryRepo.ListLowStock(ctx)
}
