package jobs

import (
	"context"

	"shopadmin/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LowStockMonitor scans inventory for rows at or below their per-row
// threshold and logs an alert for each.
type LowStockMonitor struct {
	inventoryRepo repositories.InventoryRepository
	productRepo   repositories.ProductRepository
	logger        *zap.Logger
}

type LowStockAlert struct {
	ProductID    uuid.UUID
	ProductName  string
	CurrentStock int
	Threshold    int
}

func NewLowStockMonitor(inventoryRepo repositories.InventoryRepository, productRepo repositories.ProductRepository, logger *zap.Logger) *LowStockMonitor {
	return &LowStockMonitor{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		logger:        logger,
	}
}

// CheckLowStock returns an alert for every inventory row whose quantity is at
// or below its threshold. Rows whose product cannot be resolved are skipped
// rather than failing the whole scan.
func (m *LowStockMonitor) CheckLowStock(ctx context.Context) ([]LowStockAlert, error) {
	inventories, err := m.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		m.logger.Error("low stock scan failed", zap.Error(err))
		return nil, err
	}

	alerts := make([]LowStockAlert, 0, len(inventories))
	for _, inv := range inventories {
		product, err := m.productRepo.GetByID(ctx, inv.ProductID)
		if err != nil {
			m.logger.Warn("product lookup failed during low stock scan",
				zap.String("product_id", inv.ProductID.String()), zap.Error(err))
			continue
		}
		alerts = append(alerts, LowStockAlert{
			ProductID:    inv.ProductID,
			ProductName:  product.Name,
			CurrentStock: inv.Quantity,
			Threshold:    inv.LowStockThreshold,
		})
	}
	return alerts, nil
}

func (m *LowStockMonitor) LogAlerts(alerts []LowStockAlert) {
	if len(alerts) == 0 {
		m.logger.Debug("no low stock alerts")
		return
	}
	for _, alert := range alerts {
		m.logger.Warn("low stock",
			zap.String("product_id", alert.ProductID.String()),
			zap.String("product", alert.ProductName),
			zap.Int("quantity", alert.CurrentStock),
			zap.Int("threshold", alert.Threshold))
	}
}

// Run is the scheduled entrypoint.
func (m *LowStockMonitor) Run(ctx context.Context) error {
	alerts, err := m.CheckLowStock(ctx)
	if err != nil {
		return err
	}
	m.LogAlerts(alerts)
	return nil
}
