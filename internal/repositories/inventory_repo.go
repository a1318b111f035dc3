package repositories

import (
	"context"
	"errors"
	"time"

	"shopadmin/internal/common"
	"shopadmin/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InventoryRepository interface {
	Create(ctx context.Context, inventory *models.Inventory) error
	GetByProduct(ctx context.Context, productID uuid.UUID) (*models.Inventory, error)
	List(ctx context.Context, lowStockOnly bool, limit, offset int) ([]*models.Inventory, error)
	ListLowStock(ctx context.Context) ([]*models.Inventory, error)
	Adjust(ctx context.Context, productID uuid.UUID, update *models.InventoryUpdate, reason *string) (*models.Inventory, error)
	History(ctx context.Context, inventoryID uuid.UUID) ([]*models.InventoryHistory, error)
}

type inventoryRepo struct {
	db Database
}

func NewInventoryRepo(db Database) InventoryRepository {
	return &inventoryRepo{db: db}
}

const inventoryColumns = `id, product_id, quantity, low_stock_threshold, last_restock_date, created_at, updated_at`

func scanInventory(row pgx.Row) (*models.Inventory, error) {
	inventory := &models.Inventory{}
	err := row.Scan(&inventory.ID, &inventory.ProductID, &inventory.Quantity, &inventory.LowStockThreshold,
		&inventory.LastRestockDate, &inventory.CreatedAt, &inventory.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return inventory, nil
}

func (r *inventoryRepo) Create(ctx context.Context, inventory *models.Inventory) error {
	query := `
		INSERT INTO inventory (id, product_id, quantity, low_stock_threshold, last_restock_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, inventory.ID, inventory.ProductID, inventory.Quantity,
		inventory.LowStockThreshold, inventory.LastRestockDate)
	return err
}

func (r *inventoryRepo) GetByProduct(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1`
	inventory, err := scanInventory(r.db.QueryRow(ctx, query, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("inventory for product %s", productID)
	}
	if err != nil {
		return nil, err
	}
	return inventory, nil
}

func (r *inventoryRepo) List(ctx context.Context, lowStockOnly bool, limit, offset int) ([]*models.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory`
	if lowStockOnly {
		query += ` WHERE quantity <= low_stock_threshold`
	}
	query += ` ORDER BY updated_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventories(rows)
}

func (r *inventoryRepo) ListLowStock(ctx context.Context) ([]*models.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE quantity <= low_stock_threshold ORDER BY quantity`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventories(rows)
}

func collectInventories(rows pgx.Rows) ([]*models.Inventory, error) {
	var inventories []*models.Inventory
	for rows.Next() {
		inventory, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		inventories = append(inventories, inventory)
	}
	return inventories, rows.Err()
}

// Adjust applies a partial update to the inventory row for productID inside one
// transaction. The row is locked for the duration so concurrent adjustments and
// sale decrements cannot interleave. When the quantity actually changes exactly
// one history row is appended, and last_restock_date moves only on a strict
// increase.
func (r *inventoryRepo) Adjust(ctx context.Context, productID uuid.UUID, update *models.InventoryUpdate, reason *string) (*models.Inventory, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 FOR UPDATE`
	inventory, err := scanInventory(tx.QueryRow(ctx, query, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("inventory for product %s", productID)
	}
	if err != nil {
		return nil, err
	}

	previous := inventory.Quantity
	if update.Quantity != nil {
		inventory.Quantity = *update.Quantity
	}
	if update.LowStockThreshold != nil {
		inventory.LowStockThreshold = *update.LowStockThreshold
	}

	now := time.Now()
	if inventory.Quantity > previous {
		inventory.LastRestockDate = &now
	}

	_, err = tx.Exec(ctx, `
		UPDATE inventory
		SET quantity = $2, low_stock_threshold = $3, last_restock_date = $4, updated_at = NOW()
		WHERE id = $1
	`, inventory.ID, inventory.Quantity, inventory.LowStockThreshold, inventory.LastRestockDate)
	if err != nil {
		return nil, err
	}

	if inventory.Quantity != previous {
		if err := appendHistory(ctx, tx, inventory.ID, previous, inventory.Quantity, reason); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	inventory.UpdatedAt = now
	return inventory, nil
}

func (r *inventoryRepo) History(ctx context.Context, inventoryID uuid.UUID) ([]*models.InventoryHistory, error) {
	query := `
		SELECT id, inventory_id, previous_quantity, new_quantity, change_reason, change_date
		FROM inventory_history
		WHERE inventory_id = $1
		ORDER BY change_date DESC
	`
	rows, err := r.db.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*models.InventoryHistory
	for rows.Next() {
		entry := &models.InventoryHistory{}
		if err := rows.Scan(&entry.ID, &entry.InventoryID, &entry.PreviousQuantity, &entry.NewQuantity,
			&entry.ChangeReason, &entry.ChangeDate); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

// appendHistory writes one immutable audit row for a quantity transition.
func appendHistory(ctx context.Context, tx pgx.Tx, inventoryID uuid.UUID, previous, next int, reason *string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO inventory_history (id, inventory_id, previous_quantity, new_quantity, change_reason, change_date)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, uuid.New(), inventoryID, previous, next, reason)
	return err
}

// applySaleDecrement decrements stock for one sale item inside the sale's
// transaction. The quantity clamps at zero rather than failing the sale, and a
// missing inventory row is skipped: products without tracked inventory are
// tolerated. Returns whether an inventory row was touched.
func applySaleDecrement(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int, reason string) (bool, error) {
	var id uuid.UUID
	var current int
	err := tx.QueryRow(ctx, `SELECT id, quantity FROM inventory WHERE product_id = $1 FOR UPDATE`, productID).
		Scan(&id, &current)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	next := current - quantity
	if next < 0 {
		next = 0
	}
	if next == current {
		return true, nil
	}

	_, err = tx.Exec(ctx, `UPDATE inventory SET quantity = $2, updated_at = NOW() WHERE id = $1`, id, next)
	if err != nil {
		return false, err
	}
	return true, appendHistory(ctx, tx, id, current, next, &reason)
}
