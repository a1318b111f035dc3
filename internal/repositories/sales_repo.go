package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopadmin/internal/common"
	"shopadmin/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PeriodType selects the calendar bucket for revenue aggregation.
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
	PeriodYearly  PeriodType = "yearly"
)

// Valid reports whether p is one of the supported period types.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

func (p PeriodType) truncUnit() string {
	switch p {
	case PeriodDaily:
		return "day"
	case PeriodWeekly:
		return "week"
	case PeriodMonthly:
		return "month"
	default:
		return "year"
	}
}

type SalesRepository interface {
	CreateSale(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Sale, error)
	List(ctx context.Context, filter *models.SaleFilter) ([]*models.Sale, error)

	SummaryTotals(ctx context.Context, start, end time.Time) (orderCount int, revenue float64, err error)
	PlatformBreakdown(ctx context.Context, start, end time.Time) ([]*models.PlatformSales, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]*models.TopProduct, error)
	RevenueByPeriod(ctx context.Context, period PeriodType, start, end time.Time, platform *string, categoryID *uuid.UUID) ([]*models.RevenueBucket, error)
	RevenueTotal(ctx context.Context, start, end time.Time, platform *string, categoryID *uuid.UUID) (float64, error)
}

type salesRepo struct {
	db Database
}

func NewSalesRepo(db Database) SalesRepository {
	return &salesRepo{db: db}
}

const saleColumns = `id, order_id, order_date, customer_id, total_amount, platform, status, created_at, updated_at`

func scanSale(row pgx.Row) (*models.Sale, error) {
	sale := &models.Sale{}
	err := row.Scan(&sale.ID, &sale.OrderID, &sale.OrderDate, &sale.CustomerID, &sale.TotalAmount,
		&sale.Platform, &sale.Status, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// CreateSale persists the sale, its items, and the per-item inventory
// decrements (with their audit rows) in one transaction. Any failure rolls the
// whole unit back. A duplicate order_id surfaces as a conflict, raced inserts
// included, via the unique constraint on sales.order_id.
func (r *salesRepo) CreateSale(ctx context.Context, sale *models.Sale) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO sales (id, order_id, order_date, customer_id, total_amount, platform, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`, sale.ID, sale.OrderID, sale.OrderDate, sale.CustomerID, sale.TotalAmount, sale.Platform, sale.Status)
	if isUniqueViolation(err) {
		return common.Conflictf("sale with order_id %q already exists", sale.OrderID)
	}
	if err != nil {
		return err
	}

	decrementReason := fmt.Sprintf("sale %s", sale.OrderID)
	for _, item := range sale.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
		`, item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
		if err != nil {
			return err
		}

		if _, err := applySaleDecrement(ctx, tx, item.ProductID, item.Quantity, decrementReason); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *salesRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	sale, err := scanSale(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("sale %s", id)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*models.Sale{sale}); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *salesRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE order_id = $1`
	sale, err := scanSale(r.db.QueryRow(ctx, query, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("sale with order_id %q", orderID)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*models.Sale{sale}); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *salesRepo) List(ctx context.Context, filter *models.SaleFilter) ([]*models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}
	argn := 0

	next := func() string {
		argn++
		return fmt.Sprintf("$%d", argn)
	}

	if filter.StartDate != nil {
		query += ` AND order_date >= ` + next()
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND order_date <= ` + next()
		args = append(args, *filter.EndDate)
	}
	if filter.Platform != nil {
		query += ` AND platform = ` + next()
		args = append(args, *filter.Platform)
	}
	if filter.Status != nil {
		query += ` AND status = ` + next()
		args = append(args, *filter.Status)
	}

	query += ` ORDER BY order_date DESC LIMIT ` + next()
	args = append(args, filter.Limit)
	query += ` OFFSET ` + next()
	args = append(args, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// loadItems attaches sale items to the given sales in one query.
func (r *salesRepo) loadItems(ctx context.Context, sales []*models.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*models.Sale, len(sales))
	ids := make([]uuid.UUID, 0, len(sales))
	for _, sale := range sales {
		sale.Items = []*models.SaleItem{}
		byID[sale.ID] = sale
		ids = append(ids, sale.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal, created_at
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY created_at
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.SaleItem{}
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.Subtotal, &item.CreatedAt); err != nil {
			return err
		}
		if sale, ok := byID[item.SaleID]; ok {
			sale.Items = append(sale.Items, item)
		}
	}
	return rows.Err()
}

func (r *salesRepo) SummaryTotals(ctx context.Context, start, end time.Time) (int, float64, error) {
	var orderCount int
	var revenue float64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(id), COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE order_date BETWEEN $1 AND $2
	`, start, end).Scan(&orderCount, &revenue)
	return orderCount, revenue, err
}

func (r *salesRepo) PlatformBreakdown(ctx context.Context, start, end time.Time) ([]*models.PlatformSales, error) {
	rows, err := r.db.Query(ctx, `
		SELECT platform, COUNT(id), COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE order_date BETWEEN $1 AND $2
		GROUP BY platform
		ORDER BY 3 DESC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdown []*models.PlatformSales
	for rows.Next() {
		entry := &models.PlatformSales{}
		if err := rows.Scan(&entry.Platform, &entry.OrderCount, &entry.Revenue); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, entry)
	}
	return breakdown, rows.Err()
}

func (r *salesRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]*models.TopProduct, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, SUM(si.quantity), COALESCE(SUM(si.subtotal), 0)
		FROM products p
		JOIN sale_items si ON si.product_id = p.id
		JOIN sales s ON s.id = si.sale_id
		WHERE s.order_date BETWEEN $1 AND $2
		GROUP BY p.id, p.name
		ORDER BY SUM(si.quantity) DESC, p.name
		LIMIT $3
	`, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []*models.TopProduct
	for rows.Next() {
		entry := &models.TopProduct{}
		if err := rows.Scan(&entry.ProductID, &entry.Name, &entry.TotalQuantity, &entry.TotalRevenue); err != nil {
			return nil, err
		}
		top = append(top, entry)
	}
	return top, rows.Err()
}

// RevenueByPeriod buckets sales revenue by calendar period. The category
// filter keeps sales with at least one item in the category and counts each
// matching sale once.
func (r *salesRepo) RevenueByPeriod(ctx context.Context, period PeriodType, start, end time.Time, platform *string, categoryID *uuid.UUID) ([]*models.RevenueBucket, error) {
	query := fmt.Sprintf(`
		SELECT date_trunc('%s', order_date) AS period, COALESCE(SUM(total_amount), 0), COUNT(id)
		FROM sales
		WHERE order_date BETWEEN $1 AND $2
	`, period.truncUnit())
	args := []any{start, end}

	query, args = appendSaleFilters(query, args, platform, categoryID)
	query += ` GROUP BY period ORDER BY period`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []*models.RevenueBucket
	for rows.Next() {
		bucket := &models.RevenueBucket{}
		if err := rows.Scan(&bucket.PeriodStart, &bucket.Revenue, &bucket.OrderCount); err != nil {
			return nil, err
		}
		buckets = append(buckets, bucket)
	}
	return buckets, rows.Err()
}

func (r *salesRepo) RevenueTotal(ctx context.Context, start, end time.Time, platform *string, categoryID *uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE order_date BETWEEN $1 AND $2
	`
	args := []any{start, end}
	query, args = appendSaleFilters(query, args, platform, categoryID)

	var revenue float64
	err := r.db.QueryRow(ctx, query, args...).Scan(&revenue)
	return revenue, err
}

func appendSaleFilters(query string, args []any, platform *string, categoryID *uuid.UUID) (string, []any) {
	if platform != nil {
		args = append(args, *platform)
		query += fmt.Sprintf(` AND platform = $%d`, len(args))
	}
	if categoryID != nil {
		args = append(args, *categoryID)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM sale_items si
			JOIN products p ON p.id = si.product_id
			WHERE si.sale_id = sales.id AND p.category_id = $%d
		)`, len(args))
	}
	return query, args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
