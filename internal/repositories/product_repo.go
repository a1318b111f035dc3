package repositories

import (
	"context"
	"errors"

	"shopadmin/internal/common"
	"shopadmin/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*models.Product, error)
	CountReferences(ctx context.Context, id uuid.UUID) (inventoryRows, saleItems int, err error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, name, description, price, sku, category_id, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.SKU, &product.CategoryID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, sku, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Description,
		product.Price, product.SKU, product.CategoryID)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("product %s", id)
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	product, err := scanProduct(r.db.QueryRow(ctx, query, sku))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("product with sku %q", sku)
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, sku = $5, category_id = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Description,
		product.Price, product.SKU, product.CategoryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("product %s", product.ID)
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("product %s", id)
	}
	return nil
}

func (r *productRepo) List(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{limit, offset}
	if categoryID != nil {
		query += ` WHERE category_id = $3`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// CountReferences reports how many inventory rows and sale items point at the
// product. Deletion is restricted while either count is non-zero.
func (r *productRepo) CountReferences(ctx context.Context, id uuid.UUID) (int, int, error) {
	var inventoryRows, saleItems int
	query := `
		SELECT
			(SELECT COUNT(*) FROM inventory WHERE product_id = $1),
			(SELECT COUNT(*) FROM sale_items WHERE product_id = $1)
	`
	if err := r.db.QueryRow(ctx, query, id).Scan(&inventoryRows, &saleItems); err != nil {
		return 0, 0, err
	}
	return inventoryRows, saleItems, nil
}
