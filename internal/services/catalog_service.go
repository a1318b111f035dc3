package services

import (
	"context"
	"strings"

	"shopadmin/internal/common"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"

	"github.com/google/uuid"
)

// CatalogService manages categories and products.
type CatalogService interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, update *models.ProductUpdate) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
}

func NewCatalogService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return common.Validationf("category name is required")
	}
	category.ID = uuid.New()
	return s.categoryRepo.Create(ctx, category)
}

func (s *catalogService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.categoryRepo.List(ctx, limit, offset)
}

func (s *catalogService) UpdateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return common.Validationf("category name is required")
	}
	return s.categoryRepo.Update(ctx, category)
}

// DeleteCategory refuses to delete a category that still has products.
func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return common.Conflictf("category %s has %d products", id, count)
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *catalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product.Name, product.Price, product.SKU); err != nil {
		return err
	}

	// Category must exist before the product can reference it.
	if _, err := s.categoryRepo.GetByID(ctx, product.CategoryID); err != nil {
		return err
	}

	existing, err := s.productRepo.GetBySKU(ctx, product.SKU)
	if err != nil && !common.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return common.Conflictf("product with sku %q already exists", product.SKU)
	}

	product.ID = uuid.New()
	return s.productRepo.Create(ctx, product)
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *catalogService) ListProducts(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*models.Product, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.productRepo.List(ctx, categoryID, limit, offset)
}

// UpdateProduct applies only the supplied fields; omitted fields are unchanged.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, update *models.ProductUpdate) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.SKU != nil && *update.SKU != product.SKU {
		existing, err := s.productRepo.GetBySKU(ctx, *update.SKU)
		if err != nil && !common.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, common.Conflictf("product with sku %q already exists", *update.SKU)
		}
		product.SKU = *update.SKU
	}
	if update.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *update.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *update.CategoryID
	}

	if err := validateProduct(product.Name, product.Price, product.SKU); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct is restricted while inventory or recorded sales reference the
// product, so the audit trail stays intact.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	inventoryRows, saleItems, err := s.productRepo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if inventoryRows > 0 || saleItems > 0 {
		return common.Conflictf("product %s is referenced by %d inventory rows and %d sale items", id, inventoryRows, saleItems)
	}
	return s.productRepo.Delete(ctx, id)
}

func validateProduct(name string, price float64, sku string) error {
	if strings.TrimSpace(name) == "" {
		return common.Validationf("product name is required")
	}
	if price <= 0 {
		return common.Validationf("product price must be positive")
	}
	if strings.TrimSpace(sku) == "" {
		return common.Validationf("product sku is required")
	}
	return nil
}
