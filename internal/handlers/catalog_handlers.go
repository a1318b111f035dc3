package handlers

import (
	"net/http"

	"shopadmin/internal/common"
	"shopadmin/internal/models"
	"shopadmin/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CatalogHandlers handles category and product HTTP requests.
type CatalogHandlers struct {
	catalogSvc services.CatalogService
}

func NewCatalogHandlers(catalogSvc services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalogSvc: catalogSvc}
}

// CreateCategoryRequest represents the category creation payload.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *CatalogHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.catalogSvc.CreateCategory(ctx, category); err != nil {
		return httpError(err, "Failed to create category")
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandlers) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return httpError(err, "Invalid category id")
	}

	category, err := h.catalogSvc.GetCategory(ctx, categoryID)
	if err != nil {
		return httpError(err, "Failed to get category")
	}
	return c.JSON(http.StatusOK, category)
}

// ListCategoriesRequest represents query parameters for listing categories.
type ListCategoriesRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *CatalogHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	categories, err := h.catalogSvc.ListCategories(ctx, req.Limit, req.Offset)
	if err != nil {
		return httpError(err, "Failed to list categories")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// UpdateCategoryRequest represents the category update payload.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *CatalogHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return httpError(err, "Invalid category id")
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	category, err := h.catalogSvc.GetCategory(ctx, categoryID)
	if err != nil {
		return httpError(err, "Failed to get category")
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	if err := h.catalogSvc.UpdateCategory(ctx, category); err != nil {
		return httpError(err, "Failed to update category")
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CatalogHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return httpError(err, "Invalid category id")
	}

	if err := h.catalogSvc.DeleteCategory(ctx, categoryID); err != nil {
		return httpError(err, "Failed to delete category")
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateProductRequest represents the product creation payload.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	SKU         string  `json:"sku"`
	CategoryID  string  `json:"category_id"`
}

func (h *CatalogHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	categoryID, err := common.ValidateUUID(req.CategoryID, "category_id")
	if err != nil {
		return httpError(err, "Invalid category_id")
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SKU:         req.SKU,
		CategoryID:  categoryID,
	}
	if err := h.catalogSvc.CreateProduct(ctx, product); err != nil {
		return httpError(err, "Failed to create product")
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return httpError(err, "Invalid product id")
	}

	product, err := h.catalogSvc.GetProduct(ctx, productID)
	if err != nil {
		return httpError(err, "Failed to get product")
	}
	return c.JSON(http.StatusOK, product)
}

// ListProductsRequest represents query parameters for listing products.
type ListProductsRequest struct {
	CategoryID string `query:"category_id"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

func (h *CatalogHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		id, err := common.ValidateUUID(req.CategoryID, "category_id")
		if err != nil {
			return httpError(err, "Invalid category_id")
		}
		categoryID = &id
	}

	products, err := h.catalogSvc.ListProducts(ctx, categoryID, req.Limit, req.Offset)
	if err != nil {
		return httpError(err, "Failed to list products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
	})
}

// UpdateProductRequest represents the partial product update payload.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	SKU         *string  `json:"sku"`
	CategoryID  *string  `json:"category_id"`
}

func (h *CatalogHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return httpError(err, "Invalid product id")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	update := &models.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SKU:         req.SKU,
	}
	if req.CategoryID != nil {
		id, err := common.ValidateUUID(*req.CategoryID, "category_id")
		if err != nil {
			return httpError(err, "Invalid category_id")
		}
		update.CategoryID = &id
	}

	product, err := h.catalogSvc.UpdateProduct(ctx, productID, update)
	if err != nil {
		return httpError(err, "Failed to update product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return httpError(err, "Invalid product id")
	}

	if err := h.catalogSvc.DeleteProduct(ctx, productID); err != nil {
		return httpError(err, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}
