package handlers

import (
	"net/http"

	"shopadmin/internal/common"
	"shopadmin/internal/models"
	"shopadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles stock level and adjustment HTTP requests.
type InventoryHandlers struct {
	inventorySvc services.InventoryService
}

func NewInventoryHandlers(inventorySvc services.InventoryService) *InventoryHandlers {
	return &InventoryHandlers{inventorySvc: inventorySvc}
}

// CreateInventoryRequest represents the inventory creation payload.
type CreateInventoryRequest struct {
	ProductID         string `json:"product_id"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold *int   `json:"low_stock_threshold"`
}

func (h *InventoryHandlers) CreateInventory(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return httpError(err, "Invalid product_id")
	}

	inventory, err := h.inventorySvc.Create(ctx, productID, req.Quantity, req.LowStockThreshold)
	if err != nil {
		return httpError(err, "Failed to create inventory")
	}
	return c.JSON(http.StatusCreated, inventory)
}

// ListInventoryRequest represents query parameters for listing inventory.
type ListInventoryRequest struct {
	LowStockOnly bool `query:"low_stock_only"`
	Limit        int  `query:"limit"`
	Offset       int  `query:"offset"`
}

func (h *InventoryHandlers) ListInventory(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	inventories, err := h.inventorySvc.List(ctx, req.LowStockOnly, req.Limit, req.Offset)
	if err != nil {
		return httpError(err, "Failed to list inventory")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"inventory": inventories,
	})
}

func (h *InventoryHandlers) GetInventory(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("productId"), "product id")
	if err != nil {
		return httpError(err, "Invalid product id")
	}

	inventory, err := h.inventorySvc.GetByProduct(ctx, productID)
	if err != nil {
		return httpError(err, "Failed to get inventory")
	}
	return c.JSON(http.StatusOK, inventory)
}

func (h *InventoryHandlers) GetInventoryHistory(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("productId"), "product id")
	if err != nil {
		return httpError(err, "Invalid product id")
	}

	withHistory, err := h.inventorySvc.GetWithHistory(ctx, productID)
	if err != nil {
		return httpError(err, "Failed to get inventory history")
	}
	return c.JSON(http.StatusOK, withHistory)
}

// AdjustInventoryRequest represents the partial stock adjustment payload.
type AdjustInventoryRequest struct {
	Quantity          *int    `json:"quantity"`
	LowStockThreshold *int    `json:"low_stock_threshold"`
	ChangeReason      *string `json:"change_reason"`
}

func (h *InventoryHandlers) AdjustInventory(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("productId"), "product id")
	if err != nil {
		return httpError(err, "Invalid product id")
	}

	var req AdjustInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	update := &models.InventoryUpdate{
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
	}
	inventory, err := h.inventorySvc.Adjust(ctx, productID, update, req.ChangeReason)
	if err != nil {
		return httpError(err, "Failed to adjust inventory")
	}
	return c.JSON(http.StatusOK, inventory)
}

func (h *InventoryHandlers) LowStockAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	alerts, err := h.inventorySvc.LowStockAlerts(ctx)
	if err != nil {
		return httpError(err, "Failed to list low stock alerts")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
	})
}
