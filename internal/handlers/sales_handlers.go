package handlers

import (
	"net/http"
	"time"

	"shopadmin/internal/common"
	"shopadmin/internal/models"
	"shopadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// SalesHandlers handles sale recording and listing HTTP requests.
type SalesHandlers struct {
	salesSvc services.SalesService
}

func NewSalesHandlers(salesSvc services.SalesService) *SalesHandlers {
	return &SalesHandlers{salesSvc: salesSvc}
}

// parseTimeParam accepts RFC 3339 timestamps and bare dates.
func parseTimeParam(value, fieldName string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	return nil, common.Validationf("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", fieldName)
}

// SaleItemRequest represents one line item of a recorded sale.
type SaleItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// RecordSaleRequest represents the sale recording payload.
type RecordSaleRequest struct {
	OrderID     string            `json:"order_id"`
	OrderDate   *time.Time        `json:"order_date"`
	CustomerID  *string           `json:"customer_id"`
	TotalAmount float64           `json:"total_amount"`
	Platform    *string           `json:"platform"`
	Status      string            `json:"status"`
	Items       []SaleItemRequest `json:"items"`
}

func (h *SalesHandlers) RecordSale(c echo.Context) error {
	ctx := c.Request().Context()

	var req RecordSaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	sale := &models.Sale{
		OrderID:     req.OrderID,
		CustomerID:  req.CustomerID,
		TotalAmount: req.TotalAmount,
		Platform:    req.Platform,
		Status:      req.Status,
	}
	if req.OrderDate != nil {
		sale.OrderDate = *req.OrderDate
	}
	for _, item := range req.Items {
		productID, err := common.ValidateUUID(item.ProductID, "product_id")
		if err != nil {
			return httpError(err, "Invalid product_id")
		}
		sale.Items = append(sale.Items, &models.SaleItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}

	created, err := h.salesSvc.RecordSale(ctx, sale)
	if err != nil {
		return httpError(err, "Failed to record sale")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *SalesHandlers) GetSale(c echo.Context) error {
	ctx := c.Request().Context()

	saleID, err := common.ValidateUUID(c.Param("id"), "sale id")
	if err != nil {
		return httpError(err, "Invalid sale id")
	}

	sale, err := h.salesSvc.GetSale(ctx, saleID)
	if err != nil {
		return httpError(err, "Failed to get sale")
	}
	return c.JSON(http.StatusOK, sale)
}

func (h *SalesHandlers) GetSaleByOrderID(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.Param("orderId")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Order id is required")
	}

	sale, err := h.salesSvc.GetSaleByOrderID(ctx, orderID)
	if err != nil {
		return httpError(err, "Failed to get sale")
	}
	return c.JSON(http.StatusOK, sale)
}

// ListSalesRequest represents query parameters for listing sales.
type ListSalesRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Platform  string `query:"platform"`
	Status    string `query:"status"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

func (h *SalesHandlers) ListSales(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListSalesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	startDate, err := parseTimeParam(req.StartDate, "start_date")
	if err != nil {
		return httpError(err, "Invalid start_date")
	}
	endDate, err := parseTimeParam(req.EndDate, "end_date")
	if err != nil {
		return httpError(err, "Invalid end_date")
	}

	filter := &models.SaleFilter{
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}
	if req.Platform != "" {
		filter.Platform = &req.Platform
	}
	if req.Status != "" {
		filter.Status = &req.Status
	}

	sales, err := h.salesSvc.ListSales(ctx, filter)
	if err != nil {
		return httpError(err, "Failed to list sales")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sales": sales,
	})
}
