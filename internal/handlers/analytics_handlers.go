package handlers

import (
	"net/http"

	"shopadmin/internal/analytics"
	"shopadmin/internal/common"
	"shopadmin/internal/reports"
	"shopadmin/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandlers handles revenue analytics and report export requests.
type AnalyticsHandlers struct {
	analyticsSvc *analytics.Service
	reportSvc    *reports.Service
}

func NewAnalyticsHandlers(analyticsSvc *analytics.Service, reportSvc *reports.Service) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		analyticsSvc: analyticsSvc,
		reportSvc:    reportSvc,
	}
}

// SummaryRequest represents query parameters for the sales summary.
type SummaryRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

func (h *AnalyticsHandlers) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	var req SummaryRequest
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

	summary, err := h.analyticsSvc.Summary(ctx, startDate, endDate)
	if err != nil {
		return httpError(err, "Failed to compute summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// RevenueByPeriodRequest represents query parameters for bucketed revenue.
type RevenueByPeriodRequest struct {
	PeriodType string `query:"period_type"`
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
	Platform   string `query:"platform"`
	CategoryID string `query:"category_id"`
}

func (h *AnalyticsHandlers) RevenueByPeriod(c echo.Context) error {
	ctx := c.Request().Context()

	var req RevenueByPeriodRequest
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
	platform, categoryID, err := parseRevenueFilters(req.Platform, req.CategoryID)
	if err != nil {
		return httpError(err, "Invalid filters")
	}

	buckets, err := h.analyticsSvc.RevenueByPeriod(ctx, repositories.PeriodType(req.PeriodType), startDate, endDate, platform, categoryID)
	if err != nil {
		return httpError(err, "Failed to compute revenue")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"period_type": req.PeriodType,
		"revenue":     buckets,
	})
}

// CompareRevenueRequest represents query parameters for period comparison.
type CompareRevenueRequest struct {
	PeriodType    string `query:"period_type"`
	CurrentStart  string `query:"current_start"`
	CurrentEnd    string `query:"current_end"`
	PreviousStart string `query:"previous_start"`
	PreviousEnd   string `query:"previous_end"`
	Platform      string `query:"platform"`
	CategoryID    string `query:"category_id"`
}

func (h *AnalyticsHandlers) CompareRevenue(c echo.Context) error {
	ctx := c.Request().Context()

	var req CompareRevenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	currentStart, err := parseTimeParam(req.CurrentStart, "current_start")
	if err != nil {
		return httpError(err, "Invalid current_start")
	}
	currentEnd, err := parseTimeParam(req.CurrentEnd, "current_end")
	if err != nil {
		return httpError(err, "Invalid current_end")
	}
	previousStart, err := parseTimeParam(req.PreviousStart, "previous_start")
	if err != nil {
		return httpError(err, "Invalid previous_start")
	}
	previousEnd, err := parseTimeParam(req.PreviousEnd, "previous_end")
	if err != nil {
		return httpError(err, "Invalid previous_end")
	}
	platform, categoryID, err := parseRevenueFilters(req.Platform, req.CategoryID)
	if err != nil {
		return httpError(err, "Invalid filters")
	}

	comparison, err := h.analyticsSvc.CompareRevenue(ctx, repositories.PeriodType(req.PeriodType),
		currentStart, currentEnd, previousStart, previousEnd, platform, categoryID)
	if err != nil {
		return httpError(err, "Failed to compare revenue")
	}
	return c.JSON(http.StatusOK, comparison)
}

// ExportRevenue renders the bucketed revenue to CSV in object storage and
// returns a presigned download link.
func (h *AnalyticsHandlers) ExportRevenue(c echo.Context) error {
	ctx := c.Request().Context()

	var req RevenueByPeriodRequest
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
	platform, categoryID, err := parseRevenueFilters(req.Platform, req.CategoryID)
	if err != nil {
		return httpError(err, "Invalid filters")
	}

	url, err := h.reportSvc.ExportRevenue(ctx, repositories.PeriodType(req.PeriodType), startDate, endDate, platform, categoryID)
	if err != nil {
		return httpError(err, "Failed to export revenue report")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"download_url": url,
	})
}

// ExportSummary renders the sales summary to CSV in object storage and
// returns a presigned download link.
func (h *AnalyticsHandlers) ExportSummary(c echo.Context) error {
	ctx := c.Request().Context()

	var req SummaryRequest
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

	url, err := h.reportSvc.ExportSummary(ctx, startDate, endDate)
	if err != nil {
		return httpError(err, "Failed to export summary report")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"download_url": url,
	})
}

func parseRevenueFilters(platformParam, categoryParam string) (*string, *uuid.UUID, error) {
	var platform *string
	if platformParam != "" {
		platform = &platformParam
	}
	var categoryID *uuid.UUID
	if categoryParam != "" {
		id, err := common.ValidateUUID(categoryParam, "category_id")
		if err != nil {
			return nil, nil, err
		}
		categoryID = &id
	}
	return platform, categoryID, nil
}
