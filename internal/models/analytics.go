package models

import (
	"time"

	"github.com/google/uuid"
)

// PlatformSales is one row of the per-platform sales breakdown.
type PlatformSales struct {
	Platform   *string `json:"platform"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// TopProduct is one row of the best-sellers ranking.
type TopProduct struct {
	ProductID     uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	TotalQuantity int       `json:"total_quantity"`
	TotalRevenue  float64   `json:"total_revenue"`
}

// RevenueBucket is one calendar-aligned aggregation bucket.
type RevenueBucket struct {
	PeriodStart time.Time `json:"-"`
	Period      string    `json:"period"`
	Revenue     float64   `json:"revenue"`
	OrderCount  int       `json:"order_count"`
}
