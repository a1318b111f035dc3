package models

import (
	"time"

	"github.com/google/uuid"
)

const SaleStatusCompleted = "completed"

type Sale struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	OrderID     string      `json:"order_id" db:"order_id"`
	OrderDate   time.Time   `json:"order_date" db:"order_date"`
	CustomerID  *string     `json:"customer_id" db:"customer_id"`
	TotalAmount float64     `json:"total_amount" db:"total_amount"`
	Platform    *string     `json:"platform" db:"platform"`
	Status      string      `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
	Items       []*SaleItem `json:"items" db:"-"`
}

// SaleItem subtotal is caller-supplied and stored as given; it is not
// recomputed from quantity and unit price.
type SaleItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SaleID    uuid.UUID `json:"sale_id" db:"sale_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice float64   `json:"unit_price" db:"unit_price"`
	Subtotal  float64   `json:"subtotal" db:"subtotal"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SaleFilter holds list filters for sales queries.
type SaleFilter struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Platform  *string    `json:"platform,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}
