package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultLowStockThreshold = 10

type Inventory struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	ProductID         uuid.UUID  `json:"product_id" db:"product_id"`
	Quantity          int        `json:"quantity" db:"quantity"`
	LowStockThreshold int        `json:"low_stock_threshold" db:"low_stock_threshold"`
	LastRestockDate   *time.Time `json:"last_restock_date" db:"last_restock_date"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// InventoryHistory is an append-only record of a quantity transition. Rows are
// never updated or deleted once written.
type InventoryHistory struct {
	ID               uuid.UUID `json:"id" db:"id"`
	InventoryID      uuid.UUID `json:"inventory_id" db:"inventory_id"`
	PreviousQuantity int       `json:"previous_quantity" db:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity" db:"new_quantity"`
	ChangeReason     *string   `json:"change_reason" db:"change_reason"`
	ChangeDate       time.Time `json:"change_date" db:"change_date"`
}

// InventoryWithHistory is the detail view returned for a single product.
type InventoryWithHistory struct {
	Inventory
	History []*InventoryHistory `json:"history"`
}

// InventoryUpdate carries partial-update fields for an adjustment; nil means
// leave unchanged.
type InventoryUpdate struct {
	Quantity          *int `json:"quantity,omitempty"`
	LowStockThreshold *int `json:"low_stock_threshold,omitempty"`
}
