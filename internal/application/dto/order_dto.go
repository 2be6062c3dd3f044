package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest alta de orden de compra. Status vacío = PENDING.
type CreateOrderRequest struct {
	LabID        string          `json:"lab_id"`
	ConsumableID string          `json:"consumable_id"`
	SupplierID   string          `json:"supplier_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Status       string          `json:"status"`
}

// UpdateOrderStatusRequest transición de estado de una orden.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse representación HTTP de una orden.
type OrderResponse struct {
	ID           string          `json:"id"`
	LabID        string          `json:"lab_id"`
	ConsumableID string          `json:"consumable_id"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
