package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordUsageRequest registra consumo de un insumo.
type RecordUsageRequest struct {
	LabID        string          `json:"lab_id"`
	ConsumableID string          `json:"consumable_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// StockConfigRequest fija umbral mínimo, vencimiento y lote de una existencia.
// Expiry formato 2006-01-02; vacío = sin vencimiento.
type StockConfigRequest struct {
	LabID        string          `json:"lab_id"`
	ConsumableID string          `json:"consumable_id"`
	MinThreshold decimal.Decimal `json:"min_threshold"`
	Expiry       string          `json:"expiry"`
	BatchID      string          `json:"batch_id"`
}

// StockResponse representación HTTP de una existencia.
type StockResponse struct {
	LabID             string          `json:"lab_id"`
	ConsumableID      string          `json:"consumable_id"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	UsedQuantity      decimal.Decimal `json:"used_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	Unit              string          `json:"unit,omitempty"`
	MinThreshold      decimal.Decimal `json:"min_threshold"`
	Expiry            *time.Time      `json:"expiry,omitempty"`
	BatchID           string          `json:"batch_id,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
