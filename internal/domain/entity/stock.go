package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia de un insumo en un laboratorio.
// Clave única: (LabID, ConsumableID). ReceivedQuantity es el acumulado de
// entradas por órdenes completadas; solo la conciliación de órdenes lo muta.
// RemainingQuantity es derivado: max(0, recibido - usado), nunca negativo.
type Stock struct {
	LabID             string
	ConsumableID      string
	ReceivedQuantity  decimal.Decimal
	UsedQuantity      decimal.Decimal
	RemainingQuantity decimal.Decimal
	Unit              string
	MinThreshold      decimal.Decimal
	Expiry            *time.Time
	BatchID           string
	UpdatedAt         time.Time
}

// BelowThreshold indica si la existencia restante está bajo el umbral mínimo.
func (s *Stock) BelowThreshold() bool {
	return s.MinThreshold.GreaterThan(decimal.Zero) && s.RemainingQuantity.LessThan(s.MinThreshold)
}
