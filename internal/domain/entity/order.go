package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de compra de insumos.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusValidated = "VALIDATED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCompleted = "COMPLETED"
)

// Unidades de medida aceptadas para insumos.
const (
	UnitUnit = "UNIT"
	UnitMl   = "ML"
	UnitL    = "L"
	UnitG    = "G"
	UnitKg   = "KG"
	UnitBox  = "BOX"
)

// IsValidOrderStatus valida que el estado pertenezca al enum de órdenes.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusValidated, OrderStatusDelivered, OrderStatusCompleted:
		return true
	}
	return false
}

// IsValidUnit valida que la unidad pertenezca al catálogo.
func IsValidUnit(u string) bool {
	switch u {
	case UnitUnit, UnitMl, UnitL, UnitG, UnitKg, UnitBox:
		return true
	}
	return false
}

// Order es una orden de compra de un insumo para un laboratorio.
// Al entrar en COMPLETED la cantidad se suma al stock; al salir de COMPLETED
// (o al eliminar una orden completada) se resta.
type Order struct {
	ID           string
	LabID        string
	ConsumableID string
	SupplierID   string
	Quantity     decimal.Decimal
	Unit         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
