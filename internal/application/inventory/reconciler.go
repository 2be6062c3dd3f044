package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// StatusNone representa la ausencia de estado previo (creación de la orden)
// o de estado nuevo (actualización parcial que no toca el estado).
const StatusNone = ""

type transition struct {
	from string
	to   string
}

// signByTransition es la tabla explícita (estado anterior × estado nuevo) ->
// signo del ajuste sobre el acumulado recibido. Toda combinación ausente es
// no-op: solo entrar o salir de COMPLETED mueve el libro.
var signByTransition = map[transition]int{
	{StatusNone, entity.OrderStatusCompleted}:                  +1,
	{entity.OrderStatusPending, entity.OrderStatusCompleted}:   +1,
	{entity.OrderStatusValidated, entity.OrderStatusCompleted}: +1,
	{entity.OrderStatusDelivered, entity.OrderStatusCompleted}: +1,

	{entity.OrderStatusCompleted, entity.OrderStatusPending}:   -1,
	{entity.OrderStatusCompleted, entity.OrderStatusValidated}: -1,
	{entity.OrderStatusCompleted, entity.OrderStatusDelivered}: -1,
}

// ReconcileDelta devuelve el ajuste que una transición de estado de orden
// induce sobre el libro de existencias: +qty al entrar en COMPLETED, -qty al
// salir de COMPLETED hacia un estado definido, cero en cualquier otro caso
// (incluye COMPLETED->COMPLETED y actualizaciones parciales sin estado nuevo).
func ReconcileDelta(quantity decimal.Decimal, oldStatus, newStatus string) decimal.Decimal {
	switch signByTransition[transition{from: oldStatus, to: newStatus}] {
	case +1:
		return quantity
	case -1:
		return quantity.Neg()
	default:
		return decimal.Zero
	}
}

// DeleteDelta devuelve el ajuste al eliminar una orden: -qty si estaba
// COMPLETED (su aporte debe revertirse antes de borrarla), cero en otro caso.
func DeleteDelta(quantity decimal.Decimal, status string) decimal.Decimal {
	if status == entity.OrderStatusCompleted {
		return quantity.Neg()
	}
	return decimal.Zero
}
