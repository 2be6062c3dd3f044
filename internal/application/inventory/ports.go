package inventory

import (
	"context"

	"github.com/jhoicas/labops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la escritura de estado de la
// orden y el ajuste del libro de existencias sean una sola unidad de trabajo:
// si el ajuste falla, la transición de estado no queda durable.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
	) error) error
}
