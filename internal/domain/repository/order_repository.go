package repository

import (
	"context"

	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia de órdenes de compra.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetByIDForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para
	// serializar transiciones de estado concurrentes sobre la misma orden.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListByLab(ctx context.Context, labID string, limit, offset int) ([]*entity.Order, error)
}
