package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/labops-api/internal/application/inventory"
	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
	"github.com/jhoicas/labops-api/internal/domain/repository"
)

// UseCase gestiona órdenes de compra de insumos y dispara la conciliación del
// libro de existencias. La escritura de estado y el ajuste del libro corren
// en una sola transacción: un fallo del ajuste revierte el cambio de estado.
type UseCase struct {
	txRunner  inventory.TxRunner
	orderRepo repository.OrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner inventory.TxRunner, orderRepo repository.OrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo}
}

// CreateInput entrada para crear una orden. Status vacío equivale a PENDING;
// una orden puede nacer directamente en COMPLETED y concilia en el acto.
type CreateInput struct {
	LabID        string
	ConsumableID string
	SupplierID   string
	Quantity     decimal.Decimal
	Unit         string
	Status       string
}

// Create valida y persiste la orden. Si nace en COMPLETED, el alta y el
// ajuste +qty del libro ocurren en la misma transacción (estado previo
// ausente = entra a COMPLETED).
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Order, error) {
	if in.LabID == "" || in.ConsumableID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = entity.OrderStatusPending
	}
	if !entity.IsValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		LabID:        in.LabID,
		ConsumableID: in.ConsumableID,
		SupplierID:   in.SupplierID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		Status:       in.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		delta := inventory.ReconcileDelta(order.Quantity, inventory.StatusNone, order.Status)
		if delta.IsZero() {
			return nil
		}
		_, err := stockRepo.AdjustReceived(ctx, order.LabID, order.ConsumableID, delta, order.Unit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus transiciona la orden al nuevo estado y concilia el libro según
// la tabla de transiciones. Bloquea la fila de la orden para serializar
// transiciones concurrentes sobre la misma orden.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, newStatus string) (*entity.Order, error) {
	if id == "" || !entity.IsValidOrderStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Order
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		delta := inventory.ReconcileDelta(order.Quantity, order.Status, newStatus)
		if err := orderRepo.UpdateStatus(ctx, id, newStatus); err != nil {
			return err
		}
		if !delta.IsZero() {
			if _, err := stockRepo.AdjustReceived(ctx, order.LabID, order.ConsumableID, delta, order.Unit); err != nil {
				return err
			}
		}
		order.Status = newStatus
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina la orden. Si estaba COMPLETED revierte su aporte (-qty)
// antes de borrarla, en la misma transacción.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		delta := inventory.DeleteDelta(order.Quantity, order.Status)
		if !delta.IsZero() {
			if _, err := stockRepo.AdjustReceived(ctx, order.LabID, order.ConsumableID, delta, order.Unit); err != nil {
				return err
			}
		}
		return orderRepo.Delete(ctx, id)
	})
}

// GetByID devuelve la orden o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ListByLab devuelve las órdenes del laboratorio.
func (uc *UseCase) ListByLab(ctx context.Context, labID string, limit, offset int) ([]*entity.Order, error) {
	if labID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.ListByLab(ctx, labID, limit, offset)
}
