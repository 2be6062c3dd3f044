package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
	"github.com/jhoicas/labops-api/internal/domain/repository"
)

// LedgerUseCase expone las operaciones del libro de existencias: ajuste del
// acumulado recibido (usado por la conciliación de órdenes), registro de
// consumo y configuración/consulta de existencias.
type LedgerUseCase struct {
	stockRepo repository.StockRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(stockRepo repository.StockRepository) *LedgerUseCase {
	return &LedgerUseCase{stockRepo: stockRepo}
}

// Adjust aplica delta al acumulado recibido de (labID, consumableID).
// La atomicidad por clave la garantiza el repositorio (incremento atómico);
// un fallo se propaga al llamador, nunca se descarta el delta.
func (uc *LedgerUseCase) Adjust(ctx context.Context, labID, consumableID string, delta decimal.Decimal, unit string) (*entity.Stock, error) {
	if labID == "" || consumableID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.AdjustReceived(ctx, labID, consumableID, delta, unit)
}

// RecordUsage registra el consumo de qty unidades del insumo y recalcula la
// existencia restante. La orden de magnitud del consumo no se valida contra
// lo restante: remaining queda acotado en cero por el repositorio.
func (uc *LedgerUseCase) RecordUsage(ctx context.Context, labID, consumableID string, qty decimal.Decimal) (*entity.Stock, error) {
	if labID == "" || consumableID == "" || !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.AddUsage(ctx, labID, consumableID, qty)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return stock, nil
}

// Configure fija el umbral mínimo, vencimiento y lote de la existencia.
func (uc *LedgerUseCase) Configure(ctx context.Context, labID, consumableID string, minThreshold decimal.Decimal, expiry *time.Time, batchID string) (*entity.Stock, error) {
	if labID == "" || consumableID == "" || minThreshold.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.UpsertConfig(ctx, labID, consumableID, minThreshold, expiry, batchID)
}

// ListByLab devuelve las existencias del laboratorio.
func (uc *LedgerUseCase) ListByLab(ctx context.Context, labID string) ([]*entity.Stock, error) {
	if labID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListByLab(ctx, labID)
}

// ListBelowThreshold devuelve las existencias bajo el umbral mínimo del
// laboratorio, con mayor déficit primero.
func (uc *LedgerUseCase) ListBelowThreshold(ctx context.Context, labID string) ([]*entity.Stock, error) {
	if labID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListBelowThreshold(ctx, labID)
}
