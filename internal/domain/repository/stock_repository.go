package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// StockRepository define el puerto para el libro de existencias por
// (laboratorio, insumo). Los ajustes deben ser atómicos por clave: el
// adaptador usa un incremento atómico en el almacenamiento (o bloqueo de
// fila dentro de una transacción) para evitar lost updates concurrentes.
type StockRepository interface {
	Get(ctx context.Context, labID, consumableID string) (*entity.Stock, error)
	// AdjustReceived suma delta al acumulado recibido de forma atómica.
	// Si la fila no existe la crea con received = max(delta, 0).
	// Recalcula remaining = max(0, received - used). Devuelve la fila resultante.
	AdjustReceived(ctx context.Context, labID, consumableID string, delta decimal.Decimal, unit string) (*entity.Stock, error)
	// AddUsage suma qty al consumo acumulado y recalcula remaining.
	// Devuelve nil si la fila no existe.
	AddUsage(ctx context.Context, labID, consumableID string, qty decimal.Decimal) (*entity.Stock, error)
	// UpsertConfig fija umbral mínimo, vencimiento y lote; crea la fila con
	// cantidades en cero si no existe.
	UpsertConfig(ctx context.Context, labID, consumableID string, minThreshold decimal.Decimal, expiry *time.Time, batchID string) (*entity.Stock, error)
	ListByLab(ctx context.Context, labID string) ([]*entity.Stock, error)
	// ListBelowThreshold devuelve las existencias con remaining < min_threshold
	// (umbral > 0), ordenadas por déficit descendente.
	ListBelowThreshold(ctx context.Context, labID string) ([]*entity.Stock, error)
}
