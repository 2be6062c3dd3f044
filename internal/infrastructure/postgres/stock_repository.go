package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/labops-api/internal/domain/entity"
	"github.com/jhoicas/labops-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). El ajuste del acumulado es un incremento atómico en el
// almacenamiento: dos órdenes completadas concurrentes sobre la misma clave
// no pierden actualizaciones.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `lab_id, consumable_id, received_quantity, used_quantity, remaining_quantity, unit, min_threshold, expiry, batch_id, updated_at`

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(
		&s.LabID, &s.ConsumableID,
		&s.ReceivedQuantity, &s.UsedQuantity, &s.RemainingQuantity,
		&s.Unit, &s.MinThreshold, &s.Expiry, &s.BatchID, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene la existencia de un insumo en un laboratorio; nil si no existe.
func (r *StockRepo) Get(ctx context.Context, labID, consumableID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM lab_stock WHERE lab_id = $1 AND consumable_id = $2`
	s, err := scanStock(r.q.QueryRow(ctx, query, labID, consumableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// AdjustReceived suma delta al acumulado recibido en una sola sentencia
// atómica: inserta la fila con received = max(delta, 0) si no existe, o
// incrementa y recalcula remaining = max(0, received - used) si existe.
func (r *StockRepo) AdjustReceived(ctx context.Context, labID, consumableID string, delta decimal.Decimal, unit string) (*entity.Stock, error) {
	query := `
		INSERT INTO lab_stock (lab_id, consumable_id, received_quantity, used_quantity, remaining_quantity, unit, min_threshold, updated_at)
		VALUES ($1, $2, GREATEST($3::numeric, 0), 0, GREATEST($3::numeric, 0), $4, 0, now())
		ON CONFLICT (lab_id, consumable_id)
		DO UPDATE SET
			received_quantity  = lab_stock.received_quantity + $3,
			remaining_quantity = GREATEST(lab_stock.received_quantity + $3 - lab_stock.used_quantity, 0),
			updated_at         = now()
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRow(ctx, query, labID, consumableID, delta, unit))
	if err != nil {
		return nil, fmt.Errorf("adjust received: %w", err)
	}
	return s, nil
}

// AddUsage suma qty al consumo acumulado y recalcula remaining con piso en
// cero. Devuelve nil si la fila no existe.
func (r *StockRepo) AddUsage(ctx context.Context, labID, consumableID string, qty decimal.Decimal) (*entity.Stock, error) {
	query := `
		UPDATE lab_stock SET
			used_quantity      = used_quantity + $3,
			remaining_quantity = GREATEST(received_quantity - (used_quantity + $3), 0),
			updated_at         = now()
		WHERE lab_id = $1 AND consumable_id = $2
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRow(ctx, query, labID, consumableID, qty))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("add usage: %w", err)
	}
	return s, nil
}

// UpsertConfig fija umbral, vencimiento y lote; crea la fila con cantidades
// en cero si no existe.
func (r *StockRepo) UpsertConfig(ctx context.Context, labID, consumableID string, minThreshold decimal.Decimal, expiry *time.Time, batchID string) (*entity.Stock, error) {
	query := `
		INSERT INTO lab_stock (lab_id, consumable_id, received_quantity, used_quantity, remaining_quantity, unit, min_threshold, expiry, batch_id, updated_at)
		VALUES ($1, $2, 0, 0, 0, '', $3, $4, $5, now())
		ON CONFLICT (lab_id, consumable_id)
		DO UPDATE SET
			min_threshold = EXCLUDED.min_threshold,
			expiry        = EXCLUDED.expiry,
			batch_id      = EXCLUDED.batch_id,
			updated_at    = now()
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRow(ctx, query, labID, consumableID, minThreshold, expiry, batchID))
	if err != nil {
		return nil, fmt.Errorf("upsert stock config: %w", err)
	}
	return s, nil
}

// ListByLab devuelve las existencias del laboratorio.
func (r *StockRepo) ListByLab(ctx context.Context, labID string) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM lab_stock WHERE lab_id = $1
		ORDER BY consumable_id`
	return r.list(ctx, query, labID)
}

// ListBelowThreshold devuelve existencias bajo el umbral mínimo, mayor
// déficit primero.
func (r *StockRepo) ListBelowThreshold(ctx context.Context, labID string) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM lab_stock
		WHERE lab_id = $1
		  AND min_threshold > 0
		  AND remaining_quantity < min_threshold
		ORDER BY (min_threshold - remaining_quantity) DESC`
	return r.list(ctx, query, labID)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
