package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
	"github.com/jhoicas/labops-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, type, title, message, recipient_id, related_id, status, sent_at, created_at`

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	var recipientID *string
	err := row.Scan(
		&a.ID, &a.Type, &a.Title, &a.Message,
		&recipientID, &a.RelatedID, &a.Status, &a.SentAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if recipientID != nil {
		a.RecipientID = *recipientID
	}
	return &a, nil
}

// Create persiste una alerta nueva. El índice único parcial sobre
// (type, related_id, día de created_at) convierte carreras de generación en
// ErrDuplicate en vez de duplicados.
func (r *AlertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, type, title, message, recipient_id, related_id, status, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	recipientID := (*string)(nil)
	if alert.RecipientID != "" {
		recipientID = &alert.RecipientID
	}
	_, err := r.q.Exec(ctx, query,
		alert.ID, alert.Type, alert.Title, alert.Message,
		recipientID, alert.RelatedID, alert.Status, alert.SentAt, alert.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// GetByID devuelve la alerta o nil si no existe.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	a, err := scanAlert(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// ExistsSameDay responde si ya existe una alerta con la clave de idempotencia
// (tipo, relacionado, día calendario).
func (r *AlertRepo) ExistsSameDay(ctx context.Context, alertType, relatedID string, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE type = $1 AND related_id = $2 AND created_at::date = $3::date
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, alertType, relatedID, day).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists alert same day: %w", err)
	}
	return exists, nil
}

// ListPending devuelve hasta limit alertas PENDING, más antiguas primero.
func (r *AlertRepo) ListPending(ctx context.Context, limit int) ([]*entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts WHERE status = $1
		ORDER BY created_at ASC LIMIT $2`
	return r.list(ctx, query, entity.AlertStatusPending, limit)
}

// ListByStatus devuelve alertas por estado, más recientes primero.
func (r *AlertRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts WHERE status = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, status, limit, offset)
}

// UpdateStatus fija el estado y, si sentAt no es nil, la fecha de envío.
func (r *AlertRepo) UpdateStatus(ctx context.Context, id, status string, sentAt *time.Time) error {
	query := `UPDATE alerts SET status = $2, sent_at = COALESCE($3, sent_at) WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, sentAt)
	if err != nil {
		return fmt.Errorf("update alert status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
