package repository

import (
	"context"
	"time"

	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia de alertas.
// La creación pertenece al generador y la transición de estado al
// despachador; ningún otro componente escribe alertas.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	// ExistsSameDay responde si ya existe una alerta con la misma clave de
	// idempotencia (tipo, relacionado, día calendario de day).
	ExistsSameDay(ctx context.Context, alertType, relatedID string, day time.Time) (bool, error)
	// ListPending devuelve hasta limit alertas PENDING, las más antiguas primero.
	ListPending(ctx context.Context, limit int) ([]*entity.Alert, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Alert, error)
	// UpdateStatus fija el estado y, si sentAt no es nil, la fecha de envío.
	UpdateStatus(ctx context.Context, id, status string, sentAt *time.Time) error
}
