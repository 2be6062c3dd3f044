package repository

import (
	"context"
	"time"

	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// MaintenanceRepository define el puerto de persistencia de registros de
// mantenimiento de equipos.
type MaintenanceRepository interface {
	Create(ctx context.Context, record *entity.MaintenanceRecord) error
	GetByID(ctx context.Context, id string) (*entity.MaintenanceRecord, error)
	Update(ctx context.Context, record *entity.MaintenanceRecord) error
	SetActive(ctx context.Context, id string, active bool) error
	ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.MaintenanceRecord, error)
	// ListDueBetween devuelve los registros activos cuya próxima fecha de
	// mantenimiento cae en [from, to], ordenados por próxima fecha ascendente.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*entity.MaintenanceRecord, error)
}
