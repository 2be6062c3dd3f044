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

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo implementación de MaintenanceRepository sobre PostgreSQL.
type MaintenanceRepo struct {
	q Querier
}

// NewMaintenanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

const maintenanceColumns = `id, equipment_id, type, frequency, effective_date, last_maintenance_date, next_maintenance_date, status, active, technician_id, created_at, updated_at`

func scanMaintenance(row pgx.Row) (*entity.MaintenanceRecord, error) {
	var m entity.MaintenanceRecord
	var technicianID *string
	err := row.Scan(
		&m.ID, &m.EquipmentID, &m.Type, &m.Frequency,
		&m.EffectiveDate, &m.LastMaintenanceDate, &m.NextMaintenanceDate,
		&m.Status, &m.Active, &technicianID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if technicianID != nil {
		m.TechnicianID = *technicianID
	}
	return &m, nil
}

// Create persiste un registro de mantenimiento.
func (r *MaintenanceRepo) Create(ctx context.Context, record *entity.MaintenanceRecord) error {
	query := `
		INSERT INTO maintenance_records (id, equipment_id, type, frequency, effective_date, last_maintenance_date, next_maintenance_date, status, active, technician_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	technicianID := (*string)(nil)
	if record.TechnicianID != "" {
		technicianID = &record.TechnicianID
	}
	_, err := r.q.Exec(ctx, query,
		record.ID, record.EquipmentID, record.Type, record.Frequency,
		record.EffectiveDate, record.LastMaintenanceDate, record.NextMaintenanceDate,
		record.Status, record.Active, technicianID, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create maintenance record: %w", err)
	}
	return nil
}

// GetByID devuelve el registro o nil si no existe.
func (r *MaintenanceRepo) GetByID(ctx context.Context, id string) (*entity.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE id = $1`
	m, err := scanMaintenance(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance record: %w", err)
	}
	return m, nil
}

// Update persiste estado, fechas y técnico del registro.
func (r *MaintenanceRepo) Update(ctx context.Context, record *entity.MaintenanceRecord) error {
	query := `
		UPDATE maintenance_records SET
			type = $2, frequency = $3, effective_date = $4,
			last_maintenance_date = $5, next_maintenance_date = $6,
			status = $7, technician_id = $8, updated_at = $9
		WHERE id = $1`
	technicianID := (*string)(nil)
	if record.TechnicianID != "" {
		technicianID = &record.TechnicianID
	}
	tag, err := r.q.Exec(ctx, query,
		record.ID, record.Type, record.Frequency, record.EffectiveDate,
		record.LastMaintenanceDate, record.NextMaintenanceDate,
		record.Status, technicianID, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update maintenance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva el registro (fuera del alcance del escaneo).
func (r *MaintenanceRepo) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE maintenance_records SET active = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("set maintenance active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByEquipment devuelve los registros del equipo, más recientes primero.
func (r *MaintenanceRepo) ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.MaintenanceRecord, error) {
	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance_records WHERE equipment_id = $1
		ORDER BY created_at DESC`
	return r.list(ctx, query, equipmentID)
}

// ListDueBetween devuelve los registros activos con próxima fecha en [from, to].
func (r *MaintenanceRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]*entity.MaintenanceRecord, error) {
	query := `
		SELECT ` + maintenanceColumns + `
		FROM maintenance_records
		WHERE active
		  AND next_maintenance_date IS NOT NULL
		  AND next_maintenance_date >= $1
		  AND next_maintenance_date <= $2
		ORDER BY next_maintenance_date ASC`
	return r.list(ctx, query, from, to)
}

func (r *MaintenanceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MaintenanceRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenance records: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaintenanceRecord
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance record: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
