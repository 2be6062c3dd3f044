package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labops-api/internal/domain/entity"
	"github.com/jhoicas/labops-api/internal/domain/repository"
)

var _ repository.TechnicianRepository = (*TechnicianRepo)(nil)

// TechnicianRepo lectura del directorio técnico sobre PostgreSQL.
type TechnicianRepo struct {
	q Querier
}

// NewTechnicianRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTechnicianRepository(q Querier) *TechnicianRepo {
	return &TechnicianRepo{q: q}
}

// GetByID devuelve el técnico o nil si no existe. Email puede venir vacío.
func (r *TechnicianRepo) GetByID(ctx context.Context, id string) (*entity.Technician, error) {
	query := `
		SELECT id, lab_id, full_name, COALESCE(email, ''), COALESCE(phone, ''), created_at
		FROM technicians WHERE id = $1`
	var t entity.Technician
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.LabID, &t.FullName, &t.Email, &t.Phone, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get technician: %w", err)
	}
	return &t, nil
}
