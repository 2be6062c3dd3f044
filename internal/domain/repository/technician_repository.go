package repository

import (
	"context"

	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// TechnicianRepository define el puerto de lectura del directorio técnico.
// El despachador lo usa para resolver la dirección de contacto del destinatario.
type TechnicianRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Technician, error)
}
