package repository

import (
	"context"

	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// EquipmentRepository define el puerto de lectura del directorio de equipos.
// Solo lectura: el núcleo lo usa para componer mensajes de alerta.
type EquipmentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
}
