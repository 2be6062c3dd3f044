package alerting

import (
	"context"

	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
	"github.com/jhoicas/labops-api/internal/domain/repository"
)

// UseCase expone la consulta y las transiciones manuales de alertas
// (lectura y reset). El reset FAILED -> PENDING es la vía de reentrega:
// el despachador no reintenta por sí solo.
type UseCase struct {
	alertRepo repository.AlertRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(alertRepo repository.AlertRepository) *UseCase {
	return &UseCase{alertRepo: alertRepo}
}

// ListByStatus devuelve alertas con el estado dado.
func (uc *UseCase) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Alert, error) {
	switch status {
	case entity.AlertStatusPending, entity.AlertStatusSent, entity.AlertStatusFailed, entity.AlertStatusRead:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.alertRepo.ListByStatus(ctx, status, limit, offset)
}

// MarkRead marca una alerta SENT como leída.
func (uc *UseCase) MarkRead(ctx context.Context, id string) error {
	alert, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	if alert.Status != entity.AlertStatusSent {
		return domain.ErrConflict
	}
	return uc.alertRepo.UpdateStatus(ctx, id, entity.AlertStatusRead, alert.SentAt)
}

// Reset devuelve una alerta FAILED a PENDING para que el próximo despacho la
// reintente.
func (uc *UseCase) Reset(ctx context.Context, id string) error {
	alert, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	if alert.Status != entity.AlertStatusFailed {
		return domain.ErrConflict
	}
	return uc.alertRepo.UpdateStatus(ctx, id, entity.AlertStatusPending, nil)
}
