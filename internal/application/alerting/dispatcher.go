package alerting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
	"github.com/jhoicas/labops-api/internal/domain/repository"
	"github.com/jhoicas/labops-api/pkg/logger"
)

// Dispatcher toma alertas PENDING y las entrega por el canal externo.
// Cada alerta se resuelve de forma independiente: un fallo marca FAILED solo
// esa alerta y el lote continúa. No reintenta FAILED automáticamente; la
// reentrega requiere un reset de estado externo (Reset).
type Dispatcher struct {
	alertRepo repository.AlertRepository
	techRepo  repository.TechnicianRepository
	sender    NotificationSender
	batchSize int
	log       *logger.Logger
}

// NewDispatcher construye el despachador.
func NewDispatcher(
	alertRepo repository.AlertRepository,
	techRepo repository.TechnicianRepository,
	sender NotificationSender,
	batchSize int,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		alertRepo: alertRepo,
		techRepo:  techRepo,
		sender:    sender,
		batchSize: batchSize,
		log:       log,
	}
}

// ScanPending procesa hasta batchSize alertas PENDING, las más antiguas
// primero. Sin dirección de contacto: FAILED sin intento de entrega. Con
// dirección: envío; éxito marca SENT con sentAt=now, fallo marca FAILED.
// Un error transitorio al resolver el contacto deja la alerta PENDING para
// el próximo tick. Devuelve enviadas y fallidas.
func (d *Dispatcher) ScanPending(ctx context.Context, now time.Time) (sent, failed int, err error) {
	pending, err := d.alertRepo.ListPending(ctx, d.batchSize)
	if err != nil {
		return 0, 0, fmt.Errorf("listar alertas pendientes: %w", err)
	}

	for _, alert := range pending {
		if err := d.dispatchOne(ctx, alert, now); err != nil {
			failed++
			d.log.Warn().Err(err).
				Str("alert_id", alert.ID).
				Msg("entrega de alerta fallida")
			continue
		}
		sent++
	}

	d.log.Info().
		Int("pending", len(pending)).
		Int("sent", sent).
		Int("failed", failed).
		Msg("despacho de alertas completado")
	return sent, failed, nil
}

// dispatchOne resuelve el contacto y entrega una alerta. El estado resultante
// (SENT o FAILED) se persiste solo para esta alerta.
func (d *Dispatcher) dispatchOne(ctx context.Context, alert *entity.Alert, now time.Time) error {
	address, err := d.resolveAddress(ctx, alert.RecipientID)
	if err != nil {
		// Un fallo transitorio del directorio no condena la alerta: queda
		// PENDING y el próximo tick la vuelve a seleccionar.
		if !errors.Is(err, domain.ErrNoRecipientAddress) {
			return fmt.Errorf("resolver contacto: %w", err)
		}
		// Sin contacto no hay intento de entrega: FAILED directo.
		if updErr := d.alertRepo.UpdateStatus(ctx, alert.ID, entity.AlertStatusFailed, nil); updErr != nil {
			return fmt.Errorf("marcar FAILED sin contacto: %w", updErr)
		}
		return err
	}

	if err := d.sender.Send(address, alert.Title, alert.Message); err != nil {
		if updErr := d.alertRepo.UpdateStatus(ctx, alert.ID, entity.AlertStatusFailed, nil); updErr != nil {
			return fmt.Errorf("marcar FAILED tras fallo de envío: %w", updErr)
		}
		return fmt.Errorf("enviar notificación: %w", err)
	}

	sentAt := now
	if err := d.alertRepo.UpdateStatus(ctx, alert.ID, entity.AlertStatusSent, &sentAt); err != nil {
		return fmt.Errorf("marcar SENT: %w", err)
	}
	return nil
}

// resolveAddress busca el email del técnico destinatario.
// ErrNoRecipientAddress si no hay destinatario, no existe o no tiene email.
func (d *Dispatcher) resolveAddress(ctx context.Context, recipientID string) (string, error) {
	if recipientID == "" {
		return "", domain.ErrNoRecipientAddress
	}
	tech, err := d.techRepo.GetByID(ctx, recipientID)
	if err != nil {
		return "", err
	}
	if tech == nil || tech.Email == "" {
		return "", domain.ErrNoRecipientAddress
	}
	return tech.Email, nil
}
