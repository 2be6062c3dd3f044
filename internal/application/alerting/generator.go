package alerting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
	"github.com/jhoicas/labops-api/internal/domain/repository"
	"github.com/jhoicas/labops-api/pkg/logger"
)

// Generator escanea los mantenimientos próximos a vencer y crea alertas
// PENDING deduplicadas. La clave de idempotencia es (tipo, registro, día
// calendario): reejecutar el escaneo el mismo día no crea duplicados, por lo
// que corridas solapadas son inofensivas sin necesidad de lock de corrida.
type Generator struct {
	maintRepo   repository.MaintenanceRepository
	alertRepo   repository.AlertRepository
	equipRepo   repository.EquipmentRepository
	horizonDays int
	log         *logger.Logger
}

// NewGenerator construye el generador. horizonDays es la ventana de
// anticipación del recordatorio.
func NewGenerator(
	maintRepo repository.MaintenanceRepository,
	alertRepo repository.AlertRepository,
	equipRepo repository.EquipmentRepository,
	horizonDays int,
	log *logger.Logger,
) *Generator {
	return &Generator{
		maintRepo:   maintRepo,
		alertRepo:   alertRepo,
		equipRepo:   equipRepo,
		horizonDays: horizonDays,
		log:         log,
	}
}

// ScanDue busca registros activos con próxima fecha en [now, now+horizonte] y
// crea una alerta PENDING por cada uno que no tenga ya una alerta del día.
// Los fallos por registro se registran y el recorrido continúa; devuelve la
// cantidad de alertas creadas.
func (g *Generator) ScanDue(ctx context.Context, now time.Time) (int, error) {
	due, err := g.maintRepo.ListDueBetween(ctx, now, now.AddDate(0, 0, g.horizonDays))
	if err != nil {
		return 0, fmt.Errorf("listar mantenimientos por vencer: %w", err)
	}

	created := 0
	failed := 0
	for _, record := range due {
		ok, err := g.generateFor(ctx, record, now)
		if err != nil {
			failed++
			g.log.Error().Err(err).
				Str("maintenance_id", record.ID).
				Msg("generar alerta de mantenimiento")
			continue
		}
		if ok {
			created++
		}
	}

	g.log.Info().
		Int("due", len(due)).
		Int("created", created).
		Int("failed", failed).
		Msg("escaneo de mantenimientos por vencer completado")
	return created, nil
}

// generateFor crea la alerta del registro si la clave de idempotencia aún no
// existe. Devuelve true si creó una alerta nueva.
func (g *Generator) generateFor(ctx context.Context, record *entity.MaintenanceRecord, now time.Time) (bool, error) {
	exists, err := g.alertRepo.ExistsSameDay(ctx, entity.AlertTypeMaintenanceReminder, record.ID, now)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	alert := &entity.Alert{
		ID:          uuid.New().String(),
		Type:        entity.AlertTypeMaintenanceReminder,
		Title:       "Mantenimiento próximo",
		Message:     g.buildMessage(ctx, record),
		RecipientID: record.TechnicianID,
		RelatedID:   record.ID,
		Status:      entity.AlertStatusPending,
		CreatedAt:   now,
	}
	if err := g.alertRepo.Create(ctx, alert); err != nil {
		// Una corrida solapada pudo ganar la carrera de creación: la clave de
		// idempotencia ya existe y no es un fallo.
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// buildMessage compone el mensaje con nombre/modelo del equipo, tipo de
// mantenimiento y fecha de vencimiento. Si el directorio de equipos no
// resuelve, usa el id como respaldo: el mensaje degradado no debe impedir la
// alerta.
func (g *Generator) buildMessage(ctx context.Context, record *entity.MaintenanceRecord) string {
	name := record.EquipmentID
	if equip, err := g.equipRepo.GetByID(ctx, record.EquipmentID); err == nil && equip != nil {
		name = equip.DisplayName()
	}
	due := ""
	if record.NextMaintenanceDate != nil {
		due = record.NextMaintenanceDate.Format("2006-01-02")
	}
	return fmt.Sprintf("El equipo %s tiene mantenimiento (%s) programado para el %s.", name, record.Type, due)
}
