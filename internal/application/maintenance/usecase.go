package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
	domainmaint "github.com/jhoicas/labops-api/internal/domain/maintenance"
	"github.com/jhoicas/labops-api/internal/domain/repository"
)

// UseCase gestiona los registros de mantenimiento de equipos y su estado de
// vencimiento. NextMaintenanceDate es la única señal que consume el escaneo
// de alertas, y solo este componente la escribe.
type UseCase struct {
	maintRepo repository.MaintenanceRepository
	equipRepo repository.EquipmentRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(maintRepo repository.MaintenanceRepository, equipRepo repository.EquipmentRepository) *UseCase {
	return &UseCase{maintRepo: maintRepo, equipRepo: equipRepo}
}

// applyStatus aplica la máquina de estados de vencimiento sobre el registro:
//   - COMPLETED: lastMaintenanceDate = effective; nextMaintenanceDate =
//     NextDate(effective, frecuencia), nil para ONCE.
//   - cualquier otro estado: nextMaintenanceDate = effective (la propia fecha
//     del registro pasa a ser el objetivo del escaneo).
func applyStatus(record *entity.MaintenanceRecord, desiredStatus string, effectiveDate time.Time) {
	record.Status = desiredStatus
	record.EffectiveDate = effectiveDate
	if desiredStatus == entity.MaintenanceStatusCompleted {
		last := effectiveDate
		record.LastMaintenanceDate = &last
		record.NextMaintenanceDate = domainmaint.NextDate(effectiveDate, record.Frequency)
		return
	}
	next := effectiveDate
	record.NextMaintenanceDate = &next
}

// CreateInput entrada para crear un registro de mantenimiento.
type CreateInput struct {
	EquipmentID   string
	Type          string
	Frequency     string
	EffectiveDate time.Time
	Status        string
	TechnicianID  string
}

// Create valida y persiste el registro, aplicando la máquina de estados de
// vencimiento. Status vacío equivale a SCHEDULED.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.MaintenanceRecord, error) {
	if in.EquipmentID == "" || in.Type == "" || in.EffectiveDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidFrequency(in.Frequency) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = entity.MaintenanceStatusScheduled
	}
	if !entity.IsValidMaintenanceStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}

	equip, err := uc.equipRepo.GetByID(ctx, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equip == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	record := &entity.MaintenanceRecord{
		ID:           uuid.New().String(),
		EquipmentID:  in.EquipmentID,
		Type:         in.Type,
		Frequency:    in.Frequency,
		Active:       true,
		TechnicianID: in.TechnicianID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyStatus(record, in.Status, in.EffectiveDate)

	if err := uc.maintRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateStatus transiciona el registro al estado deseado con la fecha
// efectiva dada y recalcula las fechas de vencimiento.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, desiredStatus string, effectiveDate time.Time) (*entity.MaintenanceRecord, error) {
	if id == "" || !entity.IsValidMaintenanceStatus(desiredStatus) || effectiveDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.maintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	applyStatus(record, desiredStatus, effectiveDate)
	record.UpdatedAt = time.Now()
	if err := uc.maintRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Deactivate saca el registro del alcance del escaneo de alertas.
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.maintRepo.SetActive(ctx, id, false)
}

// GetByID devuelve el registro o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.MaintenanceRecord, error) {
	record, err := uc.maintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// ListByEquipment devuelve los registros del equipo.
func (uc *UseCase) ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.MaintenanceRecord, error) {
	if equipmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.maintRepo.ListByEquipment(ctx, equipmentID)
}
