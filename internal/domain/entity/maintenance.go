package entity

import "time"

// Frecuencias de recurrencia para mantenimientos de equipos.
const (
	FrequencyDaily     = "DAILY"
	FrequencyWeekly    = "WEEKLY"
	FrequencyMonthly   = "MONTHLY"
	FrequencyQuarterly = "QUARTERLY"
	FrequencyYearly    = "YEARLY"
	FrequencyOnce      = "ONCE"
)

// Estados de un registro de mantenimiento.
const (
	MaintenanceStatusScheduled = "SCHEDULED"
	MaintenanceStatusPending   = "PENDING"
	MaintenanceStatusCompleted = "COMPLETED"
	MaintenanceStatusFailed    = "FAILED"
)

// IsValidFrequency valida que la frecuencia pertenezca al enum.
func IsValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly, FrequencyOnce:
		return true
	}
	return false
}

// IsValidMaintenanceStatus valida que el estado pertenezca al enum.
func IsValidMaintenanceStatus(s string) bool {
	switch s {
	case MaintenanceStatusScheduled, MaintenanceStatusPending, MaintenanceStatusCompleted, MaintenanceStatusFailed:
		return true
	}
	return false
}

// MaintenanceRecord es la programación de mantenimiento de un equipo.
// NextMaintenanceDate es la única señal de vencimiento que consume el escaneo
// de alertas; frequency=ONCE nunca produce próxima fecha.
type MaintenanceRecord struct {
	ID                  string
	EquipmentID         string
	Type                string // preventivo, calibración, etc. (texto libre)
	Frequency           string
	EffectiveDate       time.Time
	LastMaintenanceDate *time.Time
	NextMaintenanceDate *time.Time
	Status              string
	Active              bool
	TechnicianID        string // técnico asignado, opcional
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
