package dto

import "time"

// CreateMaintenanceRequest alta de un registro de mantenimiento.
// EffectiveDate formato 2006-01-02. Status vacío = SCHEDULED.
type CreateMaintenanceRequest struct {
	EquipmentID   string `json:"equipment_id"`
	Type          string `json:"type"`
	Frequency     string `json:"frequency"`
	EffectiveDate string `json:"effective_date"`
	Status        string `json:"status"`
	TechnicianID  string `json:"technician_id"`
}

// UpdateMaintenanceStatusRequest transición de estado con fecha efectiva.
type UpdateMaintenanceStatusRequest struct {
	Status        string `json:"status"`
	EffectiveDate string `json:"effective_date"`
}

// MaintenanceResponse representación HTTP de un registro de mantenimiento.
type MaintenanceResponse struct {
	ID                  string     `json:"id"`
	EquipmentID         string     `json:"equipment_id"`
	Type                string     `json:"type"`
	Frequency           string     `json:"frequency"`
	EffectiveDate       time.Time  `json:"effective_date"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date,omitempty"`
	Status              string     `json:"status"`
	Active              bool       `json:"active"`
	TechnicianID        string     `json:"technician_id,omitempty"`
}
