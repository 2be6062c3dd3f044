package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeMaintenanceReminder = "MAINTENANCE_REMINDER"
	AlertTypeLowStock            = "LOW_STOCK"
)

// Estados de una alerta.
const (
	AlertStatusPending = "PENDING"
	AlertStatusSent    = "SENT"
	AlertStatusFailed  = "FAILED"
	AlertStatusRead    = "READ"
)

// Alert es una notificación generada por el sistema.
// Invariante: a lo más una alerta MAINTENANCE_REMINDER no sustituida por
// (RelatedID, día calendario); la clave de idempotencia es (Type, RelatedID, día).
type Alert struct {
	ID          string
	Type        string
	Title       string
	Message     string
	RecipientID string // técnico destinatario, opcional
	RelatedID   string // id del registro que originó la alerta (ej. mantenimiento)
	Status      string
	SentAt      *time.Time
	CreatedAt   time.Time
}
