package entity

import "time"

// Technician es el personal técnico asignable a mantenimientos.
// Email puede estar vacío; en ese caso el despacho de alertas marca FAILED
// sin intentar entrega.
type Technician struct {
	ID        string
	LabID     string
	FullName  string
	Email     string
	Phone     string
	CreatedAt time.Time
}
