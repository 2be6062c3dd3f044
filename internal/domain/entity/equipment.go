package entity

import "time"

// Equipment es un equipo de laboratorio (solo lectura para el núcleo:
// se usa para componer mensajes de alerta).
type Equipment struct {
	ID        string
	LabID     string
	Name      string
	Model     string
	Serial    string
	CreatedAt time.Time
}

// DisplayName devuelve "Nombre (Modelo)" o solo el nombre si no hay modelo.
func (e *Equipment) DisplayName() string {
	if e.Model == "" {
		return e.Name
	}
	return e.Name + " (" + e.Model + ")"
}
