package maintenance

import (
	"time"

	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// NextDate calcula la próxima fecha de mantenimiento a partir de una fecha
// base y una frecuencia. Devuelve nil para ONCE (y para frecuencias
// desconocidas: la validación del enum ocurre antes, en el caso de uso).
//
// Regla de fin de mes: la aritmética de meses/trimestres/años ajusta el día
// al último día del mes destino cuando el día base no existe en él
// (2024-01-31 + 1 mes = 2024-02-29), en lugar de desbordar al mes siguiente
// como hace time.AddDate.
func NextDate(d time.Time, frequency string) *time.Time {
	var next time.Time
	switch frequency {
	case entity.FrequencyDaily:
		next = d.AddDate(0, 0, 1)
	case entity.FrequencyWeekly:
		next = d.AddDate(0, 0, 7)
	case entity.FrequencyMonthly:
		next = addMonthsClamped(d, 1)
	case entity.FrequencyQuarterly:
		next = addMonthsClamped(d, 3)
	case entity.FrequencyYearly:
		next = addMonthsClamped(d, 12)
	default:
		return nil
	}
	return &next
}

// addMonthsClamped suma meses calendario ajustando el día al último día del
// mes destino si el día original no existe (31 de enero + 1 mes -> 29/28 feb).
func addMonthsClamped(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	hour, min, sec := d.Clock()

	first := time.Date(year, month, 1, hour, min, sec, d.Nanosecond(), d.Location())
	first = first.AddDate(0, months, 0)

	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, d.Nanosecond(), d.Location())
}

// daysInMonth devuelve la cantidad de días del mes (el día 0 del mes
// siguiente es el último día del mes).
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
