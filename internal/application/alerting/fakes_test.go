package alerting_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/labops-api/internal/domain"
	"github.com/jhoicas/labops-api/internal/domain/entity"
)

// memAlertRepo implementación en memoria del puerto de alertas con la clave
// de idempotencia (tipo, relacionado, día calendario) del adaptador real.
type memAlertRepo struct {
	mu        sync.Mutex
	rows      map[string]*entity.Alert
	failOn    map[string]error // RelatedID -> error forzado en Create
	listLimit int              // último limit recibido por ListPending
}

func newMemAlertRepo() *memAlertRepo {
	return &memAlertRepo{
		rows:   make(map[string]*entity.Alert),
		failOn: make(map[string]error),
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *memAlertRepo) Create(_ context.Context, alert *entity.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failOn[alert.RelatedID]; ok {
		return err
	}
	for _, row := range r.rows {
		if row.Type == alert.Type && row.RelatedID == alert.RelatedID && sameDay(row.CreatedAt, alert.CreatedAt) {
			return domain.ErrDuplicate
		}
	}
	copied := *alert
	r.rows[alert.ID] = &copied
	return nil
}

func (r *memAlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *memAlertRepo) ExistsSameDay(_ context.Context, alertType, relatedID string, day time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Type == alertType && row.RelatedID == relatedID && sameDay(row.CreatedAt, day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAlertRepo) ListPending(_ context.Context, limit int) ([]*entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listLimit = limit
	var out []*entity.Alert
	for _, row := range r.rows {
		if row.Status == entity.AlertStatusPending {
			copied := *row
			out = append(out, &copied)
		}
	}
	// Más antiguas primero, como el adaptador real (ORDER BY created_at ASC).
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memAlertRepo) ListByStatus(_ context.Context, status string, _, _ int) ([]*entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Alert
	for _, row := range r.rows {
		if row.Status == status {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memAlertRepo) UpdateStatus(_ context.Context, id, status string, sentAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	row.Status = status
	if sentAt != nil {
		row.SentAt = sentAt
	}
	return nil
}

func (r *memAlertRepo) byRelated(relatedID string) *entity.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.RelatedID == relatedID {
			copied := *row
			return &copied
		}
	}
	return nil
}

func (r *memAlertRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// memMaintRepo puerto de mantenimientos reducido a lo que consume el
// generador: ListDueBetween con registro de la ventana pedida.
type memMaintRepo struct {
	due      []*entity.MaintenanceRecord
	lastFrom time.Time
	lastTo   time.Time
}

func (r *memMaintRepo) Create(_ context.Context, _ *entity.MaintenanceRecord) error { return nil }
func (r *memMaintRepo) GetByID(_ context.Context, _ string) (*entity.MaintenanceRecord, error) {
	return nil, nil
}
func (r *memMaintRepo) Update(_ context.Context, _ *entity.MaintenanceRecord) error { return nil }
func (r *memMaintRepo) SetActive(_ context.Context, _ string, _ bool) error         { return nil }
func (r *memMaintRepo) ListByEquipment(_ context.Context, _ string) ([]*entity.MaintenanceRecord, error) {
	return nil, nil
}

func (r *memMaintRepo) ListDueBetween(_ context.Context, from, to time.Time) ([]*entity.MaintenanceRecord, error) {
	r.lastFrom = from
	r.lastTo = to
	return r.due, nil
}

// memEquipRepo directorio de equipos en memoria.
type memEquipRepo struct {
	rows map[string]*entity.Equipment
}

func (r *memEquipRepo) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	if r.rows == nil {
		return nil, nil
	}
	return r.rows[id], nil
}

// memTechRepo directorio de técnicos en memoria. err simula un fallo
// transitorio del almacenamiento en la consulta.
type memTechRepo struct {
	rows map[string]*entity.Technician
	err  error
}

func (r *memTechRepo) GetByID(_ context.Context, id string) (*entity.Technician, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.rows == nil {
		return nil, nil
	}
	return r.rows[id], nil
}

// fakeSender registra los envíos y falla para las direcciones marcadas.
type fakeSender struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]bool
}

type sentMail struct {
	to, subject, body string
}

func newFakeSender() *fakeSender {
	return &fakeSender{failTo: make(map[string]bool)}
}

func (s *fakeSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failTo[to] {
		return errors.New("smtp no disponible")
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (s *fakeSender) deliveries() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentMail, len(s.sent))
	copy(out, s.sent)
	return out
}
