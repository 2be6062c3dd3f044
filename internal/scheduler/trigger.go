package scheduler

import (
	"context"
	"time"

	"github.com/jhoicas/labops-api/pkg/logger"
)

// Clock provee el "ahora" de los escaneos. Inyectable para pruebas
// deterministas sin esperas de reloj real.
type Clock interface {
	Now() time.Time
}

// SystemClock implementa Clock con el reloj del sistema.
type SystemClock struct{}

// Now devuelve time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Job es el trabajo periódico invocado en cada tick con el "ahora" del Clock.
type Job func(ctx context.Context, now time.Time) error

// Trigger dispara un Job con cadencia fija. Un fallo del Job se registra y el
// lazo espera el próximo tick; nunca termina el proceso. No serializa
// corridas solapadas: los trabajos que dispara son idempotentes por ítem
// (clave de idempotencia en generación, selección PENDING en despacho).
type Trigger struct {
	name     string
	interval time.Duration
	clock    Clock
	job      Job
	log      *logger.Logger
}

// NewTrigger construye el disparador.
func NewTrigger(name string, interval time.Duration, clock Clock, job Job, log *logger.Logger) *Trigger {
	return &Trigger{name: name, interval: interval, clock: clock, job: job, log: log}
}

// Run ejecuta el Job una vez al arrancar y luego en cada tick, hasta que el
// contexto se cancele. Bloqueante: lanzar en su propia goroutine.
func (t *Trigger) Run(ctx context.Context) {
	t.log.Info().
		Str("trigger", t.name).
		Dur("interval", t.interval).
		Msg("disparador periódico iniciado")

	t.runOnce(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.Info().Str("trigger", t.name).Msg("disparador detenido")
			return
		case <-ticker.C:
			t.runOnce(ctx)
		}
	}
}

func (t *Trigger) runOnce(ctx context.Context) {
	if err := t.job(ctx, t.clock.Now()); err != nil {
		t.log.Error().Err(err).
			Str("trigger", t.name).
			Msg("corrida del disparador fallida; se espera el próximo tick")
	}
}
