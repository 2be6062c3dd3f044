package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/labops-api/internal/application/alerting"
	"github.com/jhoicas/labops-api/internal/application/inventory"
	appmaint "github.com/jhoicas/labops-api/internal/application/maintenance"
	"github.com/jhoicas/labops-api/internal/application/orders"
	"github.com/jhoicas/labops-api/internal/infrastructure/mailer"
	"github.com/jhoicas/labops-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/labops-api/internal/interfaces/http"
	"github.com/jhoicas/labops-api/internal/scheduler"
	"github.com/jhoicas/labops-api/pkg/config"
	"github.com/jhoicas/labops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	maintRepo := postgres.NewMaintenanceRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	equipRepo := postgres.NewEquipmentRepository(pool)
	techRepo := postgres.NewTechnicianRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	orderUC := orders.NewUseCase(txRunner, orderRepo)
	ledgerUC := inventory.NewLedgerUseCase(stockRepo)
	maintenanceUC := appmaint.NewUseCase(maintRepo, equipRepo)
	alertUC := alerting.NewUseCase(alertRepo)

	// Núcleo de notificaciones programadas: generación y despacho con
	// cadencias independientes.
	sender := mailer.NewSMTPSender(cfg.SMTP)
	generator := alerting.NewGenerator(maintRepo, alertRepo, equipRepo, cfg.Scheduler.ReminderHorizonDays, log)
	dispatcher := alerting.NewDispatcher(alertRepo, techRepo, sender, cfg.Scheduler.DispatchBatchSize, log)

	clock := scheduler.SystemClock{}
	generateTrigger := scheduler.NewTrigger("maintenance-scan", cfg.Scheduler.GenerateInterval, clock,
		func(ctx context.Context, now time.Time) error {
			_, err := generator.ScanDue(ctx, now)
			return err
		}, log)
	dispatchTrigger := scheduler.NewTrigger("alert-dispatch", cfg.Scheduler.DispatchInterval, clock,
		func(ctx context.Context, now time.Time) error {
			_, _, err := dispatcher.ScanPending(ctx, now)
			return err
		}, log)

	go generateTrigger.Run(ctx)
	go dispatchTrigger.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:       orderUC,
		LedgerUC:      ledgerUC,
		MaintenanceUC: maintenanceUC,
		AlertUC:       alertUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel() // detiene los disparadores periódicos

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
