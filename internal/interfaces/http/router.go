package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labops-api/internal/application/alerting"
	"github.com/jhoicas/labops-api/internal/application/inventory"
	"github.com/jhoicas/labops-api/internal/application/maintenance"
	"github.com/jhoicas/labops-api/internal/application/orders"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC       *orders.UseCase
	LedgerUC      *inventory.LedgerUseCase
	MaintenanceUC *maintenance.UseCase
	AlertUC       *alerting.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Órdenes de compra (concilian stock al entrar/salir de COMPLETED)
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Delete("/:id", orderHandler.Delete)

	// Existencias
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/low", stockHandler.ListLow)
	stockGroup.Post("/usage", stockHandler.RecordUsage)
	stockGroup.Put("/config", stockHandler.Configure)

	// Mantenimientos de equipos
	maintGroup := api.Group("/maintenance")
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	maintGroup.Post("/", maintenanceHandler.Create)
	maintGroup.Get("/", maintenanceHandler.List)
	maintGroup.Get("/:id", maintenanceHandler.GetByID)
	maintGroup.Patch("/:id/status", maintenanceHandler.UpdateStatus)
	maintGroup.Patch("/:id/deactivate", maintenanceHandler.Deactivate)

	// Alertas
	alertsGroup := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alertsGroup.Get("/", alertHandler.List)
	alertsGroup.Patch("/:id/read", alertHandler.MarkRead)
	alertsGroup.Patch("/:id/reset", alertHandler.Reset)
}
