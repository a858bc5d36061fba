package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nutrichain/almacen-service/internal/application/almacenes"
	"github.com/nutrichain/almacen-service/internal/application/movimientos"
	"github.com/nutrichain/almacen-service/internal/application/reportes"
	"github.com/nutrichain/almacen-service/internal/application/stocks"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *movimientos.RegisterMovementUseCase
	MovementQuery    *movimientos.MovementQueryUseCase
	StockQuery       *stocks.StockQueryUseCase
	WarehouseUC      *almacenes.WarehouseUseCase
	ReportUC         *reportes.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Movimientos: escrituras del ledger + consultas
	movements := api.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementQuery)
	movements.Post("/entrada", movementHandler.Entrada)
	movements.Post("/salida", movementHandler.Salida)
	movements.Post("/transferencia", movementHandler.Transferencia)
	movements.Post("/ajuste-inicial", movementHandler.AjusteInicial)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)

	// Stock: solo lectura
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockQuery)
	stock.Get("/", stockHandler.List)
	stock.Post("/disponibilidad", stockHandler.Availability)
	stock.Get("/consolidado", stockHandler.Consolidated)
	stock.Get("/bajo-minimo", stockHandler.LowStock)
	stock.Get("/:producto_id/:almacen_id", stockHandler.Get)

	// Almacenes: registro local
	warehouses := api.Group("/almacenes")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Post("/:id/activar", warehouseHandler.Activate)
	warehouses.Post("/:id/desactivar", warehouseHandler.Deactivate)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	// Reportes
	reports := api.Group("/reportes")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/movimientos", reportHandler.Movements)
	reports.Get("/movimientos/pdf", reportHandler.MovementsPDF)
}
