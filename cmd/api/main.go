package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nutrichain/almacen-service/internal/application/almacenes"
	"github.com/nutrichain/almacen-service/internal/application/movimientos"
	"github.com/nutrichain/almacen-service/internal/application/reportes"
	"github.com/nutrichain/almacen-service/internal/application/stocks"
	infracatalogo "github.com/nutrichain/almacen-service/internal/infrastructure/catalogo"
	infrapdf "github.com/nutrichain/almacen-service/internal/infrastructure/pdf"
	"github.com/nutrichain/almacen-service/internal/infrastructure/postgres"
	httpRouter "github.com/nutrichain/almacen-service/internal/interfaces/http"
	"github.com/nutrichain/almacen-service/pkg/config"
	"github.com/nutrichain/almacen-service/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Catálogo de productos: cliente HTTP fail-closed + caché TTL de veredictos
	catalogClient := infracatalogo.NewHTTPClient(cfg.Catalogo.BaseURL, cfg.Catalogo.Timeout)
	catalog := infracatalogo.NewCachedCatalog(catalogClient, cfg.Catalogo.CacheTTL, cfg.Catalogo.CacheMaxEntries)

	registerMovementUC := movimientos.NewRegisterMovementUseCase(txRunner, warehouseRepo, stockRepo, catalog)
	movementQueryUC := movimientos.NewMovementQueryUseCase(movementRepo)
	stockQueryUC := stocks.NewStockQueryUseCase(stockRepo, catalog)
	warehouseUC := almacenes.NewWarehouseUseCase(warehouseRepo, stockRepo)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := reportes.NewReportUseCase(movementRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		StockQuery:       stockQueryUC,
		WarehouseUC:      warehouseUC,
		ReportUC:         reportUC,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
