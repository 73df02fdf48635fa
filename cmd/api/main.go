package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	_ "github.com/jhoicas/stockflow-api/docs"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockflow-api/internal/interfaces/http"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// stores agrupa los adaptadores de persistencia del driver elegido.
type stores struct {
	tx         inventory.TxRunner
	companies  repository.CompanyRepository
	warehouses repository.WarehouseRepository
	suppliers  repository.SupplierRepository
	products   repository.ProductRepository
	inventory  repository.InventoryRepository
	logs       repository.InventoryLogRepository
	alerts     repository.AlertRepository
	close      func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("usando almacén en memoria: los datos no sobreviven reinicios")
		s := memory.New()
		return &stores{
			tx: s, companies: s.Companies(), warehouses: s.Warehouses(), suppliers: s.Suppliers(),
			products: s.Products(), inventory: s.Inventory(), logs: s.Logs(), alerts: s.Alerts(),
			close: func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &stores{
		tx:         postgres.NewTxRunner(pool),
		companies:  postgres.NewCompanyRepository(pool),
		warehouses: postgres.NewWarehouseRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		products:   postgres.NewProductRepository(pool),
		inventory:  postgres.NewInventoryRepository(pool),
		logs:       postgres.NewInventoryLogRepository(pool),
		alerts:     postgres.NewAlertRepository(pool),
		close:      pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de datos")
	}
	defer st.close()

	timeout := cfg.Store.Timeout
	provisionUC := inventory.NewProvisionProductUseCase(st.tx, st.products, st.warehouses, st.suppliers, timeout, log)
	adjustUC := inventory.NewAdjustStockUseCase(st.tx, timeout, log)
	historyUC := inventory.NewStockHistoryUseCase(st.tx, timeout)
	alertsUC := inventory.NewLowStockAlertUseCase(st.alerts, timeout)
	retentionUC := inventory.NewLogRetentionUseCase(st.logs, cfg.Retention.LogTTL(), timeout, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(log.FiberMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     usecase.NewCompanyUseCase(st.companies, timeout),
		WarehouseUC:   usecase.NewWarehouseUseCase(st.warehouses, st.companies, timeout),
		SupplierUC:    usecase.NewSupplierUseCase(st.suppliers, st.companies, timeout),
		ProductUC:     usecase.NewProductUseCase(st.products, st.inventory, timeout),
		ProvisionUC:   provisionUC,
		AdjustStockUC: adjustUC,
		HistoryUC:     historyUC,
		AlertsUC:      alertsUC,
		Logger:        log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		return retentionUC.Run(gctx, cfg.Retention.PurgeInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("aplicación finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}
