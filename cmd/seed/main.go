// Command seed carga el conjunto de datos de ejemplo en la base configurada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	domaininv "github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	timeout := cfg.Store.Timeout

	company, err := usecase.NewCompanyUseCase(companyRepo, timeout).
		Create(ctx, dto.CreateCompanyRequest{Name: "Test Company Inc."})
	if err != nil {
		return fmt.Errorf("crear empresa: %w", err)
	}
	supplier, err := usecase.NewSupplierUseCase(supplierRepo, companyRepo, timeout).
		Create(ctx, company.ID, dto.CreateSupplierRequest{
			Name:         "Widgets R Us",
			ContactEmail: "orders@widgetsrus.com",
			ContactPhone: "+1-555-0123",
		})
	if err != nil {
		return fmt.Errorf("crear proveedor: %w", err)
	}
	warehouse, err := usecase.NewWarehouseUseCase(warehouseRepo, companyRepo, timeout).
		Create(ctx, company.ID, dto.CreateWarehouseRequest{
			Name:    "Main Warehouse",
			Address: "123 Inventory Street, Business City",
		})
	if err != nil {
		return fmt.Errorf("crear bodega: %w", err)
	}

	price := decimal.RequireFromString("29.99")
	qty := int64(15)
	threshold := int64(25)
	provision := inventory.NewProvisionProductUseCase(postgres.NewTxRunner(pool), productRepo, warehouseRepo, supplierRepo, timeout, log)
	product, err := provision.CreateProduct(ctx, domaininv.ProductDraft{
		Name:              "Premium Widget",
		SKU:               "WIDGET-001",
		Price:             &price,
		WarehouseID:       warehouse.ID,
		InitialQuantity:   &qty,
		SupplierID:        &supplier.ID,
		LowStockThreshold: &threshold,
	})
	if err != nil {
		return fmt.Errorf("crear producto: %w", err)
	}

	fmt.Println("company_id:  ", company.ID)
	fmt.Println("supplier_id: ", supplier.ID)
	fmt.Println("warehouse_id:", warehouse.ID)
	fmt.Println("product_id:  ", product.ID)
	return nil
}
