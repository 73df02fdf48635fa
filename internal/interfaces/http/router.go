package http

import (
	"github.com/gofiber/fiber/v2"

	appinv "github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	SupplierUC    *usecase.SupplierUseCase
	ProductUC     *usecase.ProductUseCase
	ProvisionUC   *appinv.ProvisionProductUseCase
	AdjustStockUC *appinv.AdjustStockUseCase
	HistoryUC     *appinv.StockHistoryUseCase
	AlertsUC      *appinv.LowStockAlertUseCase
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	api := app.Group("/api")

	// Companies y lo que cuelga de ellas
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, log)
	companies.Post("/:companyId/warehouses", warehouseHandler.Create)
	companies.Get("/:companyId/warehouses", warehouseHandler.List)
	api.Get("/warehouses/:id", warehouseHandler.GetByID)

	supplierHandler := NewSupplierHandler(deps.SupplierUC, log)
	companies.Post("/:companyId/suppliers", supplierHandler.Create)
	companies.Get("/:companyId/suppliers", supplierHandler.List)

	alertHandler := NewAlertHandler(deps.AlertsUC, log)
	companies.Get("/:companyId/alerts/low-stock", alertHandler.LowStock)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProvisionUC, deps.ProductUC, log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Inventory
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustStockUC, deps.HistoryUC, log)
	invGroup.Post("/adjustments", inventoryHandler.AdjustStock)
	invGroup.Get("/history", inventoryHandler.History)
}
