package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// ProvisionProductUseCase crea un producto junto con su fila de inventario inicial en una sola transacción.
// La unicidad del SKU la decide el índice único del almacén; la consulta previa solo mejora el mensaje.
type ProvisionProductUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	timeout       time.Duration
	log           *logger.Logger
	now           func() time.Time
}

// NewProvisionProductUseCase construye el caso de uso.
func NewProvisionProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	timeout time.Duration,
	log *logger.Logger,
) *ProvisionProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProvisionProductUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		timeout:       timeout,
		log:           log.Component("provision_product"),
		now:           time.Now,
	}
}

// CreateProduct valida, verifica referencias y escribe Product + Inventory de forma atómica.
// Errores: ValidationError (ErrInvalidInput), ErrWarehouseNotFound, ErrSupplierNotFound,
// ErrComponentNotFound, ErrDuplicateSKU, ErrStoreUnavailable.
func (uc *ProvisionProductUseCase) CreateProduct(ctx context.Context, draft inventory.ProductDraft) (*entity.Product, error) {
	draft = draft.Normalize()
	if err := inventory.ValidateProductDraft(draft); err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, uc.timeout)
	defer cancel()

	warehouse, err := uc.warehouseRepo.GetByID(ctx, draft.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrWarehouseNotFound
	}

	if draft.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(ctx, *draft.SupplierID)
		if err != nil {
			return nil, err
		}
		// Un proveedor de otra empresa no es visible desde esta bodega
		if supplier == nil || supplier.CompanyID != warehouse.CompanyID {
			return nil, domain.ErrSupplierNotFound
		}
	}

	for _, c := range draft.BundleComponents {
		component, err := uc.productRepo.GetByID(ctx, c.ComponentID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			return nil, domain.ErrComponentNotFound
		}
	}

	existing, err := uc.productRepo.GetBySKU(ctx, draft.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSKU
	}

	now := uc.now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Name:             draft.Name,
		SKU:              draft.SKU,
		Price:            *draft.Price,
		SupplierID:       draft.SupplierID,
		IsBundle:         draft.IsBundle,
		BundleComponents: draft.BundleComponents,
		CreatedAt:        now,
	}
	if draft.LowStockThreshold != nil {
		product.LowStockThreshold = *draft.LowStockThreshold
	}
	stock := &entity.Inventory{
		ProductID:   product.ID,
		WarehouseID: warehouse.ID,
		Quantity:    *draft.InitialQuantity,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		_ repository.InventoryLogRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		return inventoryRepo.Create(ctx, stock)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSKU) {
			// Otra petición ganó la carrera entre la consulta previa y el insert
			uc.log.Warn().Str("sku", product.SKU).Msg("SKU duplicado detectado al confirmar")
		}
		return nil, err
	}

	uc.log.Info().
		Str("product_id", product.ID).
		Str("sku", product.SKU).
		Str("warehouse_id", stock.WarehouseID).
		Int64("initial_quantity", stock.Quantity).
		Msg("producto aprovisionado")
	return product, nil
}
