package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ProductUseCase consultas del catálogo. La creación va por ProvisionProductUseCase,
// que escribe producto e inventario en la misma transacción.
type ProductUseCase struct {
	repo          repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	timeout       time.Duration
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, inventoryRepo repository.InventoryRepository, timeout time.Duration) *ProductUseCase {
	return &ProductUseCase{repo: repo, inventoryRepo: inventoryRepo, timeout: timeout}
}

// GetByID obtiene un producto con su stock por bodega.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	levels, err := uc.inventoryRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(product)
	out.Stock = make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out.Stock = append(out.Stock, dto.StockLevelResponse{
			WarehouseID: l.WarehouseID,
			Quantity:    l.Quantity,
			UpdatedAt:   l.UpdatedAt,
		})
	}
	return out, nil
}

// List lista productos ordenados por SKU.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ToProductResponse convierte la entidad a su representación de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	comps := make([]dto.BundleComponentResponse, 0, len(p.BundleComponents))
	for _, c := range p.BundleComponents {
		comps = append(comps, dto.BundleComponentResponse{ComponentID: c.ComponentID, Quantity: c.Quantity})
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Price:             p.Price,
		SupplierID:        p.SupplierID,
		LowStockThreshold: p.LowStockThreshold,
		IsBundle:          p.IsBundle,
		BundleComponents:  comps,
		CreatedAt:         p.CreatedAt,
	}
}
