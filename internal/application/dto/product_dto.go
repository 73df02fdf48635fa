package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BundleComponentRequest componente de un bundle en la petición de creación.
type BundleComponentRequest struct {
	ComponentID string `json:"componentId"`
	Quantity    int64  `json:"quantity"`
}

// CreateProductRequest entrada para crear un producto con su inventario inicial.
// Conserva los nombres camelCase del API público de productos; los punteros distinguen ausente de cero.
type CreateProductRequest struct {
	Name              string                   `json:"name" validate:"required"`
	SKU               string                   `json:"sku" validate:"required"`
	Price             *decimal.Decimal         `json:"price" validate:"required,min=0" swaggertype:"number"`
	WarehouseID       string                   `json:"warehouseId" validate:"required"`
	InitialQuantity   *int64                   `json:"initialQuantity" validate:"required,min=0"`
	SupplierID        *string                  `json:"supplierId,omitempty"`
	LowStockThreshold *int64                   `json:"lowStockThreshold,omitempty" validate:"omitempty,min=0"`
	IsBundle          bool                     `json:"isBundle,omitempty"`
	BundleComponents  []BundleComponentRequest `json:"bundleComponents,omitempty"`
}

// CreateProductResponse respuesta 201 de la creación.
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID string `json:"product_id"`
}

// BundleComponentResponse componente de un bundle en las respuestas.
type BundleComponentResponse struct {
	ComponentID string `json:"component_id"`
	Quantity    int64  `json:"quantity"`
}

// StockLevelResponse cantidad de un producto en una bodega.
type StockLevelResponse struct {
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string                    `json:"id"`
	Name              string                    `json:"name"`
	SKU               string                    `json:"sku"`
	Price             decimal.Decimal           `json:"price" swaggertype:"string"`
	SupplierID        *string                   `json:"supplier_id"`
	LowStockThreshold int64                     `json:"low_stock_threshold"`
	IsBundle          bool                      `json:"is_bundle"`
	BundleComponents  []BundleComponentResponse `json:"bundle_components"`
	Stock             []StockLevelResponse      `json:"stock,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
