package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// El stock se maneja por bodega en Inventory.
type Product struct {
	ID                string
	Name              string
	SKU               string          // único en toda la plataforma
	Price             decimal.Decimal // precio de venta, nunca negativo
	SupplierID        *string
	LowStockThreshold int64 // alerta cuando quantity <= umbral
	IsBundle          bool
	BundleComponents  []BundleComponent
	CreatedAt         time.Time
}

// BundleComponent es un valor embebido en el producto: qué producto y cuántas unidades lo componen.
type BundleComponent struct {
	ComponentID string `json:"component_id"`
	Quantity    int64  `json:"quantity"`
}
