package dto

import "time"

// StockAdjustmentRequest entrada para aplicar un cambio de stock.
type StockAdjustmentRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Delta       int64  `json:"delta" validate:"required"`
	Reason      string `json:"reason" validate:"required,oneof=sale restock adjustment damage"`
}

// StockAdjustmentResponse resultado confirmado de un cambio de stock.
type StockAdjustmentResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	OldQuantity int64  `json:"old_quantity"`
	NewQuantity int64  `json:"new_quantity"`
	Reason      string `json:"reason"`
	LogID       string `json:"log_id"`
}

// InventoryLogResponse entrada del historial.
type InventoryLogResponse struct {
	ID           string    `json:"id"`
	OldQuantity  int64     `json:"old_quantity"`
	NewQuantity  int64     `json:"new_quantity"`
	Delta        int64     `json:"delta"`
	ChangeReason string    `json:"change_reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// StockHistoryResponse historial de un par producto/bodega con la verificación de reproducción.
type StockHistoryResponse struct {
	ProductID        string                 `json:"product_id"`
	WarehouseID      string                 `json:"warehouse_id"`
	CurrentQuantity  int64                  `json:"current_quantity"`
	ReplayedQuantity *int64                 `json:"replayed_quantity"`
	Consistent       bool                   `json:"consistent"`
	Entries          []InventoryLogResponse `json:"entries"`
}
