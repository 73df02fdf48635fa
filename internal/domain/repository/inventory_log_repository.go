package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// InventoryLogRepository historial append-only de cambios de stock.
type InventoryLogRepository interface {
	Append(ctx context.Context, entry *entity.InventoryLog) error
	// ListByProductWarehouse devuelve las entradas en orden de commit (más antigua primero).
	ListByProductWarehouse(ctx context.Context, productID, warehouseID string) ([]*entity.InventoryLog, error)
	// DeleteOlderThan elimina entradas vencidas por la política de retención.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
