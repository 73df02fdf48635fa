package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// InventoryRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	// Create inserta la fila; devuelve domain.ErrDuplicateInventory si el par ya existe.
	Create(ctx context.Context, inv *entity.Inventory) error
	Get(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	UpdateQuantity(ctx context.Context, inv *entity.Inventory) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.Inventory, error)
}
