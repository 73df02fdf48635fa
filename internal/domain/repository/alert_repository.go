package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// AlertRepository resuelve en una sola consulta el join inventario/producto/bodega/proveedor
// de una empresa y devuelve las filas con quantity <= low_stock_threshold.
type AlertRepository interface {
	ListLowStock(ctx context.Context, companyID string) ([]entity.LowStockAlert, error)
}
