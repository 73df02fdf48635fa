package postgres

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo consulta de stock bajo resuelta en un único join.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// ListLowStock devuelve inventario en o por debajo del umbral en las bodegas de la empresa.
func (r *AlertRepo) ListLowStock(ctx context.Context, companyID string) ([]entity.LowStockAlert, error) {
	query := `
		SELECT p.id, p.name, p.sku, w.id, w.name, i.quantity, p.low_stock_threshold,
		       s.id, s.name, s.contact_email
		FROM inventory i
		JOIN warehouses w ON w.id = i.warehouse_id
		JOIN products p ON p.id = i.product_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE w.company_id = $1 AND i.quantity <= p.low_stock_threshold
		ORDER BY w.id, p.id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("list low stock", err)
	}
	defer rows.Close()

	var list []entity.LowStockAlert
	for rows.Next() {
		var a entity.LowStockAlert
		var supID, supName, supEmail *string
		if err := rows.Scan(
			&a.ProductID, &a.ProductName, &a.SKU, &a.WarehouseID, &a.WarehouseName,
			&a.CurrentStock, &a.Threshold, &supID, &supName, &supEmail,
		); err != nil {
			return nil, wrap("scan low stock", err)
		}
		if supID != nil {
			a.Supplier = &entity.AlertSupplier{ID: *supID, Name: deref(supName), ContactEmail: deref(supEmail)}
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("list low stock", err)
	}
	return list, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
