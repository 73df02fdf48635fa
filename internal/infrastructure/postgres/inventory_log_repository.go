package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo historial append-only de cambios de stock.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Append agrega una entrada; seq (BIGSERIAL) fija el orden de commit.
func (r *InventoryLogRepo) Append(ctx context.Context, e *entity.InventoryLog) error {
	query := `
		INSERT INTO inventory_logs (id, product_id, warehouse_id, old_quantity, new_quantity, change_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductID, e.WarehouseID, e.OldQuantity, e.NewQuantity, string(e.ChangeReason), e.CreatedAt,
	)
	if err != nil {
		return wrap("insert inventory log", err)
	}
	return nil
}

// ListByProductWarehouse devuelve las entradas del par en orden de commit.
func (r *InventoryLogRepo) ListByProductWarehouse(ctx context.Context, productID, warehouseID string) ([]*entity.InventoryLog, error) {
	query := `
		SELECT id, product_id, warehouse_id, old_quantity, new_quantity, change_reason, created_at
		FROM inventory_logs
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY seq`
	rows, err := r.q.Query(ctx, query, productID, warehouseID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("list inventory logs", err)
	}
	defer rows.Close()

	var list []*entity.InventoryLog
	for rows.Next() {
		var e entity.InventoryLog
		var reason string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.WarehouseID, &e.OldQuantity, &e.NewQuantity, &reason, &e.CreatedAt); err != nil {
			return nil, wrap("scan inventory log", err)
		}
		e.ChangeReason = entity.ChangeReason(reason)
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("list inventory logs", err)
	}
	return list, nil
}

// DeleteOlderThan elimina las entradas anteriores al corte de retención.
func (r *InventoryLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, wrap("purge inventory logs", err)
	}
	return tag.RowsAffected(), nil
}
