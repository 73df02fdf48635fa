package postgres

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo stock por producto y bodega sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta la fila inicial; la PK (product_id, warehouse_id) impide duplicados.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, inv.ProductID, inv.WarehouseID, inv.Quantity, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInventory
		}
		if isForeignKeyViolation(err) {
			return domain.ErrWarehouseNotFound
		}
		return wrap("insert inventory", err)
	}
	return nil
}

// Get obtiene el stock actual de un producto en una bodega.
func (r *InventoryRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	return r.get(ctx, "get inventory", `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	return r.get(ctx, "get inventory for update", `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`, productID, warehouseID)
}

func (r *InventoryRepo) get(ctx context.Context, op, query, productID, warehouseID string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return &inv, nil
}

// UpdateQuantity escribe la nueva cantidad de una fila existente.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventory SET quantity = $3, updated_at = $4
		WHERE product_id = $1 AND warehouse_id = $2`
	tag, err := r.q.Exec(ctx, query, inv.ProductID, inv.WarehouseID, inv.Quantity, inv.UpdatedAt)
	if err != nil {
		return wrap("update inventory", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInventoryNotFound
	}
	return nil
}

// ListByProduct lista el stock del producto en todas sus bodegas.
func (r *InventoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Inventory, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1
		ORDER BY warehouse_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("list inventory", err)
	}
	defer rows.Close()

	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt); err != nil {
			return nil, wrap("scan inventory", err)
		}
		list = append(list, &inv)
	}
	if err := rows.Err(); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("list inventory", err)
	}
	return list, nil
}
