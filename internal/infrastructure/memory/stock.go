package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
)

type inventoryRepo struct{ v view }

// Create exige producto y bodega existentes; el índice compuesto (producto, bodega) es único.
func (r *inventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	return r.v.write(ctx, "create inventory", func(txn *memdb.Txn) error {
		p, err := first[entity.Product](txn, tableProducts, "id", inv.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		w, err := first[entity.Warehouse](txn, tableWarehouses, "id", inv.WarehouseID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrWarehouseNotFound
		}
		existing, err := first[entity.Inventory](txn, tableInventory, "id", inv.ProductID, inv.WarehouseID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateInventory
		}
		row := *inv
		return insert(txn, tableInventory, &row)
	})
}

func (r *inventoryRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	var out *entity.Inventory
	err := r.v.read(ctx, "get inventory", func(txn *memdb.Txn) error {
		inv, err := first[entity.Inventory](txn, tableInventory, "id", productID, warehouseID)
		if inv != nil {
			cp := *inv
			out = &cp
		}
		return err
	})
	return out, err
}

// GetForUpdate dentro de Run la transacción de escritura ya tiene el almacén en exclusiva.
func (r *inventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	return r.Get(ctx, productID, warehouseID)
}

// UpdateQuantity reemplaza la fila; los objetos indexados nunca se mutan en sitio.
func (r *inventoryRepo) UpdateQuantity(ctx context.Context, inv *entity.Inventory) error {
	return r.v.write(ctx, "update inventory", func(txn *memdb.Txn) error {
		cur, err := first[entity.Inventory](txn, tableInventory, "id", inv.ProductID, inv.WarehouseID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrInventoryNotFound
		}
		row := *cur
		row.Quantity = inv.Quantity
		row.UpdatedAt = inv.UpdatedAt
		return insert(txn, tableInventory, &row)
	})
}

func (r *inventoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	err := r.v.read(ctx, "list inventory", func(txn *memdb.Txn) error {
		rows, err := all[entity.Inventory](txn, tableInventory, "product", productID)
		if err != nil {
			return err
		}
		out = make([]*entity.Inventory, 0, len(rows))
		for _, inv := range rows {
			cp := *inv
			out = append(out, &cp)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
		return nil
	})
	return out, err
}

type logRepo struct{ v view }

// Append asigna la posición de commit; una transacción abortada solo deja un hueco en seq.
func (r *logRepo) Append(ctx context.Context, e *entity.InventoryLog) error {
	return r.v.write(ctx, "append inventory log", func(txn *memdb.Txn) error {
		return insert(txn, tableLogs, &logRow{InventoryLog: *e, Seq: r.v.store.seq.Add(1)})
	})
}

func (r *logRepo) ListByProductWarehouse(ctx context.Context, productID, warehouseID string) ([]*entity.InventoryLog, error) {
	var out []*entity.InventoryLog
	err := r.v.read(ctx, "list inventory logs", func(txn *memdb.Txn) error {
		rows, err := all[logRow](txn, tableLogs, "pair", productID, warehouseID)
		if err != nil {
			return err
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Seq < rows[j].Seq })
		out = make([]*entity.InventoryLog, 0, len(rows))
		for _, row := range rows {
			e := row.InventoryLog
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

func (r *logRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.v.write(ctx, "purge inventory logs", func(txn *memdb.Txn) error {
		rows, err := all[logRow](txn, tableLogs, "id")
		if err != nil {
			return err
		}
		for _, row := range rows {
			if !row.CreatedAt.Before(cutoff) {
				continue
			}
			if err := txn.Delete(tableLogs, row); err != nil {
				return fmt.Errorf("memory: delete %s: %w", tableLogs, err)
			}
			deleted++
		}
		return nil
	})
	return deleted, err
}

type alertRepo struct{ v view }

// ListLowStock recorre las bodegas de la empresa sobre un snapshot de lectura.
func (r *alertRepo) ListLowStock(ctx context.Context, companyID string) ([]entity.LowStockAlert, error) {
	var out []entity.LowStockAlert
	err := r.v.read(ctx, "list low stock", func(txn *memdb.Txn) error {
		warehouses, err := all[entity.Warehouse](txn, tableWarehouses, "company", companyID)
		if err != nil {
			return err
		}
		out = make([]entity.LowStockAlert, 0)
		for _, w := range warehouses {
			rows, err := all[entity.Inventory](txn, tableInventory, "warehouse", w.ID)
			if err != nil {
				return err
			}
			for _, inv := range rows {
				p, err := first[entity.Product](txn, tableProducts, "id", inv.ProductID)
				if err != nil {
					return err
				}
				if p == nil || !inventory.IsLowStock(inv.Quantity, p.LowStockThreshold) {
					continue
				}
				alert := entity.LowStockAlert{
					ProductID:     p.ID,
					ProductName:   p.Name,
					SKU:           p.SKU,
					WarehouseID:   w.ID,
					WarehouseName: w.Name,
					CurrentStock:  inv.Quantity,
					Threshold:     p.LowStockThreshold,
				}
				if p.SupplierID != nil {
					s, err := first[entity.Supplier](txn, tableSuppliers, "id", *p.SupplierID)
					if err != nil {
						return err
					}
					if s != nil {
						alert.Supplier = &entity.AlertSupplier{ID: s.ID, Name: s.Name, ContactEmail: s.ContactEmail}
					}
				}
				out = append(out, alert)
			}
		}
		return nil
	})
	return out, err
}
