// Package memory implementa los puertos de persistencia en memoria del proceso sobre go-memdb.
// Se usa en tests y con STORE_DRIVER=memory; no sobrevive reinicios.
package memory

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

const (
	tableCompanies  = "companies"
	tableWarehouses = "warehouses"
	tableSuppliers  = "suppliers"
	tableProducts   = "products"
	tableInventory  = "inventory"
	tableLogs       = "inventory_logs"
)

// logRow entrada del historial con su posición de commit.
type logRow struct {
	entity.InventoryLog
	Seq uint64
}

func schema() *memdb.DBSchema {
	byID := func() *memdb.IndexSchema {
		return &memdb.IndexSchema{Name: "id", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "ID"}}
	}
	byField := func(name, field string) *memdb.IndexSchema {
		return &memdb.IndexSchema{Name: name, Indexer: &memdb.StringFieldIndex{Field: field}}
	}
	pair := &memdb.CompoundIndex{Indexes: []memdb.Indexer{
		&memdb.StringFieldIndex{Field: "ProductID"},
		&memdb.StringFieldIndex{Field: "WarehouseID"},
	}}

	return &memdb.DBSchema{Tables: map[string]*memdb.TableSchema{
		tableCompanies: {
			Name:    tableCompanies,
			Indexes: map[string]*memdb.IndexSchema{"id": byID()},
		},
		tableWarehouses: {
			Name:    tableWarehouses,
			Indexes: map[string]*memdb.IndexSchema{"id": byID(), "company": byField("company", "CompanyID")},
		},
		tableSuppliers: {
			Name:    tableSuppliers,
			Indexes: map[string]*memdb.IndexSchema{"id": byID(), "company": byField("company", "CompanyID")},
		},
		tableProducts: {
			Name: tableProducts,
			Indexes: map[string]*memdb.IndexSchema{
				"id":  byID(),
				"sku": {Name: "sku", Unique: true, AllowMissing: true, Indexer: &memdb.StringFieldIndex{Field: "SKU"}},
			},
		},
		tableInventory: {
			Name: tableInventory,
			Indexes: map[string]*memdb.IndexSchema{
				// una fila por par (producto, bodega)
				"id":        {Name: "id", Unique: true, Indexer: pair},
				"product":   byField("product", "ProductID"),
				"warehouse": byField("warehouse", "WarehouseID"),
			},
		},
		tableLogs: {
			Name: tableLogs,
			Indexes: map[string]*memdb.IndexSchema{
				"id":   byID(),
				"pair": {Name: "pair", Indexer: pair},
			},
		},
	}}
}

// Store almacén en memoria. go-memdb serializa las transacciones de escritura, lo que equivale
// al bloqueo de fila de PostgreSQL con una granularidad mayor; las lecturas usan snapshots.
type Store struct {
	db  *memdb.MemDB
	seq atomic.Uint64
}

// New crea un almacén vacío.
func New() *Store {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		panic(fmt.Sprintf("memory: esquema inválido: %v", err))
	}
	return &Store{db: db}
}

// Run ejecuta fn con repositorios atados a una transacción de escritura; si fn no falla
// se confirma, si falla se aborta. fn solo debe usar los repos recibidos.
func (s *Store) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	stock repository.InventoryRepository,
	logs repository.InventoryLogRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("memory: begin", err)
	}
	txn := s.db.Txn(true)
	defer txn.Abort()

	v := view{store: s, txn: txn}
	if err := fn(&productRepo{v}, &inventoryRepo{v}, &logRepo{v}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("memory: commit", err)
	}
	txn.Commit()
	return nil
}

// Companies repositorio de empresas fuera de transacción.
func (s *Store) Companies() repository.CompanyRepository { return &companyRepo{view{store: s}} }

// Warehouses repositorio de bodegas.
func (s *Store) Warehouses() repository.WarehouseRepository { return &warehouseRepo{view{store: s}} }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{view{store: s}} }

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{view{store: s}} }

// Inventory repositorio de inventario.
func (s *Store) Inventory() repository.InventoryRepository { return &inventoryRepo{view{store: s}} }

// Logs repositorio del historial de inventario.
func (s *Store) Logs() repository.InventoryLogRepository { return &logRepo{view{store: s}} }

// Alerts consultas de stock bajo.
func (s *Store) Alerts() repository.AlertRepository { return &alertRepo{view{store: s}} }

// view decide sobre qué transacción opera un repositorio: la de un Run abierto
// o una propia de lectura (snapshot) o escritura.
type view struct {
	store *Store
	txn   *memdb.Txn
}

func (v view) read(ctx context.Context, op string, fn func(txn *memdb.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("memory: "+op, err)
	}
	if v.txn != nil {
		return fn(v.txn)
	}
	return fn(v.store.db.Txn(false))
}

func (v view) write(ctx context.Context, op string, fn func(txn *memdb.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable("memory: "+op, err)
	}
	if v.txn != nil {
		return fn(v.txn)
	}
	txn := v.store.db.Txn(true)
	defer txn.Abort()
	if err := fn(txn); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// first busca un objeto por índice; nil si no existe.
func first[T any](txn *memdb.Txn, table, index string, args ...any) (*T, error) {
	raw, err := txn.First(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("memory: %s.%s: %w", table, index, err)
	}
	if raw == nil {
		return nil, nil
	}
	return raw.(*T), nil
}

// all recorre un índice y devuelve los objetos almacenados (no copiar fuera sin clonar).
func all[T any](txn *memdb.Txn, table, index string, args ...any) ([]*T, error) {
	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("memory: %s.%s: %w", table, index, err)
	}
	out := make([]*T, 0)
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(*T))
	}
	return out, nil
}

func insert(txn *memdb.Txn, table string, obj any) error {
	if err := txn.Insert(table, obj); err != nil {
		return fmt.Errorf("memory: insert %s: %w", table, err)
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
