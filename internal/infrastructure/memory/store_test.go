package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

func seed(t *testing.T, s *memory.Store) (entity.Company, entity.Warehouse) {
	t.Helper()
	ctx := context.Background()
	c := entity.Company{ID: "c1", Name: "Acme", CreatedAt: time.Now()}
	w := entity.Warehouse{ID: "w1", CompanyID: c.ID, Name: "Main", CreatedAt: time.Now()}
	require.NoError(t, s.Companies().Create(ctx, &c))
	require.NoError(t, s.Warehouses().Create(ctx, &w))
	return c, w
}

func TestRun_CommitsOnSuccess(t *testing.T) {
	s := memory.New()
	_, w := seed(t, s)
	ctx := context.Background()

	err := s.Run(ctx, func(p repository.ProductRepository, inv repository.InventoryRepository, _ repository.InventoryLogRepository) error {
		if err := p.Create(ctx, &entity.Product{ID: "p1", SKU: "A-1", Name: "A", Price: decimal.NewFromInt(1)}); err != nil {
			return err
		}
		return inv.Create(ctx, &entity.Inventory{ProductID: "p1", WarehouseID: w.ID, Quantity: 3})
	})
	require.NoError(t, err)

	got, err := s.Inventory().Get(ctx, "p1", w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.Quantity)
}

func TestRun_RollsBackOnError(t *testing.T) {
	s := memory.New()
	_, w := seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(p repository.ProductRepository, inv repository.InventoryRepository, _ repository.InventoryLogRepository) error {
		require.NoError(t, p.Create(ctx, &entity.Product{ID: "p1", SKU: "A-1", Name: "A"}))
		require.NoError(t, inv.Create(ctx, &entity.Inventory{ProductID: "p1", WarehouseID: w.ID}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().GetBySKU(ctx, "A-1")
	require.NoError(t, err)
	assert.Nil(t, p)
	inv, err := s.Inventory().Get(ctx, "p1", w.ID)
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestProducts_DuplicateSKU(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "X"}))

	err := s.Products().Create(ctx, &entity.Product{ID: "p2", SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInventory_DuplicatePair(t *testing.T) {
	s := memory.New()
	_, w := seed(t, s)
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "X"}))
	require.NoError(t, s.Inventory().Create(ctx, &entity.Inventory{ProductID: "p1", WarehouseID: w.ID}))

	err := s.Inventory().Create(ctx, &entity.Inventory{ProductID: "p1", WarehouseID: w.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateInventory)
}

func TestProducts_ReturnsCopies(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	sup := "s1"
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: "p1", SKU: "B", SupplierID: &sup,
		IsBundle: true, BundleComponents: []entity.BundleComponent{{ComponentID: "x", Quantity: 2}},
	}))

	got, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	got.BundleComponents[0].Quantity = 99
	*got.SupplierID = "other"

	again, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), again.BundleComponents[0].Quantity)
	assert.Equal(t, "s1", *again.SupplierID)
}

func TestCanceledContext_IsUnavailable(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Products().GetByID(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = s.Run(ctx, func(repository.ProductRepository, repository.InventoryRepository, repository.InventoryLogRepository) error {
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestLogs_OrderAndPurge(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)
	now := time.Now()
	require.NoError(t, s.Logs().Append(ctx, &entity.InventoryLog{ID: "l1", ProductID: "p", WarehouseID: "w", OldQuantity: 0, NewQuantity: 5, CreatedAt: old}))
	require.NoError(t, s.Logs().Append(ctx, &entity.InventoryLog{ID: "l2", ProductID: "p", WarehouseID: "w", OldQuantity: 5, NewQuantity: 3, CreatedAt: now}))
	require.NoError(t, s.Logs().Append(ctx, &entity.InventoryLog{ID: "l3", ProductID: "p", WarehouseID: "other", CreatedAt: now}))

	entries, err := s.Logs().ListByProductWarehouse(ctx, "p", "w")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "l1", entries[0].ID)
	assert.Equal(t, "l2", entries[1].ID)

	n, err := s.Logs().DeleteOlderThan(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entries, err = s.Logs().ListByProductWarehouse(ctx, "p", "w")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "l2", entries[0].ID)
}

func TestAlerts_JoinScopedToCompany(t *testing.T) {
	s := memory.New()
	c, w := seed(t, s)
	ctx := context.Background()
	require.NoError(t, s.Suppliers().Create(ctx, &entity.Supplier{ID: "s1", CompanyID: c.ID, Name: "Widgets R Us", ContactEmail: "orders@widgetsrus.com"}))
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c2"}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w2", CompanyID: "c2", Name: "Other"}))

	sup := "s1"
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "LOW", Name: "Low", LowStockThreshold: 10, SupplierID: &sup}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p2", SKU: "OK", Name: "Ok", LowStockThreshold: 10}))
	require.NoError(t, s.Inventory().Create(ctx, &entity.Inventory{ProductID: "p1", WarehouseID: w.ID, Quantity: 10}))
	require.NoError(t, s.Inventory().Create(ctx, &entity.Inventory{ProductID: "p2", WarehouseID: w.ID, Quantity: 11}))
	require.NoError(t, s.Inventory().Create(ctx, &entity.Inventory{ProductID: "p1", WarehouseID: "w2", Quantity: 0}))

	alerts, err := s.Alerts().ListLowStock(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, "p1", a.ProductID)
	assert.Equal(t, "Main", a.WarehouseName)
	assert.Equal(t, int64(10), a.CurrentStock)
	require.NotNil(t, a.Supplier)
	assert.Equal(t, "orders@widgetsrus.com", a.Supplier.ContactEmail)

	none, err := s.Alerts().ListLowStock(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWarehouses_RequireCompany(t *testing.T) {
	s := memory.New()
	err := s.Warehouses().Create(context.Background(), &entity.Warehouse{ID: "w", CompanyID: "nope"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestRun_UncommittedWritesInvisibleToSnapshots(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	err := s.Run(ctx, func(p repository.ProductRepository, _ repository.InventoryRepository, _ repository.InventoryLogRepository) error {
		require.NoError(t, p.Create(ctx, &entity.Product{ID: "p1", SKU: "SNAP"}))

		inTx, err := p.GetBySKU(ctx, "SNAP")
		require.NoError(t, err)
		assert.NotNil(t, inTx)

		outside, err := s.Products().GetBySKU(ctx, "SNAP")
		require.NoError(t, err)
		assert.Nil(t, outside)
		return nil
	})
	require.NoError(t, err)

	committed, err := s.Products().GetBySKU(ctx, "SNAP")
	require.NoError(t, err)
	assert.NotNil(t, committed)
}

func TestRun_DuplicateSKUAbortsWholeTransaction(t *testing.T) {
	s := memory.New()
	_, w := seed(t, s)
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "X"}))

	err := s.Run(ctx, func(p repository.ProductRepository, inv repository.InventoryRepository, _ repository.InventoryLogRepository) error {
		require.NoError(t, inv.Create(ctx, &entity.Inventory{ProductID: "p1", WarehouseID: w.ID, Quantity: 7}))
		return p.Create(ctx, &entity.Product{ID: "p2", SKU: "X"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)

	got, err := s.Inventory().Get(ctx, "p1", w.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	p2, err := s.Products().GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, p2)
}

func TestLogs_AbortedAppendIsDiscarded(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(_ repository.ProductRepository, _ repository.InventoryRepository, logs repository.InventoryLogRepository) error {
		require.NoError(t, logs.Append(ctx, &entity.InventoryLog{ID: "lost", ProductID: "p", WarehouseID: "w", NewQuantity: 1}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, s.Logs().Append(ctx, &entity.InventoryLog{ID: "l1", ProductID: "p", WarehouseID: "w", NewQuantity: 2}))
	require.NoError(t, s.Logs().Append(ctx, &entity.InventoryLog{ID: "l2", ProductID: "p", WarehouseID: "w", OldQuantity: 2, NewQuantity: 4}))

	entries, err := s.Logs().ListByProductWarehouse(ctx, "p", "w")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "l1", entries[0].ID)
	assert.Equal(t, "l2", entries[1].ID)
}
