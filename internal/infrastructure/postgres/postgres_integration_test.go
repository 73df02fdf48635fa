package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
)

// openTestPool abre la base indicada en TEST_DATABASE_URL; sin ella el test se omite.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func TestPostgres_ProvisionAdjustAndAlerts(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()

	companies := postgres.NewCompanyRepository(pool)
	warehouses := postgres.NewWarehouseRepository(pool)
	suppliers := postgres.NewSupplierRepository(pool)
	products := postgres.NewProductRepository(pool)
	tx := postgres.NewTxRunner(pool)

	company := entity.Company{ID: uuid.NewString(), Name: "Test Company Inc.", CreatedAt: time.Now()}
	require.NoError(t, companies.Create(ctx, &company))
	wh := entity.Warehouse{ID: uuid.NewString(), CompanyID: company.ID, Name: "Main Warehouse", CreatedAt: time.Now()}
	require.NoError(t, warehouses.Create(ctx, &wh))
	sup := entity.Supplier{ID: uuid.NewString(), CompanyID: company.ID, Name: "Widgets R Us", ContactEmail: "orders@widgetsrus.com", CreatedAt: time.Now()}
	require.NoError(t, suppliers.Create(ctx, &sup))

	provision := appinv.NewProvisionProductUseCase(tx, products, warehouses, suppliers, 5*time.Second, nil)
	adjust := appinv.NewAdjustStockUseCase(tx, 5*time.Second, nil)
	history := appinv.NewStockHistoryUseCase(tx, 5*time.Second)
	alerts := appinv.NewLowStockAlertUseCase(postgres.NewAlertRepository(pool), 5*time.Second)

	sku := "IT-" + uuid.NewString()[:8]
	price := decimal.RequireFromString("29.99")
	qty := int64(15)
	threshold := int64(25)
	draft := inventory.ProductDraft{
		Name: "Premium Widget", SKU: sku, Price: &price, WarehouseID: wh.ID,
		InitialQuantity: &qty, LowStockThreshold: &threshold, SupplierID: &sup.ID,
	}
	p, err := provision.CreateProduct(ctx, draft)
	require.NoError(t, err)

	got, err := products.GetBySKU(ctx, sku)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(price))

	_, err = provision.CreateProduct(ctx, draft)
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := adjust.AdjustStock(ctx, appinv.StockAdjustment{ProductID: p.ID, WarehouseID: wh.ID, Delta: -1, Reason: entity.ChangeReasonSale})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	h, err := history.History(ctx, p.ID, wh.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), h.CurrentQuantity)
	assert.Len(t, h.Entries, 10)
	assert.True(t, h.Consistent)

	report, err := alerts.ListLowStockAlerts(ctx, company.ID)
	require.NoError(t, err)
	require.Equal(t, 1, report.Total)
	require.NotNil(t, report.Alerts[0].Supplier)
	assert.Equal(t, sup.ID, report.Alerts[0].Supplier.ID)

	missing, err := products.GetByID(ctx, "no-es-un-uuid")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
