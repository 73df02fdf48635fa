package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stockflow-api/internal/interfaces/http"
)

const (
	testCompanyID   = "00000000-0000-0000-0000-000000000001"
	testWarehouseID = "00000000-0000-0000-0000-000000000002"
)

type failingAlerts struct{ err error }

func (f failingAlerts) ListLowStock(context.Context, string) ([]entity.LowStockAlert, error) {
	return nil, f.err
}

func buildTestApp(t *testing.T, s *memory.Store, alerts *appinv.LowStockAlertUseCase) *fiber.App {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: testCompanyID, Name: "Test Company Inc.", CreatedAt: time.Now()}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: testWarehouseID, CompanyID: testCompanyID, Name: "Main Warehouse", CreatedAt: time.Now()}))

	if alerts == nil {
		alerts = appinv.NewLowStockAlertUseCase(s.Alerts(), time.Second)
	}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:     usecase.NewCompanyUseCase(s.Companies(), time.Second),
		WarehouseUC:   usecase.NewWarehouseUseCase(s.Warehouses(), s.Companies(), time.Second),
		SupplierUC:    usecase.NewSupplierUseCase(s.Suppliers(), s.Companies(), time.Second),
		ProductUC:     usecase.NewProductUseCase(s.Products(), s.Inventory(), time.Second),
		ProvisionUC:   appinv.NewProvisionProductUseCase(s, s.Products(), s.Warehouses(), s.Suppliers(), time.Second, nil),
		AdjustStockUC: appinv.NewAdjustStockUseCase(s, time.Second, nil),
		HistoryUC:     appinv.NewStockHistoryUseCase(s, time.Second),
		AlertsUC:      alerts,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func productBody(sku string) map[string]any {
	return map[string]any{
		"name":            "Widget",
		"sku":             sku,
		"price":           9.99,
		"warehouseId":     testWarehouseID,
		"initialQuantity": 5,
	}
}

func TestCreateProduct_Created(t *testing.T) {
	app := buildTestApp(t, memory.New(), nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/products", productBody("SKU-1"))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Product created", body["message"])
	id, _ := body["product_id"].(string)
	require.NotEmpty(t, id)

	resp, body = doJSON(t, app, http.MethodGet, "/api/products/"+id, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "SKU-1", body["sku"])
	assert.Equal(t, "9.99", body["price"])
}

func TestCreateProduct_ErrorMapping(t *testing.T) {
	app := buildTestApp(t, memory.New(), nil)
	resp, _ := doJSON(t, app, http.MethodPost, "/api/products", productBody("DUP-1"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	missingPrice := productBody("P-1")
	delete(missingPrice, "price")
	lossyPrice := productBody("P-2")
	lossyPrice["price"] = 9.999
	unknownWarehouse := productBody("W-1")
	unknownWarehouse["warehouseId"] = "00000000-0000-0000-0000-00000000dead"

	tests := []struct {
		name   string
		body   any
		status int
		code   string
		field  string
	}{
		{"sku duplicado", productBody("DUP-1"), fiber.StatusConflict, "CONFLICT", ""},
		{"bodega inexistente", unknownWarehouse, fiber.StatusNotFound, "NOT_FOUND", ""},
		{"precio ausente", missingPrice, fiber.StatusBadRequest, "INVALID_INPUT", "price"},
		{"precio con tres decimales", lossyPrice, fiber.StatusBadRequest, "INVALID_INPUT", "price"},
		{"json inválido", `{"name":`, fiber.StatusBadRequest, "INVALID_BODY", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/api/products", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body["code"])
			if tt.field != "" {
				assert.Equal(t, tt.field, body["field"])
			}
		})
	}
}

func TestAdjustStock_AndHistory(t *testing.T) {
	app := buildTestApp(t, memory.New(), nil)
	_, created := doJSON(t, app, http.MethodPost, "/api/products", productBody("ADJ-1"))
	productID := created["product_id"].(string)

	resp, body := doJSON(t, app, http.MethodPost, "/api/inventory/adjustments", map[string]any{
		"product_id": productID, "warehouse_id": testWarehouseID, "delta": -2, "reason": "sale",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, body["old_quantity"])
	assert.EqualValues(t, 3, body["new_quantity"])
	assert.NotEmpty(t, body["log_id"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/inventory/adjustments", map[string]any{
		"product_id": productID, "warehouse_id": testWarehouseID, "delta": -10, "reason": "sale",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/inventory/adjustments", map[string]any{
		"product_id": productID, "warehouse_id": testWarehouseID, "delta": 1, "reason": "gift",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", body["code"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/inventory/history?product_id="+productID+"&warehouse_id="+testWarehouseID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["current_quantity"])
	assert.Equal(t, true, body["consistent"])
	entries, _ := body["entries"].([]any)
	assert.Len(t, entries, 1)
}

func TestLowStockAlerts_Endpoint(t *testing.T) {
	app := buildTestApp(t, memory.New(), nil)
	low := productBody("LOW-1")
	low["lowStockThreshold"] = 25
	_, _ = doJSON(t, app, http.MethodPost, "/api/products", low)
	ok := productBody("OK-1")
	ok["lowStockThreshold"] = 1
	_, _ = doJSON(t, app, http.MethodPost, "/api/products", ok)

	resp, body := doJSON(t, app, http.MethodGet, "/api/companies/"+testCompanyID+"/alerts/low-stock", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total_alerts"])
	alerts := body["alerts"].([]any)
	require.Len(t, alerts, 1)
	first := alerts[0].(map[string]any)
	assert.Equal(t, "LOW-1", first["sku"])
	assert.EqualValues(t, 5, first["current_stock"])
	assert.EqualValues(t, 25, first["threshold"])
	assert.Nil(t, first["supplier"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/companies/unknown/alerts/low-stock", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["total_alerts"])
	assert.Equal(t, []any{}, body["alerts"])
}

func TestStoreFailures_Map500(t *testing.T) {
	unavailable := appinv.NewLowStockAlertUseCase(failingAlerts{err: domain.Unavailable("list low stock", context.DeadlineExceeded)}, time.Second)
	app := buildTestApp(t, memory.New(), unavailable)

	resp, body := doJSON(t, app, http.MethodGet, "/api/companies/"+testCompanyID+"/alerts/low-stock", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "STORE_UNAVAILABLE", body["code"])
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	internal := appinv.NewLowStockAlertUseCase(failingAlerts{err: errors.New("pq: secreto")}, time.Second)
	app = buildTestApp(t, memory.New(), internal)
	resp, body = doJSON(t, app, http.MethodGet, "/api/companies/"+testCompanyID+"/alerts/low-stock", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.NotContains(t, body["message"], "secreto")
}

func TestCatalogRoutes(t *testing.T) {
	app := buildTestApp(t, memory.New(), nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/companies/"+testCompanyID+"/suppliers", map[string]any{
		"name": "Widgets R Us", "contact_email": "orders@widgetsrus.com", "contact_phone": "+1-555-0123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, testCompanyID, body["company_id"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/companies/"+testCompanyID+"/warehouses", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/warehouses/"+testWarehouseID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/companies/missing", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/companies", map[string]any{"name": ""})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "name", body["field"])
}
