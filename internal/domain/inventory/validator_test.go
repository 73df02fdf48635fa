package inventory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
)

func ptr[T any](v T) *T { return &v }

func validDraft() inventory.ProductDraft {
	return inventory.ProductDraft{
		Name:            "Widget",
		SKU:             "SKU-1",
		Price:           ptr(decimal.RequireFromString("9.99")),
		WarehouseID:     "wh-1",
		InitialQuantity: ptr(int64(5)),
	}
}

func TestValidateProductDraft_Valido(t *testing.T) {
	assert.NoError(t, inventory.ValidateProductDraft(validDraft()))
}

func TestValidateProductDraft_PrecioCeroPermitido(t *testing.T) {
	d := validDraft()
	d.Price = ptr(decimal.Zero)
	assert.NoError(t, inventory.ValidateProductDraft(d))
}

func TestValidateProductDraft_PrecioDentroDeLaColumna(t *testing.T) {
	for _, price := range []string{"9.990", "999999999999.99", "0.01"} {
		d := validDraft()
		d.Price = ptr(decimal.RequireFromString(price))
		assert.NoError(t, inventory.ValidateProductDraft(d), price)
	}
}

func TestValidateProductDraft_PrimerCampoInvalido(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*inventory.ProductDraft)
		field  string
	}{
		{"sin nombre", func(d *inventory.ProductDraft) { d.Name = "" }, "name"},
		{"sin sku", func(d *inventory.ProductDraft) { d.SKU = "" }, "sku"},
		{"sin precio", func(d *inventory.ProductDraft) { d.Price = nil }, "price"},
		{"precio negativo", func(d *inventory.ProductDraft) { d.Price = ptr(decimal.NewFromInt(-1)) }, "price"},
		{"sin bodega", func(d *inventory.ProductDraft) { d.WarehouseID = "" }, "warehouseId"},
		{"sin cantidad inicial", func(d *inventory.ProductDraft) { d.InitialQuantity = nil }, "initialQuantity"},
		{"cantidad negativa", func(d *inventory.ProductDraft) { d.InitialQuantity = ptr(int64(-1)) }, "initialQuantity"},
		{"precio con tres decimales", func(d *inventory.ProductDraft) { d.Price = ptr(decimal.RequireFromString("9.999")) }, "price"},
		{"precio fuera de rango", func(d *inventory.ProductDraft) { d.Price = ptr(decimal.RequireFromString("10000000000000")) }, "price"},
		{"precio en el límite", func(d *inventory.ProductDraft) { d.Price = ptr(decimal.New(1, 12)) }, "price"},
		{"umbral negativo", func(d *inventory.ProductDraft) { d.LowStockThreshold = ptr(int64(-3)) }, "lowStockThreshold"},
		{"nombre y sku vacíos reporta nombre", func(d *inventory.ProductDraft) { d.Name, d.SKU = "", "" }, "name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)

			err := inventory.ValidateProductDraft(d)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestValidateProductDraft_Bundles(t *testing.T) {
	t.Run("componentes sin isBundle", func(t *testing.T) {
		d := validDraft()
		d.BundleComponents = []entity.BundleComponent{{ComponentID: "p-1", Quantity: 1}}
		assert.ErrorIs(t, inventory.ValidateProductDraft(d), domain.ErrInvalidInput)
	})
	t.Run("bundle vacío", func(t *testing.T) {
		d := validDraft()
		d.IsBundle = true
		assert.ErrorIs(t, inventory.ValidateProductDraft(d), domain.ErrInvalidInput)
	})
	t.Run("cantidad cero", func(t *testing.T) {
		d := validDraft()
		d.IsBundle = true
		d.BundleComponents = []entity.BundleComponent{{ComponentID: "p-1", Quantity: 0}}
		assert.ErrorIs(t, inventory.ValidateProductDraft(d), domain.ErrInvalidInput)
	})
	t.Run("componente repetido", func(t *testing.T) {
		d := validDraft()
		d.IsBundle = true
		d.BundleComponents = []entity.BundleComponent{{ComponentID: "p-1", Quantity: 1}, {ComponentID: "p-1", Quantity: 2}}
		assert.ErrorIs(t, inventory.ValidateProductDraft(d), domain.ErrInvalidInput)
	})
	t.Run("bundle válido", func(t *testing.T) {
		d := validDraft()
		d.IsBundle = true
		d.BundleComponents = []entity.BundleComponent{{ComponentID: "p-1", Quantity: 1}, {ComponentID: "p-2", Quantity: 3}}
		assert.NoError(t, inventory.ValidateProductDraft(d))
	})
}

func TestNormalize_UnificaFormasUnicode(t *testing.T) {
	// "é" precompuesta frente a "e" + acento combinante
	composed := inventory.ProductDraft{SKU: "  CAF\u00e9-1 "}.Normalize()
	decomposed := inventory.ProductDraft{SKU: "CAFe\u0301-1"}.Normalize()

	assert.Equal(t, composed.SKU, decomposed.SKU)
	assert.Equal(t, "CAF\u00e9-1", composed.SKU)
}

func TestNormalize_SupplierVacioEsAusente(t *testing.T) {
	d := validDraft()
	d.SupplierID = ptr("   ")
	assert.Nil(t, d.Normalize().SupplierID)
}

func TestApplyStockChange(t *testing.T) {
	qty, err := inventory.ApplyStockChange(entity.ChangeReasonRestock, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), qty)

	qty, err = inventory.ApplyStockChange(entity.ChangeReasonSale, 10, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)

	qty, err = inventory.ApplyStockChange(entity.ChangeReasonDamage, 10, -11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), qty)

	qty, err = inventory.ApplyStockChange(entity.ChangeReasonRestock, 10, math.MaxInt64)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "delta", ve.Field)
	assert.Equal(t, int64(10), qty)

	qty, err = inventory.ApplyStockChange(entity.ChangeReasonRestock, 0, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), qty)

	_, err = inventory.ApplyStockChange(entity.ChangeReason("theft"), 10, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidReason)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
