package inventory

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// Límites de la columna price NUMERIC(14,2).
const priceScale = 2

var maxPrice = decimal.New(1, 12)

// ProductDraft datos de entrada para aprovisionar un producto con su inventario inicial.
// Los punteros distinguen "ausente" de "cero".
type ProductDraft struct {
	Name              string
	SKU               string
	Price             *decimal.Decimal
	WarehouseID       string
	InitialQuantity   *int64
	SupplierID        *string
	LowStockThreshold *int64
	IsBundle          bool
	BundleComponents  []entity.BundleComponent
}

// NormalizeText recorta espacios y lleva el texto a forma NFC, de modo que dos SKUs
// visualmente idénticos choquen en el índice único.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Normalize devuelve una copia del borrador con textos normalizados.
func (d ProductDraft) Normalize() ProductDraft {
	d.Name = NormalizeText(d.Name)
	d.SKU = NormalizeText(d.SKU)
	d.WarehouseID = strings.TrimSpace(d.WarehouseID)
	if d.SupplierID != nil {
		s := strings.TrimSpace(*d.SupplierID)
		if s == "" {
			d.SupplierID = nil
		} else {
			d.SupplierID = &s
		}
	}
	if len(d.BundleComponents) > 0 {
		comps := make([]entity.BundleComponent, len(d.BundleComponents))
		for i, c := range d.BundleComponents {
			comps[i] = entity.BundleComponent{ComponentID: strings.TrimSpace(c.ComponentID), Quantity: c.Quantity}
		}
		d.BundleComponents = comps
	}
	return d
}

// ValidateProductDraft verifica las invariantes de creación de producto sin tocar el almacén.
// Devuelve *domain.ValidationError con el primer campo inválido.
func ValidateProductDraft(d ProductDraft) error {
	if d.Name == "" {
		return domain.NewValidationError("name", "es requerido")
	}
	if d.SKU == "" {
		return domain.NewValidationError("sku", "es requerido")
	}
	if d.Price == nil {
		return domain.NewValidationError("price", "es requerido")
	}
	if d.Price.IsNegative() {
		return domain.NewValidationError("price", "no puede ser negativo")
	}
	if !d.Price.Equal(d.Price.Truncate(priceScale)) {
		return domain.NewValidationError("price", "admite como máximo 2 decimales")
	}
	if d.Price.GreaterThanOrEqual(maxPrice) {
		return domain.NewValidationError("price", "excede el máximo permitido")
	}
	if d.WarehouseID == "" {
		return domain.NewValidationError("warehouseId", "es requerido")
	}
	if d.InitialQuantity == nil {
		return domain.NewValidationError("initialQuantity", "es requerido")
	}
	if *d.InitialQuantity < 0 {
		return domain.NewValidationError("initialQuantity", "no puede ser negativo")
	}
	if d.LowStockThreshold != nil && *d.LowStockThreshold < 0 {
		return domain.NewValidationError("lowStockThreshold", "no puede ser negativo")
	}
	return validateBundle(d)
}

func validateBundle(d ProductDraft) error {
	if !d.IsBundle {
		if len(d.BundleComponents) > 0 {
			return domain.NewValidationError("bundleComponents", "solo se admiten cuando isBundle es true")
		}
		return nil
	}
	if len(d.BundleComponents) == 0 {
		return domain.NewValidationError("bundleComponents", "un bundle requiere al menos un componente")
	}
	seen := make(map[string]struct{}, len(d.BundleComponents))
	for _, c := range d.BundleComponents {
		id := strings.TrimSpace(c.ComponentID)
		if id == "" {
			return domain.NewValidationError("bundleComponents.componentId", "es requerido")
		}
		if c.Quantity < 1 {
			return domain.NewValidationError("bundleComponents.quantity", "debe ser al menos 1")
		}
		if _, dup := seen[id]; dup {
			return domain.NewValidationError("bundleComponents.componentId", "componente repetido: "+id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ApplyStockChange calcula la nueva cantidad para un cambio de stock.
// No hay escritura si devuelve error: ErrInvalidReason, ValidationError (delta fuera de rango)
// o ErrInsufficientStock.
func ApplyStockChange(reason entity.ChangeReason, oldQty, delta int64) (int64, error) {
	if !reason.Valid() {
		return oldQty, domain.ErrInvalidReason
	}
	if delta > 0 && oldQty > math.MaxInt64-delta {
		return oldQty, domain.NewValidationError("delta", "la cantidad resultante excede el máximo admitido")
	}
	newQty := oldQty + delta
	if newQty < 0 {
		return oldQty, domain.ErrInsufficientStock
	}
	return newQty, nil
}
