package domain

import (
	"errors"
	"fmt"
)

// Categorías de error de dominio (sin dependencias externas).
// Cada categoría corresponde a un código estable en la API HTTP.
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStoreUnavailable  = errors.New("almacén de datos no disponible")
)

// Errores específicos; envuelven su categoría para usarse con errors.Is.
var (
	ErrCompanyNotFound   = fmt.Errorf("empresa no encontrada: %w", ErrNotFound)
	ErrWarehouseNotFound = fmt.Errorf("bodega no encontrada: %w", ErrNotFound)
	ErrSupplierNotFound  = fmt.Errorf("proveedor no encontrado: %w", ErrNotFound)
	ErrProductNotFound   = fmt.Errorf("producto no encontrado: %w", ErrNotFound)
	ErrComponentNotFound = fmt.Errorf("componente del bundle no encontrado: %w", ErrNotFound)
	ErrInventoryNotFound = fmt.Errorf("no existe inventario para el producto en la bodega: %w", ErrNotFound)

	ErrDuplicateSKU       = fmt.Errorf("ya existe un producto con este SKU: %w", ErrConflict)
	ErrDuplicateInventory = fmt.Errorf("ya existe inventario para el producto en la bodega: %w", ErrConflict)

	ErrInvalidReason = fmt.Errorf("motivo de cambio inválido: %w", ErrInvalidInput)
)

// ValidationError describe el primer campo que no cumple las invariantes.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye un error de validación para el campo indicado.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Unavailable envuelve un fallo transitorio de infraestructura como ErrStoreUnavailable.
func Unavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, cause)
}
