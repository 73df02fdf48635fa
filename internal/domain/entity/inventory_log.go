package entity

import "time"

// ChangeReason motivo de un cambio de stock.
type ChangeReason string

// Motivos de cambio admitidos en el historial.
const (
	ChangeReasonSale       ChangeReason = "sale"
	ChangeReasonRestock    ChangeReason = "restock"
	ChangeReasonAdjustment ChangeReason = "adjustment"
	ChangeReasonDamage     ChangeReason = "damage"
)

// ChangeReasons lista los motivos válidos en orden estable.
var ChangeReasons = []ChangeReason{
	ChangeReasonSale,
	ChangeReasonRestock,
	ChangeReasonAdjustment,
	ChangeReasonDamage,
}

// Valid informa si el motivo pertenece al enum.
func (r ChangeReason) Valid() bool {
	switch r {
	case ChangeReasonSale, ChangeReasonRestock, ChangeReasonAdjustment, ChangeReasonDamage:
		return true
	}
	return false
}

// InventoryLog registro inmutable de un cambio de stock. Nunca se actualiza.
type InventoryLog struct {
	ID           string
	ProductID    string
	WarehouseID  string
	OldQuantity  int64
	NewQuantity  int64
	ChangeReason ChangeReason
	CreatedAt    time.Time
}

// Delta devuelve la variación aplicada por este registro.
func (l *InventoryLog) Delta() int64 {
	return l.NewQuantity - l.OldQuantity
}
