package entity

import "time"

// Inventory representa el stock actual de un producto en una bodega.
// Existe exactamente una fila por par (producto, bodega).
type Inventory struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
