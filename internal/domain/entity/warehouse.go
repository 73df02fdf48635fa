package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario. Pertenece a una única empresa.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
}
