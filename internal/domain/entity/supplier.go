package entity

import "time"

// Supplier proveedor de productos, con alcance de empresa.
type Supplier struct {
	ID           string
	CompanyID    string
	Name         string
	ContactEmail string
	ContactPhone string
	CreatedAt    time.Time
}
