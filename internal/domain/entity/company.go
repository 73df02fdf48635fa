package entity

import "time"

// Company representa una organización/tenant dueña de bodegas y proveedores.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
