package entity

// LowStockAlert fila de alerta: inventario en o por debajo del umbral del producto.
type LowStockAlert struct {
	ProductID     string
	ProductName   string
	SKU           string
	WarehouseID   string
	WarehouseName string
	CurrentStock  int64
	Threshold     int64
	Supplier      *AlertSupplier
}

// AlertSupplier datos de contacto del proveedor incluidos en la alerta.
type AlertSupplier struct {
	ID           string
	Name         string
	ContactEmail string
}
