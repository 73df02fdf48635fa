package dto

// AlertSupplierResponse contacto del proveedor para reabastecer.
type AlertSupplierResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// LowStockAlertResponse producto en o por debajo de su umbral en una bodega.
type LowStockAlertResponse struct {
	ProductID     string                 `json:"product_id"`
	ProductName   string                 `json:"product_name"`
	SKU           string                 `json:"sku"`
	WarehouseID   string                 `json:"warehouse_id"`
	WarehouseName string                 `json:"warehouse_name"`
	CurrentStock  int64                  `json:"current_stock"`
	Threshold     int64                  `json:"threshold"`
	Supplier      *AlertSupplierResponse `json:"supplier"`
}

// LowStockAlertsResponse respuesta del listado de alertas.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertResponse `json:"alerts"`
	TotalAlerts int                     `json:"total_alerts"`
}
