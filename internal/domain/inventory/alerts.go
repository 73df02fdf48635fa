package inventory

import (
	"sort"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// IsLowStock es la regla de alerta: cantidad en o por debajo del umbral del producto.
func IsLowStock(quantity, threshold int64) bool {
	return quantity <= threshold
}

// SortAlerts ordena por bodega y luego por producto para una salida reproducible.
func SortAlerts(alerts []entity.LowStockAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].WarehouseID != alerts[j].WarehouseID {
			return alerts[i].WarehouseID < alerts[j].WarehouseID
		}
		return alerts[i].ProductID < alerts[j].ProductID
	})
}
