package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	appinv "github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// AlertHandler alertas de stock bajo por empresa.
type AlertHandler struct {
	uc   *appinv.LowStockAlertUseCase
	errs errorWriter
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *appinv.LowStockAlertUseCase, log *logger.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, errs: newErrorWriter(log)}
}

// LowStock godoc
// @Summary      Alertas de stock bajo
// @Description  Inventario de las bodegas de la empresa con cantidad en o por debajo del umbral del producto.
// @Tags         alerts
// @Produce      json
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	report, err := h.uc.ListLowStockAlerts(c.UserContext(), c.Params("companyId"))
	if err != nil {
		return h.errs.write(c, err)
	}
	out := dto.LowStockAlertsResponse{
		Alerts:      make([]dto.LowStockAlertResponse, 0, len(report.Alerts)),
		TotalAlerts: report.Total,
	}
	for _, a := range report.Alerts {
		item := dto.LowStockAlertResponse{
			ProductID:     a.ProductID,
			ProductName:   a.ProductName,
			SKU:           a.SKU,
			WarehouseID:   a.WarehouseID,
			WarehouseName: a.WarehouseName,
			CurrentStock:  a.CurrentStock,
			Threshold:     a.Threshold,
		}
		if a.Supplier != nil {
			item.Supplier = &dto.AlertSupplierResponse{ID: a.Supplier.ID, Name: a.Supplier.Name, ContactEmail: a.Supplier.ContactEmail}
		}
		out.Alerts = append(out.Alerts, item)
	}
	return c.JSON(out)
}
