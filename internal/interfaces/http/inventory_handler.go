package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	appinv "github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// InventoryHandler cambios de stock e historial.
type InventoryHandler struct {
	adjust  *appinv.AdjustStockUseCase
	history *appinv.StockHistoryUseCase
	errs    errorWriter
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *appinv.AdjustStockUseCase, history *appinv.StockHistoryUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, history: history, errs: newErrorWriter(log)}
}

// AdjustStock godoc
// @Summary      Aplicar un cambio de stock
// @Description  Venta, reposición, ajuste o daño. Bloquea la fila y registra el cambio en el historial.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "Cambio de stock"
// @Success      200   {object}  dto.StockAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.adjust.AdjustStock(c.UserContext(), appinv.StockAdjustment{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Delta:       in.Delta,
		Reason:      entity.ChangeReason(in.Reason),
	})
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(dto.StockAdjustmentResponse{
		ProductID:   res.ProductID,
		WarehouseID: res.WarehouseID,
		OldQuantity: res.OldQuantity,
		NewQuantity: res.NewQuantity,
		Reason:      string(res.Reason),
		LogID:       res.LogID,
	})
}

// History godoc
// @Summary      Historial de stock de un producto en una bodega
// @Tags         inventory
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	hist, err := h.history.History(c.UserContext(), c.Query("product_id"), c.Query("warehouse_id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	out := dto.StockHistoryResponse{
		ProductID:        hist.ProductID,
		WarehouseID:      hist.WarehouseID,
		CurrentQuantity:  hist.CurrentQuantity,
		ReplayedQuantity: hist.ReplayedQuantity,
		Consistent:       hist.Consistent,
		Entries:          make([]dto.InventoryLogResponse, 0, len(hist.Entries)),
	}
	for _, e := range hist.Entries {
		out.Entries = append(out.Entries, dto.InventoryLogResponse{
			ID:           e.ID,
			OldQuantity:  e.OldQuantity,
			NewQuantity:  e.NewQuantity,
			Delta:        e.Delta(),
			ChangeReason: string(e.ChangeReason),
			CreatedAt:    e.CreatedAt,
		})
	}
	return c.JSON(out)
}
