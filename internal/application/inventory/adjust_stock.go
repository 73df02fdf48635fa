package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// StockAdjustment entrada de un cambio de stock (venta, reposición, ajuste o daño).
type StockAdjustment struct {
	ProductID   string
	WarehouseID string
	Delta       int64
	Reason      entity.ChangeReason
}

// StockAdjustmentResult resultado confirmado de un cambio de stock.
type StockAdjustmentResult struct {
	ProductID   string
	WarehouseID string
	OldQuantity int64
	NewQuantity int64
	Reason      entity.ChangeReason
	LogID       string
	AppliedAt   time.Time
}

// AdjustStockUseCase aplica deltas de stock con bloqueo de fila y registra cada cambio en el historial.
type AdjustStockUseCase struct {
	txRunner TxRunner
	timeout  time.Duration
	log      *logger.Logger
	now      func() time.Time
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, timeout time.Duration, log *logger.Logger) *AdjustStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustStockUseCase{
		txRunner: txRunner,
		timeout:  timeout,
		log:      log.Component("adjust_stock"),
		now:      time.Now,
	}
}

// AdjustStock inicia una transacción, bloquea la fila de inventario (SELECT FOR UPDATE),
// calcula la nueva cantidad y, si no queda negativa, actualiza el stock y agrega el registro al historial.
// Si la cantidad resultante fuera negativa devuelve ErrInsufficientStock sin escribir nada.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in StockAdjustment) (*StockAdjustmentResult, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.WarehouseID = strings.TrimSpace(in.WarehouseID)
	if !in.Reason.Valid() {
		return nil, domain.ErrInvalidReason
	}
	if in.ProductID == "" {
		return nil, domain.NewValidationError("product_id", "es requerido")
	}
	if in.WarehouseID == "" {
		return nil, domain.NewValidationError("warehouse_id", "es requerido")
	}
	if in.Delta == 0 {
		return nil, domain.NewValidationError("delta", "debe ser distinto de cero")
	}

	ctx, cancel := withStoreTimeout(ctx, uc.timeout)
	defer cancel()

	var result *StockAdjustmentResult
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		stock, err := inventoryRepo.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrInventoryNotFound
		}
		newQty, err := inventory.ApplyStockChange(in.Reason, stock.Quantity, in.Delta)
		if err != nil {
			return err
		}

		now := uc.now()
		oldQty := stock.Quantity
		stock.Quantity = newQty
		stock.UpdatedAt = now
		if err := inventoryRepo.UpdateQuantity(ctx, stock); err != nil {
			return err
		}
		entry := &entity.InventoryLog{
			ID:           uuid.New().String(),
			ProductID:    in.ProductID,
			WarehouseID:  in.WarehouseID,
			OldQuantity:  oldQty,
			NewQuantity:  newQty,
			ChangeReason: in.Reason,
			CreatedAt:    now,
		}
		if err := logRepo.Append(ctx, entry); err != nil {
			return err
		}
		result = &StockAdjustmentResult{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			OldQuantity: oldQty,
			NewQuantity: newQty,
			Reason:      in.Reason,
			LogID:       entry.ID,
			AppliedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", result.ProductID).
		Str("warehouse_id", result.WarehouseID).
		Str("reason", string(result.Reason)).
		Int64("old_quantity", result.OldQuantity).
		Int64("new_quantity", result.NewQuantity).
		Msg("stock ajustado")
	return result, nil
}
