package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// StockHistory historial de un par (producto, bodega) junto con la verificación de reproducción.
type StockHistory struct {
	ProductID        string
	WarehouseID      string
	CurrentQuantity  int64
	ReplayedQuantity *int64 // nil si no hay entradas retenidas
	Consistent       bool
	Entries          []*entity.InventoryLog
}

// StockHistoryUseCase lee el historial y comprueba que reproduce la cantidad actual.
type StockHistoryUseCase struct {
	txRunner TxRunner
	timeout  time.Duration
}

// NewStockHistoryUseCase construye el caso de uso.
func NewStockHistoryUseCase(txRunner TxRunner, timeout time.Duration) *StockHistoryUseCase {
	return &StockHistoryUseCase{txRunner: txRunner, timeout: timeout}
}

// History bloquea la fila de inventario para leer cantidad e historial en el mismo punto.
func (uc *StockHistoryUseCase) History(ctx context.Context, productID, warehouseID string) (*StockHistory, error) {
	productID = strings.TrimSpace(productID)
	warehouseID = strings.TrimSpace(warehouseID)
	if productID == "" {
		return nil, domain.NewValidationError("product_id", "es requerido")
	}
	if warehouseID == "" {
		return nil, domain.NewValidationError("warehouse_id", "es requerido")
	}

	ctx, cancel := withStoreTimeout(ctx, uc.timeout)
	defer cancel()

	var out *StockHistory
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		stock, err := inventoryRepo.GetForUpdate(ctx, productID, warehouseID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrInventoryNotFound
		}
		entries, err := logRepo.ListByProductWarehouse(ctx, productID, warehouseID)
		if err != nil {
			return err
		}
		out = &StockHistory{
			ProductID:       productID,
			WarehouseID:     warehouseID,
			CurrentQuantity: stock.Quantity,
			Entries:         entries,
			Consistent:      true,
		}
		replayed, ok, err := inventory.ReplayLog(entries)
		switch {
		case errors.Is(err, inventory.ErrLogGap):
			out.Consistent = false
		case err != nil:
			return err
		case ok:
			out.ReplayedQuantity = &replayed
			out.Consistent = replayed == stock.Quantity
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Entries == nil {
		out.Entries = []*entity.InventoryLog{}
	}
	return out, nil
}
