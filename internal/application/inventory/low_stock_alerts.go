package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// LowStockReport alertas de una empresa con su total.
type LowStockReport struct {
	Alerts []entity.LowStockAlert
	Total  int
}

// LowStockAlertUseCase genera las alertas de stock bajo de una empresa.
// El join inventario/producto/bodega/proveedor se resuelve en una sola consulta del repositorio;
// aquí solo se ordena y se cuenta. Las lecturas no son transaccionales: las alertas son orientativas.
type LowStockAlertUseCase struct {
	alertRepo repository.AlertRepository
	timeout   time.Duration
}

// NewLowStockAlertUseCase construye el caso de uso de alertas.
func NewLowStockAlertUseCase(alertRepo repository.AlertRepository, timeout time.Duration) *LowStockAlertUseCase {
	return &LowStockAlertUseCase{alertRepo: alertRepo, timeout: timeout}
}

// ListLowStockAlerts devuelve las filas de inventario de las bodegas de la empresa con
// quantity <= low_stock_threshold, ordenadas por bodega y producto.
// Una empresa sin bodegas (o inexistente) produce una lista vacía.
func (uc *LowStockAlertUseCase) ListLowStockAlerts(ctx context.Context, companyID string) (*LowStockReport, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, domain.NewValidationError("companyId", "es requerido")
	}

	ctx, cancel := withStoreTimeout(ctx, uc.timeout)
	defer cancel()

	alerts, err := uc.alertRepo.ListLowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []entity.LowStockAlert{}
	}
	inventory.SortAlerts(alerts)

	return &LowStockReport{Alerts: alerts, Total: len(alerts)}, nil
}
