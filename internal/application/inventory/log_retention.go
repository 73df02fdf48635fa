package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// DefaultLogRetention periodo durante el cual se conserva el historial de inventario.
const DefaultLogRetention = 730 * 24 * time.Hour

// LogRetentionUseCase elimina entradas del historial más antiguas que la retención configurada.
// Corre fuera del camino de escritura: ningún ajuste depende de que el historial sobreviva más allá del periodo.
type LogRetentionUseCase struct {
	logRepo   repository.InventoryLogRepository
	retention time.Duration
	timeout   time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// NewLogRetentionUseCase construye el purgador del historial.
func NewLogRetentionUseCase(logRepo repository.InventoryLogRepository, retention, timeout time.Duration, log *logger.Logger) *LogRetentionUseCase {
	if retention <= 0 {
		retention = DefaultLogRetention
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LogRetentionUseCase{
		logRepo:   logRepo,
		retention: retention,
		timeout:   timeout,
		log:       log.Component("log_retention"),
		now:       time.Now,
	}
}

// Purge elimina las entradas vencidas y devuelve cuántas se borraron.
func (uc *LogRetentionUseCase) Purge(ctx context.Context) (int64, error) {
	ctx, cancel := withStoreTimeout(ctx, uc.timeout)
	defer cancel()

	cutoff := uc.now().Add(-uc.retention)
	n, err := uc.logRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("historial de inventario purgado")
	}
	return n, nil
}

// Run purga al arrancar y luego en cada intervalo hasta que ctx se cancela.
// Los fallos se registran y se reintenta en el siguiente ciclo.
func (uc *LogRetentionUseCase) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := uc.Purge(ctx); err != nil && ctx.Err() == nil {
			uc.log.Error().Err(err).Msg("purga del historial")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
