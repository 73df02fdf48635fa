package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
)

func logEntry(oldQty, newQty int64) *entity.InventoryLog {
	return &entity.InventoryLog{OldQuantity: oldQty, NewQuantity: newQty, ChangeReason: entity.ChangeReasonAdjustment}
}

func TestReplayLog_ReproduceCantidadFinal(t *testing.T) {
	entries := []*entity.InventoryLog{logEntry(10, 15), logEntry(15, 3), logEntry(3, 40)}

	qty, ok, err := inventory.ReplayLog(entries)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(40), qty)
}

func TestReplayLog_Vacio(t *testing.T) {
	qty, ok, err := inventory.ReplayLog(nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, qty)
}

func TestReplayLog_DetectaHuecos(t *testing.T) {
	entries := []*entity.InventoryLog{logEntry(10, 15), logEntry(12, 20)}

	_, _, err := inventory.ReplayLog(entries)

	assert.ErrorIs(t, err, inventory.ErrLogGap)
}
