package inventory

import (
	"errors"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ErrLogGap indica que el historial no es continuo: una entrada no parte de la cantidad
// con la que terminó la anterior.
var ErrLogGap = errors.New("historial de inventario discontinuo")

// ReplayLog reconstruye la cantidad final a partir del historial de un par (producto, bodega).
// Parte de la OldQuantity de la entrada más antigua y suma los deltas en orden.
// Un historial vacío devuelve (0, false, nil).
func ReplayLog(entries []*entity.InventoryLog) (qty int64, ok bool, err error) {
	if len(entries) == 0 {
		return 0, false, nil
	}
	qty = entries[0].OldQuantity
	for i, e := range entries {
		if e.OldQuantity != qty {
			return qty, true, fmt.Errorf("%w: entrada %d parte de %d, se esperaba %d", ErrLogGap, i, e.OldQuantity, qty)
		}
		qty += e.Delta()
	}
	return qty, true, nil
}
