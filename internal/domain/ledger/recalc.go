package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// Change es un nuevo saldo para una fila existente. Cascade devuelve solo
// diferencias; una fila que ya cumple la recurrencia no aparece.
type Change struct {
	ID         int64
	AmountLeft decimal.Decimal
}

// Cascade recorre rows en orden de id y aplica la recurrencia
//
//	saldo(i) = saldo(i-1) - depleción(i-1)
//
// partiendo de (prevLeft, prevDepletion), el estado de la fila inmediatamente
// anterior a rows[0]. Para una edición eso es la fila editada ya con sus
// valores nuevos; para un borrado es la predecesora restante con depleción
// cero sobre el saldo base (la primera sucesora hereda el saldo tal cual).
//
// Con NegativeGuard activo, una fila cuyo saldo recalculado quedaría negativo
// se salta: conserva sus valores, su id se reporta en skipped y el recorrido
// continúa desde su saldo y depleción originales. La fila queda obsoleta a
// propósito; el caller decide si lo reporta.
//
// Cascade es idempotente: aplicar los cambios y volver a ejecutarla con el
// mismo punto de partida no produce cambios nuevos.
func Cascade(prevLeft, prevDepletion decimal.Decimal, rows []entity.LedgerRow, p Policy) (changes []Change, skipped []int64) {
	changes = make([]Change, 0, len(rows))
	for _, row := range rows {
		next := prevLeft.Sub(prevDepletion)
		if p.NegativeGuard && next.IsNegative() {
			skipped = append(skipped, row.ID)
			prevLeft = row.AmountLeft
			prevDepletion = p.Depletion(row)
			continue
		}
		if !next.Equal(row.AmountLeft) {
			changes = append(changes, Change{ID: row.ID, AmountLeft: next})
		}
		prevLeft = next
		prevDepletion = p.Depletion(row)
	}
	return changes, skipped
}

// CarryForward devuelve el saldo que una fila nueva heredaría si se apendea
// después de prev: el saldo de prev menos su depleción.
func CarryForward(prev entity.LedgerRow, p Policy) decimal.Decimal {
	return prev.AmountLeft.Sub(p.Depletion(prev))
}

// Apply escribe los cambios sobre las filas in place, emparejando por id.
// Útil en tests y para reconstruir el estado final sin releer storage.
func Apply(rows []entity.LedgerRow, changes []Change) {
	byID := make(map[int64]decimal.Decimal, len(changes))
	for _, c := range changes {
		byID[c.ID] = c.AmountLeft
	}
	for i := range rows {
		if left, ok := byID[rows[i].ID]; ok {
			rows[i].AmountLeft = left
		}
	}
}
