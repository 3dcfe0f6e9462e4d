package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// LineageFilter acota un recorrido del ledger dentro de su tabla. Los campos
// nil no filtran. El scoping histórico de cada operación difiere (la edición
// ignora el lote, el borrado de feeds/supplements recorre la tabla entera);
// el caso de uso decide el filtro, el repositorio solo lo aplica.
type LineageFilter struct {
	BatchID  *int64
	ItemName *string
}

// FullLineage filtra por el linaje completo (lote + nombre de ítem).
func FullLineage(key entity.LineageKey) LineageFilter {
	batchID, itemName := key.BatchID, key.ItemName
	return LineageFilter{BatchID: &batchID, ItemName: &itemName}
}

// LedgerRepository define el puerto de persistencia del ledger de inventario.
// Cada método recibe la mercancía, que selecciona la tabla física; una
// mercancía desconocida devuelve domain.ErrInvalidItemType. Las lecturas que
// no encuentran fila devuelven (nil, nil) como el resto de repositorios.
type LedgerRepository interface {
	GetByID(ctx context.Context, c entity.Commodity, id int64) (*entity.LedgerRow, error)
	// LastInLineage devuelve la fila de mayor id que cumple el filtro.
	LastInLineage(ctx context.Context, c entity.Commodity, f LineageFilter) (*entity.LedgerRow, error)
	// LastBefore devuelve la fila de mayor id estrictamente menor que id.
	LastBefore(ctx context.Context, c entity.Commodity, id int64, f LineageFilter) (*entity.LedgerRow, error)
	// ListAfter devuelve las filas con id mayor que id, en orden ascendente.
	ListAfter(ctx context.Context, c entity.Commodity, id int64, f LineageFilter) ([]entity.LedgerRow, error)
	// ListByBatch devuelve todas las filas de un lote, fecha descendente.
	ListByBatch(ctx context.Context, c entity.Commodity, batchID int64) ([]entity.LedgerRow, error)
	// ListStockDetails devuelve el historial de un ítem en lotes activos,
	// fecha descendente.
	ListStockDetails(ctx context.Context, c entity.Commodity, itemName string) ([]entity.LedgerRow, error)

	Insert(ctx context.Context, row *entity.LedgerRow) error
	Delete(ctx context.Context, c entity.Commodity, id int64) error
	// UpdateAmountLeft reescribe solo el saldo de una fila (paso de cascada).
	UpdateAmountLeft(ctx context.Context, c entity.Commodity, id int64, amountLeft decimal.Decimal) error
	// UpdateRow reescribe los campos editables de la fila según su mercancía
	// (fecha y depleción; para pollitos también los conteos informativos).
	UpdateRow(ctx context.Context, row *entity.LedgerRow) error

	// AddToAmountLeft incrementa aditivamente el saldo de todas las filas del
	// linaje y les asigna transactionID (gasto inventariable, sin cascada).
	AddToAmountLeft(ctx context.Context, key entity.LineageKey, qty decimal.Decimal, transactionID int64) error
	// AddToSold incrementa sold en la última fila por fecha del linaje de
	// pollitos (venta, sin cascada).
	AddToSold(ctx context.Context, batchID int64, itemName string, qty decimal.Decimal) error
	// LineageExists indica si el linaje ya tiene alguna fila.
	LineageExists(ctx context.Context, key entity.LineageKey) (bool, error)
}
