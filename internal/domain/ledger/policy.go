// Package ledger implementa el recálculo de saldos del inventario como
// funciones puras sobre filas en memoria. Los adaptadores de postgres cargan
// el linaje, este paquete decide los nuevos saldos y el caso de uso persiste
// los cambios; ningún I/O ocurre aquí.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// Policy captura la asimetría entre mercancías que el motor preserva a
// propósito: alimentos y suplementos validan la cota de consumo al apendear y
// nunca saltan filas; pollitos no validan pero saltan filas cuyo saldo
// recalculado quedaría negativo.
type Policy struct {
	Commodity     entity.Commodity
	ValidateBound bool
	NegativeGuard bool
}

// PolicyFor devuelve la política de la mercancía. Un tipo desconocido es
// ErrInvalidItemType; nunca se cae a un default.
func PolicyFor(c entity.Commodity) (Policy, error) {
	switch c {
	case entity.CommodityFeeds, entity.CommoditySupplements:
		return Policy{Commodity: c, ValidateBound: true}, nil
	case entity.CommodityChicks:
		return Policy{Commodity: c, NegativeGuard: true}, nil
	}
	return Policy{}, domain.ErrInvalidItemType
}

// Depletion devuelve cuánto descuenta la fila del saldo que arrastra:
// amount_consumed para alimentos/suplementos, sold+mortality para pollitos.
// Los campos NULL cuentan como cero.
func (p Policy) Depletion(row entity.LedgerRow) decimal.Decimal {
	if p.Commodity == entity.CommodityChicks {
		return nullOrZero(row.Sold).Add(nullOrZero(row.Mortality))
	}
	return nullOrZero(row.AmountConsumed)
}

func nullOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
