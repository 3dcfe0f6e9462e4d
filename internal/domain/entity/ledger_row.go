package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commodity identifica la mercancía de inventario y, con ella, la tabla física
// del ledger (feeds_inv, supplements_inv o chicks_inv).
type Commodity string

const (
	CommodityFeeds       Commodity = "Feeds"
	CommoditySupplements Commodity = "Supplements"
	CommodityChicks      Commodity = "Chicks"
)

// Valid indica si la mercancía es una de las tres conocidas.
// Un valor desconocido es error del caller, nunca un default silencioso.
func (c Commodity) Valid() bool {
	switch c {
	case CommodityFeeds, CommoditySupplements, CommodityChicks:
		return true
	}
	return false
}

// LineageKey identifica un linaje: el historial ordenado de filas de saldo
// para un (lote, tipo de ítem, nombre de ítem) dentro de una tabla.
type LineageKey struct {
	BatchID  int64
	ItemType Commodity
	ItemName string
}

// LedgerRow es una fila de saldo del ledger de inventario. El id (bigserial)
// define el orden total dentro del linaje; las filas nunca se reordenan.
// Los campos de depleción dependen de la mercancía: AmountConsumed para
// feeds/supplements; Sold y Mortality para chicks (ReadyToHarvest y Undersize
// son informativos y no participan en la recurrencia de saldos).
type LedgerRow struct {
	ID             int64
	BatchID        int64
	ItemType       Commodity
	ItemName       string
	Date           time.Time
	AmountLeft     decimal.Decimal
	AmountConsumed decimal.NullDecimal
	ReadyToHarvest decimal.NullDecimal
	Undersize      decimal.NullDecimal
	Sold           decimal.NullDecimal
	Mortality      decimal.NullDecimal
	TransactionID  *int64
}

// Lineage devuelve la clave de linaje de la fila.
func (r LedgerRow) Lineage() LineageKey {
	return LineageKey{BatchID: r.BatchID, ItemType: r.ItemType, ItemName: r.ItemName}
}
