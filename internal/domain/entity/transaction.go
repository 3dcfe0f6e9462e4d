package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción financiera.
const (
	TransactionTypeSale    = "Sale"
	TransactionTypeExpense = "Expense"
)

// Tipos de ítem de venta (las ventas siempre van contra la salida de pollitos
// del lote, en peso vivo o faenado).
const (
	SaleItemLiveweight = "Liveweight"
	SaleItemDressed    = "Dressed"
)

// Transaction es una transacción financiera (venta o gasto) de un lote.
type Transaction struct {
	ID           int64
	BatchID      int64
	Date         time.Time
	Type         string
	ItemType     string
	ItemName     string
	ContactName  string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	TotalCost    decimal.Decimal
}

// ItemTypeEntry es un par (tipo, nombre) distinto visto en transacciones de
// lotes activos; alimenta los selectores del frontend.
type ItemTypeEntry struct {
	ItemType string
	ItemName string
}
