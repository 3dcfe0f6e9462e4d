package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// AppendStockRequest entrada de add-{feeds,supplements,chicks}-to-stock.
// Los nombres de campo replican el contrato del frontend: snake_case para
// los campos de fila, batch_id/item_name solo aplican a pollitos.
type AppendStockRequest struct {
	ID             int64               `json:"id"`
	Date           string              `json:"date"`
	AmountLeft     decimal.Decimal     `json:"amount_left"`
	AmountConsumed decimal.Decimal     `json:"amount_consumed"`
	BatchID        int64               `json:"batch_id"`
	ItemName       string              `json:"item_name"`
	ReadyToHarvest decimal.NullDecimal `json:"ready_to_harvest"`
	Undersize      decimal.NullDecimal `json:"undersize"`
	Sold           decimal.NullDecimal `json:"sold"`
	Mortality      decimal.NullDecimal `json:"mortality"`
}

// EditStockRequest entrada de edit-{feeds,supplements,chicks}-in-stock.
type EditStockRequest struct {
	ID             int64               `json:"id"`
	Date           string              `json:"date"`
	AmountLeft     decimal.Decimal     `json:"amount_left"`
	AmountConsumed decimal.NullDecimal `json:"amount_consumed"`
	ReadyToHarvest decimal.NullDecimal `json:"ready_to_harvest"`
	Undersize      decimal.NullDecimal `json:"undersize"`
	Sold           decimal.NullDecimal `json:"sold"`
	Mortality      decimal.NullDecimal `json:"mortality"`
}

// DeleteInventoryRequest cuerpo de delete-inventory-record/:id. El frontend
// manda estos tres en camelCase; se preserva el contrato.
type DeleteInventoryRequest struct {
	ItemType string `json:"itemType"`
	ItemName string `json:"itemName"`
	BatchID  int64  `json:"batchId"`
}

// ItemStockDetailsRequest cuerpo de item-stock-details.
type ItemStockDetailsRequest struct {
	ItemType string `json:"item_type"`
	ItemName string `json:"item_name"`
}

// ItemTypeResponse un par (tipo, nombre) distinto para los selectores.
type ItemTypeResponse struct {
	ItemType string `json:"item_type"`
	ItemName string `json:"item_name"`
}

// FromItemTypes mapea los pares distintos de transacciones.
func FromItemTypes(entries []entity.ItemTypeEntry) []ItemTypeResponse {
	out := make([]ItemTypeResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ItemTypeResponse{ItemType: e.ItemType, ItemName: e.ItemName})
	}
	return out
}

// LedgerRowResponse una fila del ledger; los campos de depleción que no
// aplican a la mercancía (o están en NULL) se omiten.
type LedgerRowResponse struct {
	ID             int64            `json:"id"`
	BatchID        int64            `json:"batch_id"`
	ItemType       string           `json:"item_type"`
	ItemName       string           `json:"item_name"`
	Date           time.Time        `json:"date"`
	AmountLeft     decimal.Decimal  `json:"amount_left"`
	AmountConsumed *decimal.Decimal `json:"amount_consumed,omitempty"`
	ReadyToHarvest *decimal.Decimal `json:"ready_to_harvest,omitempty"`
	Undersize      *decimal.Decimal `json:"undersize,omitempty"`
	Sold           *decimal.Decimal `json:"sold,omitempty"`
	Mortality      *decimal.Decimal `json:"mortality,omitempty"`
	TransactionID  *int64           `json:"transaction_id,omitempty"`
}

// FromLedgerRow mapea la entidad a su representación HTTP.
func FromLedgerRow(row entity.LedgerRow) LedgerRowResponse {
	return LedgerRowResponse{
		ID:             row.ID,
		BatchID:        row.BatchID,
		ItemType:       string(row.ItemType),
		ItemName:       row.ItemName,
		Date:           row.Date,
		AmountLeft:     row.AmountLeft,
		AmountConsumed: nullPtr(row.AmountConsumed),
		ReadyToHarvest: nullPtr(row.ReadyToHarvest),
		Undersize:      nullPtr(row.Undersize),
		Sold:           nullPtr(row.Sold),
		Mortality:      nullPtr(row.Mortality),
		TransactionID:  row.TransactionID,
	}
}

// FromLedgerRows mapea un listado completo.
func FromLedgerRows(rows []entity.LedgerRow) []LedgerRowResponse {
	out := make([]LedgerRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromLedgerRow(row))
	}
	return out
}

func nullPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
