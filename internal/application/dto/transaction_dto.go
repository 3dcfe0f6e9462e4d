package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// AddTransactionRequest entrada de add-transaction (contrato camelCase del
// frontend). TotalCost ausente o en cero se calcula en el caso de uso.
type AddTransactionRequest struct {
	BatchID         int64               `json:"batchId"`
	TransactionDate string              `json:"transactionDate"`
	TransactionType string              `json:"transactionType"`
	ItemType        string              `json:"itemType"`
	ItemName        string              `json:"itemName"`
	ContactName     string              `json:"contactName"`
	Quantity        decimal.Decimal     `json:"quantity"`
	PricePerUnit    decimal.Decimal     `json:"pricePerUnit"`
	TotalCost       decimal.NullDecimal `json:"totalCost"`
}

// EditTransactionRequest entrada de edit-transaction/:id.
type EditTransactionRequest struct {
	BatchID         int64           `json:"batchId"`
	TransactionDate string          `json:"transactionDate"`
	TransactionType string          `json:"transactionType"`
	ItemType        string          `json:"itemType"`
	ItemName        string          `json:"itemName"`
	ContactName     string          `json:"contactName"`
	Quantity        decimal.Decimal `json:"quantity"`
	PricePerUnit    decimal.Decimal `json:"pricePerUnit"`
	TotalCost       decimal.Decimal `json:"totalCost"`
}

// TransactionResponse una transacción con las columnas de la tabla.
type TransactionResponse struct {
	TransactionID   int64           `json:"transaction_id"`
	BatchID         int64           `json:"batch_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	TransactionType string          `json:"transaction_type"`
	ItemType        string          `json:"item_type"`
	ItemName        string          `json:"item_name"`
	ContactName     string          `json:"contact_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// FromTransaction mapea la entidad a su representación HTTP.
func FromTransaction(tx entity.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   tx.ID,
		BatchID:         tx.BatchID,
		TransactionDate: tx.Date,
		TransactionType: tx.Type,
		ItemType:        tx.ItemType,
		ItemName:        tx.ItemName,
		ContactName:     tx.ContactName,
		Quantity:        tx.Quantity,
		PricePerUnit:    tx.PricePerUnit,
		TotalCost:       tx.TotalCost,
	}
}

// FromTransactions mapea un listado completo.
func FromTransactions(txs []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FromTransaction(tx))
	}
	return out
}
