package dto

import (
	"time"

	"github.com/jhoicas/avicola-api/internal/domain/entity"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
)

// CreateBatchRequest entrada de create-batch.
type CreateBatchRequest struct {
	BatchName string `json:"batchName"`
}

// CreateBatchResponse respuesta con el id generado.
type CreateBatchResponse struct {
	BatchID int64 `json:"batchId"`
}

// CloseBatchRequest entrada de close-batch.
type CloseBatchRequest struct {
	BatchID int64 `json:"batchId"`
}

// LastActiveBatchResponse respuesta de last-active.
type LastActiveBatchResponse struct {
	BatchID   int64  `json:"batchId"`
	BatchName string `json:"batchName"`
}

// InactiveBatchResponse un lote cerrado con sus transacciones y el historial
// de pollitos.
type InactiveBatchResponse struct {
	BatchID      int64                 `json:"batch_id"`
	BatchName    string                `json:"batch_name"`
	StartDate    time.Time             `json:"start_date"`
	EndDate      *time.Time            `json:"end_date"`
	Transactions []TransactionResponse `json:"transactions"`
	ChicksInv    []LedgerRowResponse   `json:"chicks_inv"`
}

// FromInactiveBatch mapea el agregado de lote cerrado.
func FromInactiveBatch(s repository.InactiveBatchSummary) InactiveBatchResponse {
	return InactiveBatchResponse{
		BatchID:      s.Batch.ID,
		BatchName:    s.Batch.Name,
		StartDate:    s.Batch.StartDate,
		EndDate:      s.Batch.EndDate,
		Transactions: FromTransactions(s.Transactions),
		ChicksInv:    FromLedgerRows(s.ChicksInv),
	}
}

// FromBatch mapea un lote a su vista de lote activo.
func FromBatch(b entity.Batch) LastActiveBatchResponse {
	return LastActiveBatchResponse{BatchID: b.ID, BatchName: b.Name}
}
