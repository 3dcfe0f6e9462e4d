package repository

import (
	"context"

	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// InactiveBatchSummary agrega un lote cerrado con sus transacciones y el
// historial de pollitos, para la vista de lotes históricos.
type InactiveBatchSummary struct {
	Batch        entity.Batch
	Transactions []entity.Transaction
	ChicksInv    []entity.LedgerRow
}

// BatchRepository define el puerto de persistencia para lotes de producción.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id int64) (*entity.Batch, error)
	// Close marca el lote como inactivo y fija su fecha de fin.
	Close(ctx context.Context, id int64) error
	// LastActive devuelve el lote activo más reciente, o (nil, nil).
	LastActive(ctx context.Context) (*entity.Batch, error)
	ListInactive(ctx context.Context) ([]InactiveBatchSummary, error)
}
