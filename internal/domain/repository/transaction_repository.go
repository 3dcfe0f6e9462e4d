package repository

import (
	"context"

	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones
// financieras.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	// ListByBatch devuelve las transacciones de un lote activo, fecha
	// descendente.
	ListByBatch(ctx context.Context, batchID int64) ([]entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id int64) error
	// LatestChicksItemName devuelve el item_name de la transacción de
	// pollitos más reciente del lote, o (nil, nil) si no hay ninguna.
	LatestChicksItemName(ctx context.Context, batchID int64) (*string, error)
	// ListItemTypes devuelve los pares (item_type, item_name) distintos de
	// transacciones inventariables en lotes activos.
	ListItemTypes(ctx context.Context) ([]entity.ItemTypeEntry, error)
}
