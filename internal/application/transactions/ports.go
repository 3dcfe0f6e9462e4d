package transactions

import (
	"context"

	"github.com/jhoicas/avicola-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repos
// de transacciones y de ledger atados a esa tx. El puente gasto/venta ->
// inventario inserta la transacción y toca el ledger como una sola unidad.
type TxRunner interface {
	RunBridge(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
