package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/avicola-api/internal/application/inventory"
	"github.com/jhoicas/avicola-api/internal/application/transactions"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ transactions.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un repo de ledger atado a la tx
// y hace Commit o Rollback. Todo camino de salida resuelve la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(ledgerRepo repository.LedgerRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLedgerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBridge inicia una transacción con repos de transacciones y de ledger,
// para el puente gasto/venta -> inventario.
func (r *TxRunner) RunBridge(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTransactionRepository(tx), NewLedgerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
