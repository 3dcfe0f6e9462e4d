package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote nuevo y deja el id generado en batch.
func (r *BatchRepo) Create(ctx context.Context, batch *entity.Batch) error {
	query := `
		INSERT INTO batch (batch_name, start_date, is_active)
		VALUES ($1, $2, $3)
		RETURNING batch_id`
	err := r.q.QueryRow(ctx, query, batch.Name, batch.StartDate, batch.IsActive).Scan(&batch.ID)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id.
func (r *BatchRepo) GetByID(ctx context.Context, id int64) (*entity.Batch, error) {
	query := `
		SELECT batch_id, batch_name, start_date, end_date, is_active
		FROM batch WHERE batch_id = $1`
	var b entity.Batch
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.StartDate, &b.EndDate, &b.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// Close marca el lote como inactivo y fija su fecha de fin.
func (r *BatchRepo) Close(ctx context.Context, id int64) error {
	query := `UPDATE batch SET is_active = false, end_date = now() WHERE batch_id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LastActive devuelve el lote activo más reciente, o (nil, nil).
func (r *BatchRepo) LastActive(ctx context.Context) (*entity.Batch, error) {
	query := `
		SELECT batch_id, batch_name, start_date, end_date, is_active
		FROM batch WHERE is_active = true
		ORDER BY start_date DESC LIMIT 1`
	var b entity.Batch
	err := r.q.QueryRow(ctx, query).Scan(&b.ID, &b.Name, &b.StartDate, &b.EndDate, &b.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last active batch: %w", err)
	}
	return &b, nil
}

// ListInactive devuelve los lotes cerrados con sus transacciones y el
// historial de pollitos, agrupados por lote.
func (r *BatchRepo) ListInactive(ctx context.Context) ([]repository.InactiveBatchSummary, error) {
	batches, err := r.listInactiveBatches(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]repository.InactiveBatchSummary, 0, len(batches))
	txRepo := NewTransactionRepository(r.q)
	ledgerRepo := NewLedgerRepository(r.q)
	for _, b := range batches {
		txs, err := r.listTransactionsAnyStatus(ctx, txRepo, b.ID)
		if err != nil {
			return nil, err
		}
		chicks, err := ledgerRepo.ListByBatch(ctx, entity.CommodityChicks, b.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, repository.InactiveBatchSummary{
			Batch:        b,
			Transactions: txs,
			ChicksInv:    chicks,
		})
	}
	return summaries, nil
}

func (r *BatchRepo) listInactiveBatches(ctx context.Context) ([]entity.Batch, error) {
	query := `
		SELECT batch_id, batch_name, start_date, end_date, is_active
		FROM batch WHERE is_active = false
		ORDER BY end_date DESC NULLS LAST, batch_id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inactive batches: %w", err)
	}
	defer rows.Close()
	var list []entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.Name, &b.StartDate, &b.EndDate, &b.IsActive); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// listTransactionsAnyStatus lista las transacciones del lote sin exigir que
// siga activo (los lotes de este listado ya están cerrados).
func (r *BatchRepo) listTransactionsAnyStatus(ctx context.Context, txRepo *TransactionRepo, batchID int64) ([]entity.Transaction, error) {
	query := `
		SELECT transaction_id, batch_id, transaction_date, transaction_type, item_type, item_name,
		       contact_name, quantity, price_per_unit, total_cost
		FROM transactions WHERE batch_id = $1
		ORDER BY transaction_date DESC`
	return txRepo.queryMany(ctx, query, batchID)
}
