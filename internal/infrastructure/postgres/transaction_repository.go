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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de transacciones.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la transacción y deja el id generado en tx.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions
		(transaction_date, transaction_type, item_type, item_name, quantity, price_per_unit, total_cost, contact_name, batch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING transaction_id`
	err := r.q.QueryRow(ctx, query,
		tx.Date, tx.Type, tx.ItemType, tx.ItemName, tx.Quantity, tx.PricePerUnit,
		tx.TotalCost, tx.ContactName, tx.BatchID,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por id.
func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	query := `
		SELECT transaction_id, batch_id, transaction_date, transaction_type, item_type, item_name,
		       contact_name, quantity, price_per_unit, total_cost
		FROM transactions WHERE transaction_id = $1`
	var t entity.Transaction
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.BatchID, &t.Date, &t.Type, &t.ItemType, &t.ItemName,
		&t.ContactName, &t.Quantity, &t.PricePerUnit, &t.TotalCost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListByBatch devuelve las transacciones de un lote activo, fecha descendente.
func (r *TransactionRepo) ListByBatch(ctx context.Context, batchID int64) ([]entity.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.batch_id, t.transaction_date, t.transaction_type, t.item_type, t.item_name,
		       t.contact_name, t.quantity, t.price_per_unit, t.total_cost
		FROM transactions t
		INNER JOIN batch b ON t.batch_id = b.batch_id
		WHERE t.batch_id = $1 AND b.is_active = true
		ORDER BY t.transaction_date DESC`
	return r.queryMany(ctx, query, batchID)
}

// Update reescribe todos los campos editables de la transacción.
func (r *TransactionRepo) Update(ctx context.Context, tx *entity.Transaction) error {
	query := `
		UPDATE transactions
		SET transaction_date = $2, transaction_type = $3, contact_name = $4, item_type = $5,
		    item_name = $6, quantity = $7, price_per_unit = $8, total_cost = $9
		WHERE transaction_id = $1`
	tag, err := r.q.Exec(ctx, query,
		tx.ID, tx.Date, tx.Type, tx.ContactName, tx.ItemType,
		tx.ItemName, tx.Quantity, tx.PricePerUnit, tx.TotalCost,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una transacción por id.
func (r *TransactionRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LatestChicksItemName devuelve el item_name de la transacción de pollitos
// más reciente del lote, o (nil, nil) si no hay ninguna.
func (r *TransactionRepo) LatestChicksItemName(ctx context.Context, batchID int64) (*string, error) {
	query := `
		SELECT item_name FROM transactions
		WHERE batch_id = $1 AND item_type = 'Chicks'
		ORDER BY transaction_date DESC LIMIT 1`
	var name string
	err := r.q.QueryRow(ctx, query, batchID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest chicks item name: %w", err)
	}
	return &name, nil
}

// ListItemTypes devuelve los pares (item_type, item_name) distintos de
// transacciones inventariables en lotes activos.
func (r *TransactionRepo) ListItemTypes(ctx context.Context) ([]entity.ItemTypeEntry, error) {
	query := `
		SELECT DISTINCT t.item_type, t.item_name
		FROM transactions t
		INNER JOIN batch b ON t.batch_id = b.batch_id
		WHERE t.item_type IN ('Feeds', 'Chicks', 'Supplements') AND b.is_active = true`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list item types: %w", err)
	}
	defer rows.Close()
	var list []entity.ItemTypeEntry
	for rows.Next() {
		var e entity.ItemTypeEntry
		if err := rows.Scan(&e.ItemType, &e.ItemName); err != nil {
			return nil, fmt.Errorf("scan item type: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *TransactionRepo) queryMany(ctx context.Context, query string, args ...any) ([]entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		err := rows.Scan(
			&t.ID, &t.BatchID, &t.Date, &t.Type, &t.ItemType, &t.ItemName,
			&t.ContactName, &t.Quantity, &t.PricePerUnit, &t.TotalCost,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
