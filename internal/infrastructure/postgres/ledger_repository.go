package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL (usable con
// pool o tx). Las tres tablas del ledger comparten forma lógica; la mercancía
// selecciona la física.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// tableFor mapea mercancía a tabla. Un tipo desconocido es error del caller.
func tableFor(c entity.Commodity) (string, error) {
	switch c {
	case entity.CommodityFeeds:
		return "feeds_inv", nil
	case entity.CommoditySupplements:
		return "supplements_inv", nil
	case entity.CommodityChicks:
		return "chicks_inv", nil
	}
	return "", domain.ErrInvalidItemType
}

func columnsFor(c entity.Commodity) string {
	if c == entity.CommodityChicks {
		return "id, batch_id, item_type, item_name, date, amount_left, ready_to_harvest, undersize, sold, mortality, transaction_id"
	}
	return "id, batch_id, item_type, item_name, date, amount_left, amount_consumed, transaction_id"
}

func scanDest(c entity.Commodity, row *entity.LedgerRow) []any {
	base := []any{&row.ID, &row.BatchID, &row.ItemType, &row.ItemName, &row.Date, &row.AmountLeft}
	if c == entity.CommodityChicks {
		return append(base, &row.ReadyToHarvest, &row.Undersize, &row.Sold, &row.Mortality, &row.TransactionID)
	}
	return append(base, &row.AmountConsumed, &row.TransactionID)
}

// filterClause añade los predicados opcionales del filtro a args y devuelve
// el fragmento " AND ..." correspondiente.
func filterClause(f repository.LineageFilter, args *[]any) string {
	clause := ""
	if f.BatchID != nil {
		*args = append(*args, *f.BatchID)
		clause += fmt.Sprintf(" AND batch_id = $%d", len(*args))
	}
	if f.ItemName != nil {
		*args = append(*args, *f.ItemName)
		clause += fmt.Sprintf(" AND item_name = $%d", len(*args))
	}
	return clause
}

func (r *LedgerRepo) queryOne(ctx context.Context, c entity.Commodity, query string, args ...any) (*entity.LedgerRow, error) {
	var row entity.LedgerRow
	err := r.q.QueryRow(ctx, query, args...).Scan(scanDest(c, &row)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *LedgerRepo) queryMany(ctx context.Context, c entity.Commodity, query string, args ...any) ([]entity.LedgerRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []entity.LedgerRow
	for rows.Next() {
		var row entity.LedgerRow
		if err := rows.Scan(scanDest(c, &row)...); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetByID obtiene una fila del ledger por id.
func (r *LedgerRepo) GetByID(ctx context.Context, c entity.Commodity, id int64) (*entity.LedgerRow, error) {
	table, err := tableFor(c)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, columnsFor(c), table)
	row, err := r.queryOne(ctx, c, query, id)
	if err != nil {
		return nil, fmt.Errorf("get ledger row: %w", err)
	}
	return row, nil
}

// LastInLineage devuelve la fila de mayor id que cumple el filtro.
func (r *LedgerRepo) LastInLineage(ctx context.Context, c entity.Commodity, f repository.LineageFilter) (*entity.LedgerRow, error) {
	table, err := tableFor(c)
	if err != nil {
		return nil, err
	}
	args := []any{string(c)}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE item_type = $1%s ORDER BY id DESC LIMIT 1`,
		columnsFor(c), table, filterClause(f, &args))
	row, err := r.queryOne(ctx, c, query, args...)
	if err != nil {
		return nil, fmt.Errorf("last in lineage: %w", err)
	}
	return row, nil
}

// LastBefore devuelve la fila de mayor id estrictamente menor que id.
func (r *LedgerRepo) LastBefore(ctx context.Context, c entity.Commodity, id int64, f repository.LineageFilter) (*entity.LedgerRow, error) {
	table, err := tableFor(c)
	if err != nil {
		return nil, err
	}
	args := []any{id}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id < $1%s ORDER BY id DESC LIMIT 1`,
		columnsFor(c), table, filterClause(f, &args))
	row, err := r.queryOne(ctx, c, query, args...)
	if err != nil {
		return nil, fmt.Errorf("last before: %w", err)
	}
	return row, nil
}

// ListAfter devuelve las filas posteriores a id en orden ascendente.
func (r *LedgerRepo) ListAfter(ctx context.Context, c entity.Commodity, id int64, f repository.LineageFilter) ([]entity.LedgerRow, error) {
	table, err := tableFor(c)
	if err != nil {
		return nil, err
	}
	args := []any{id}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id > $1%s ORDER BY id ASC`,
		columnsFor(c), table, filterClause(f, &args))
	list, err := r.queryMany(ctx, c, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list after: %w", err)
	}
	return list, nil
}

// ListByBatch devuelve todas las filas de un lote, fecha descendente.
func (r *LedgerRepo) ListByBatch(ctx context.Context, c entity.Commodity, batchID int64) ([]entity.LedgerRow, error) {
	table, err := tableFor(c)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE batch_id = $1 ORDER BY date DESC, id DESC`, columnsFor(c), table)
	list, err := r.queryMany(ctx, c, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list by batch: %w", err)
	}
	return list, nil
}

// ListStockDetails devuelve el historial de un ítem en lotes activos.
func (r *LedgerRepo) ListStockDetails(ctx context.Context, c entity.Commodity, itemName string) ([]entity.LedgerRow, error) {
	table, err := tableFor(c)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT %s FROM %s t
		INNER JOIN batch b ON t.batch_id = b.batch_id
		WHERE t.item_type = $1 AND t.item_name = $2 AND b.is_active = true
		ORDER BY t.date DESC`, prefixColumns(c), table)
	list, err := r.queryMany(ctx, c, query, string(c), itemName)
	if err != nil {
		return nil, fmt.Errorf("list stock details: %w", err)
	}
	return list, nil
}

func prefixColumns(c entity.Commodity) string {
	if c == entity.CommodityChicks {
		return "t.id, t.batch_id, t.item_type, t.item_name, t.date, t.amount_left, t.ready_to_harvest, t.undersize, t.sold, t.mortality, t.transaction_id"
	}
	return "t.id, t.batch_id, t.item_type, t.item_name, t.date, t.amount_left, t.amount_consumed, t.transaction_id"
}

// Insert apendea una fila al final del linaje y deja el id generado en row.
func (r *LedgerRepo) Insert(ctx context.Context, row *entity.LedgerRow) error {
	table, err := tableFor(row.ItemType)
	if err != nil {
		return err
	}
	var query string
	var args []any
	if row.ItemType == entity.CommodityChicks {
		query = fmt.Sprintf(`
			INSERT INTO %s (batch_id, item_type, item_name, date, amount_left, ready_to_harvest, undersize, sold, mortality, transaction_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`, table)
		args = []any{row.BatchID, row.ItemType, row.ItemName, row.Date, row.AmountLeft,
			row.ReadyToHarvest, row.Undersize, row.Sold, row.Mortality, row.TransactionID}
	} else {
		query = fmt.Sprintf(`
			INSERT INTO %s (batch_id, item_type, item_name, date, amount_left, amount_consumed, transaction_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`, table)
		args = []any{row.BatchID, row.ItemType, row.ItemName, row.Date, row.AmountLeft,
			row.AmountConsumed, row.TransactionID}
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&row.ID); err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}
	return nil
}

// Delete elimina una fila por id.
func (r *LedgerRepo) Delete(ctx context.Context, c entity.Commodity, id int64) error {
	table, err := tableFor(c)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id); err != nil {
		return fmt.Errorf("delete ledger row: %w", err)
	}
	return nil
}

// UpdateAmountLeft reescribe solo el saldo de una fila (paso de cascada).
func (r *LedgerRepo) UpdateAmountLeft(ctx context.Context, c entity.Commodity, id int64, amountLeft decimal.Decimal) error {
	table, err := tableFor(c)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET amount_left = $2 WHERE id = $1`, table)
	if _, err := r.q.Exec(ctx, query, id, amountLeft); err != nil {
		return fmt.Errorf("update amount_left: %w", err)
	}
	return nil
}

// UpdateRow reescribe los campos editables de la fila según su mercancía.
func (r *LedgerRepo) UpdateRow(ctx context.Context, row *entity.LedgerRow) error {
	table, err := tableFor(row.ItemType)
	if err != nil {
		return err
	}
	var query string
	var args []any
	if row.ItemType == entity.CommodityChicks {
		query = fmt.Sprintf(`
			UPDATE %s
			SET date = $2, amount_left = $3, ready_to_harvest = $4, undersize = $5, sold = $6, mortality = $7, transaction_id = $8
			WHERE id = $1`, table)
		args = []any{row.ID, row.Date, row.AmountLeft, row.ReadyToHarvest, row.Undersize,
			row.Sold, row.Mortality, row.TransactionID}
	} else {
		query = fmt.Sprintf(`
			UPDATE %s SET date = $2, amount_left = $3, amount_consumed = $4 WHERE id = $1`, table)
		args = []any{row.ID, row.Date, row.AmountLeft, row.AmountConsumed}
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update ledger row: %w", err)
	}
	return nil
}

// AddToAmountLeft incrementa aditivamente el saldo de todas las filas del
// linaje y les asigna el transaction_id del gasto. Sin cascada a propósito:
// es la operación de reabastecimiento, no una corrección del historial.
func (r *LedgerRepo) AddToAmountLeft(ctx context.Context, key entity.LineageKey, qty decimal.Decimal, transactionID int64) error {
	table, err := tableFor(key.ItemType)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET amount_left = amount_left + $1, transaction_id = $2
		WHERE batch_id = $3 AND item_type = $4 AND item_name = $5`, table)
	if _, err := r.q.Exec(ctx, query, qty, transactionID, key.BatchID, key.ItemType, key.ItemName); err != nil {
		return fmt.Errorf("add to amount_left: %w", err)
	}
	return nil
}

// AddToSold incrementa sold en la última fila por fecha del linaje de
// pollitos. Sin cascada: la venta no reescribe el historial.
func (r *LedgerRepo) AddToSold(ctx context.Context, batchID int64, itemName string, qty decimal.Decimal) error {
	query := `
		UPDATE chicks_inv SET sold = COALESCE(sold, 0) + $1
		WHERE id = (
			SELECT id FROM chicks_inv
			WHERE batch_id = $2 AND item_name = $3
			ORDER BY date DESC, id DESC
			LIMIT 1
		)`
	if _, err := r.q.Exec(ctx, query, qty, batchID, itemName); err != nil {
		return fmt.Errorf("add to sold: %w", err)
	}
	return nil
}

// LineageExists indica si el linaje ya tiene alguna fila.
func (r *LedgerRepo) LineageExists(ctx context.Context, key entity.LineageKey) (bool, error) {
	table, err := tableFor(key.ItemType)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE batch_id = $1 AND item_type = $2 AND item_name = $3
		)`, table)
	var exists bool
	if err := r.q.QueryRow(ctx, query, key.BatchID, key.ItemType, key.ItemName).Scan(&exists); err != nil {
		return false, fmt.Errorf("lineage exists: %w", err)
	}
	return exists, nil
}
