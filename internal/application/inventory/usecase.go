package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
	"github.com/jhoicas/avicola-api/internal/domain/ledger"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
	"github.com/jhoicas/avicola-api/pkg/logger"
)

// Config opciones del motor de inventario.
type Config struct {
	// StrictLineage fuerza el linaje completo (lote + tipo + nombre) en todos
	// los recorridos. Apagado reproduce el scoping histórico: la edición
	// ignora el lote y el borrado de alimentos/suplementos recorre la tabla
	// entera en orden de id.
	StrictLineage bool
}

// UseCase implementa las operaciones del ledger de inventario: apendear
// depleción, editar una fila con cascada hacia delante y borrar con
// re-anclaje en la predecesora.
type UseCase struct {
	txRunner   TxRunner
	ledgerRepo repository.LedgerRepository
	cfg        Config
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(txRunner TxRunner, ledgerRepo repository.LedgerRepository, cfg Config, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, ledgerRepo: ledgerRepo, cfg: cfg, log: log}
}

// AppendInput entrada para add-{feeds,supplements,chicks}-to-stock. ID es la
// fila objetivo que recibe la depleción; Date la fecha de la fila nueva.
// BatchID e ItemName identifican el linaje solo en el caso de pollitos.
type AppendInput struct {
	ID             int64
	BatchID        int64
	ItemName       string
	Date           time.Time
	AmountLeft     decimal.Decimal
	AmountConsumed decimal.Decimal
	ReadyToHarvest decimal.NullDecimal
	Undersize      decimal.NullDecimal
	Sold           decimal.NullDecimal
	Mortality      decimal.NullDecimal
}

// EditInput entrada para edit-{feeds,supplements,chicks}-in-stock: el
// reemplazo completo de los campos editables de la fila.
type EditInput struct {
	ID             int64
	Date           time.Time
	AmountLeft     decimal.Decimal
	AmountConsumed decimal.NullDecimal
	ReadyToHarvest decimal.NullDecimal
	Undersize      decimal.NullDecimal
	Sold           decimal.NullDecimal
	Mortality      decimal.NullDecimal
}

// DeleteInput entrada para delete-inventory-record/:id. ItemName y BatchID
// acotan la cascada solo en el caso de pollitos (scoping histórico).
type DeleteInput struct {
	ID       int64
	ItemType entity.Commodity
	ItemName string
	BatchID  int64
}

// AppendDepletion registra la depleción de la fila objetivo y apendea la fila
// de arrastre al final del linaje. Alimentos y suplementos validan la cota de
// consumo y corren dentro de una transacción; pollitos no hacen ninguna de
// las dos cosas.
func (uc *UseCase) AppendDepletion(ctx context.Context, c entity.Commodity, in AppendInput) error {
	policy, err := ledger.PolicyFor(c)
	if err != nil {
		return err
	}
	if policy.ValidateBound {
		return uc.txRunner.Run(ctx, func(repo repository.LedgerRepository) error {
			return uc.appendBounded(ctx, repo, c, in)
		})
	}
	return uc.appendChicks(ctx, uc.ledgerRepo, in)
}

func (uc *UseCase) appendBounded(ctx context.Context, repo repository.LedgerRepository, c entity.Commodity, in AppendInput) error {
	cur, err := repo.GetByID(ctx, c, in.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return domain.ErrNotFound
	}
	// La cota se valida contra el saldo persistido, antes de cualquier
	// mutación: un consumo fuera de rango deja el linaje intacto.
	if in.AmountConsumed.GreaterThan(cur.AmountLeft) {
		return domain.ErrDepletionExceedsBalance
	}

	cur.AmountLeft = in.AmountLeft
	cur.AmountConsumed = decimal.NullDecimal{Decimal: in.AmountConsumed, Valid: true}
	if err := repo.UpdateRow(ctx, cur); err != nil {
		return err
	}

	last, err := repo.LastInLineage(ctx, c, repository.FullLineage(cur.Lineage()))
	if err != nil {
		return err
	}
	if last == nil {
		return domain.ErrNotFound
	}

	next := &entity.LedgerRow{
		BatchID:       cur.BatchID,
		ItemType:      c,
		ItemName:      cur.ItemName,
		Date:          in.Date,
		AmountLeft:    in.AmountLeft.Sub(in.AmountConsumed),
		TransactionID: last.TransactionID,
	}
	return repo.Insert(ctx, next)
}

func (uc *UseCase) appendChicks(ctx context.Context, repo repository.LedgerRepository, in AppendInput) error {
	key := entity.LineageKey{BatchID: in.BatchID, ItemType: entity.CommodityChicks, ItemName: in.ItemName}
	last, err := repo.LastInLineage(ctx, entity.CommodityChicks, repository.FullLineage(key))
	if err != nil {
		return err
	}
	if last == nil {
		return domain.ErrNotFound
	}
	cur, err := repo.GetByID(ctx, entity.CommodityChicks, in.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return domain.ErrNotFound
	}

	// El arrastre sale de la última fila del linaje, no de la fila objetivo.
	newLeft := last.AmountLeft.Sub(orZero(in.Mortality)).Sub(orZero(in.Sold))

	cur.AmountLeft = in.AmountLeft
	cur.ReadyToHarvest = in.ReadyToHarvest
	cur.Undersize = in.Undersize
	cur.Sold = in.Sold
	cur.Mortality = in.Mortality
	cur.TransactionID = last.TransactionID
	if err := repo.UpdateRow(ctx, cur); err != nil {
		return err
	}

	next := &entity.LedgerRow{
		BatchID:       last.BatchID,
		ItemType:      entity.CommodityChicks,
		ItemName:      last.ItemName,
		Date:          in.Date,
		AmountLeft:    newLeft,
		TransactionID: last.TransactionID,
	}
	return repo.Insert(ctx, next)
}

// EditStock persiste el reemplazo de la fila, re-deriva su saldo desde la
// predecesora más cercana y propaga la recurrencia sobre las sucesoras.
// Pollitos corre dentro de una transacción; alimentos y suplementos no.
func (uc *UseCase) EditStock(ctx context.Context, c entity.Commodity, in EditInput) error {
	policy, err := ledger.PolicyFor(c)
	if err != nil {
		return err
	}
	if policy.NegativeGuard {
		return uc.txRunner.Run(ctx, func(repo repository.LedgerRepository) error {
			return uc.editStock(ctx, repo, c, policy, in)
		})
	}
	return uc.editStock(ctx, uc.ledgerRepo, c, policy, in)
}

func (uc *UseCase) editStock(ctx context.Context, repo repository.LedgerRepository, c entity.Commodity, policy ledger.Policy, in EditInput) error {
	cur, err := repo.GetByID(ctx, c, in.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return domain.ErrNotFound
	}

	cur.Date = in.Date
	cur.AmountLeft = in.AmountLeft
	if c == entity.CommodityChicks {
		cur.ReadyToHarvest = in.ReadyToHarvest
		cur.Undersize = in.Undersize
		cur.Sold = in.Sold
		cur.Mortality = in.Mortality
	} else {
		cur.AmountConsumed = in.AmountConsumed
	}
	if err := repo.UpdateRow(ctx, cur); err != nil {
		return err
	}

	f := uc.editFilter(cur)
	prev, err := repo.LastBefore(ctx, c, cur.ID, f)
	if err != nil {
		return err
	}
	// El saldo de la fila editada no lo decide el cliente: se re-deriva de la
	// predecesora cuando existe.
	effLeft := in.AmountLeft
	if prev != nil {
		effLeft = ledger.CarryForward(*prev, policy)
		if err := repo.UpdateAmountLeft(ctx, c, cur.ID, effLeft); err != nil {
			return err
		}
	}

	after, err := repo.ListAfter(ctx, c, cur.ID, f)
	if err != nil {
		return err
	}
	changes, skipped := ledger.Cascade(effLeft, policy.Depletion(*cur), after, policy)
	return uc.applyChanges(ctx, repo, c, changes, skipped)
}

// Delete borra la fila y re-ancla las sucesoras en la predecesora restante
// (o en el saldo de la fila borrada si era cabeza de linaje).
func (uc *UseCase) Delete(ctx context.Context, in DeleteInput) error {
	c := in.ItemType
	policy, err := ledger.PolicyFor(c)
	if err != nil {
		return err
	}
	repo := uc.ledgerRepo

	cur, err := repo.GetByID(ctx, c, in.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return domain.ErrNotFound
	}

	f := uc.deleteFilter(cur, in)
	prev, err := repo.LastBefore(ctx, c, in.ID, f)
	if err != nil {
		return err
	}
	base := cur.AmountLeft
	if prev != nil {
		base = ledger.CarryForward(*prev, policy)
	}

	if err := repo.Delete(ctx, c, in.ID); err != nil {
		return err
	}

	after, err := repo.ListAfter(ctx, c, in.ID, f)
	if err != nil {
		return err
	}
	// La primera sucesora hereda el saldo base tal cual (depleción previa
	// cero); de ahí en adelante aplica la recurrencia normal.
	changes, skipped := ledger.Cascade(base, decimal.Zero, after, policy)
	return uc.applyChanges(ctx, repo, c, changes, skipped)
}

// ItemStockDetails devuelve el historial de un ítem en lotes activos.
func (uc *UseCase) ItemStockDetails(ctx context.Context, c entity.Commodity, itemName string) ([]entity.LedgerRow, error) {
	return uc.ledgerRepo.ListStockDetails(ctx, c, itemName)
}

// InventoryByBatch devuelve todas las filas de una mercancía para un lote.
func (uc *UseCase) InventoryByBatch(ctx context.Context, c entity.Commodity, batchID int64) ([]entity.LedgerRow, error) {
	return uc.ledgerRepo.ListByBatch(ctx, c, batchID)
}

func (uc *UseCase) editFilter(cur *entity.LedgerRow) repository.LineageFilter {
	if uc.cfg.StrictLineage {
		return repository.FullLineage(cur.Lineage())
	}
	// Scoping histórico: la edición acota por tipo y nombre pero no por lote.
	name := cur.ItemName
	return repository.LineageFilter{ItemName: &name}
}

func (uc *UseCase) deleteFilter(cur *entity.LedgerRow, in DeleteInput) repository.LineageFilter {
	if uc.cfg.StrictLineage {
		return repository.FullLineage(cur.Lineage())
	}
	if in.ItemType == entity.CommodityChicks {
		batchID, name := in.BatchID, in.ItemName
		return repository.LineageFilter{BatchID: &batchID, ItemName: &name}
	}
	// Scoping histórico: el borrado de alimentos/suplementos recorre la tabla
	// entera en orden de id.
	return repository.LineageFilter{}
}

func (uc *UseCase) applyChanges(ctx context.Context, repo repository.LedgerRepository, c entity.Commodity, changes []ledger.Change, skipped []int64) error {
	for _, ch := range changes {
		if err := repo.UpdateAmountLeft(ctx, c, ch.ID, ch.AmountLeft); err != nil {
			return err
		}
	}
	for _, id := range skipped {
		uc.log.Warn().Int64("row_id", id).Str("item_type", string(c)).
			Msg("saldo recalculado negativo, fila omitida")
	}
	return nil
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
