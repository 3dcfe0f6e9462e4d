package transactions

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
	"github.com/jhoicas/avicola-api/pkg/logger"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

type fakeTxRepo struct {
	created    []entity.Transaction
	nextID     int64
	chicksName *string
}

var _ repository.TransactionRepository = (*fakeTxRepo)(nil)

func (f *fakeTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	f.nextID++
	tx.ID = f.nextID
	f.created = append(f.created, *tx)
	return nil
}

func (f *fakeTxRepo) GetByID(_ context.Context, id int64) (*entity.Transaction, error) {
	for _, tx := range f.created {
		if tx.ID == id {
			t := tx
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeTxRepo) ListByBatch(_ context.Context, batchID int64) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, tx := range f.created {
		if tx.BatchID == batchID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) Update(_ context.Context, tx *entity.Transaction) error {
	for i := range f.created {
		if f.created[i].ID == tx.ID {
			f.created[i] = *tx
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeTxRepo) Delete(_ context.Context, id int64) error {
	for i := range f.created {
		if f.created[i].ID == id {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeTxRepo) LatestChicksItemName(_ context.Context, _ int64) (*string, error) {
	return f.chicksName, nil
}

func (f *fakeTxRepo) ListItemTypes(_ context.Context) ([]entity.ItemTypeEntry, error) {
	return nil, nil
}

type fakeBatchRepo struct {
	batches map[int64]entity.Batch
}

var _ repository.BatchRepository = (*fakeBatchRepo)(nil)

func (f *fakeBatchRepo) Create(_ context.Context, _ *entity.Batch) error { return nil }
func (f *fakeBatchRepo) Close(_ context.Context, _ int64) error          { return nil }
func (f *fakeBatchRepo) LastActive(_ context.Context) (*entity.Batch, error) {
	return nil, nil
}
func (f *fakeBatchRepo) ListInactive(_ context.Context) ([]repository.InactiveBatchSummary, error) {
	return nil, nil
}
func (f *fakeBatchRepo) GetByID(_ context.Context, id int64) (*entity.Batch, error) {
	if b, ok := f.batches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

// stubLedger implementa solo lo que el puente usa; el resto entra en pánico
// vía la interfaz embebida nil.
type stubLedger struct {
	repository.LedgerRepository
	exists   bool
	added    decimal.Decimal
	addedTx  int64
	sold     decimal.Decimal
	inserted []entity.LedgerRow
}

func (s *stubLedger) LineageExists(_ context.Context, _ entity.LineageKey) (bool, error) {
	return s.exists, nil
}

func (s *stubLedger) AddToAmountLeft(_ context.Context, _ entity.LineageKey, qty decimal.Decimal, transactionID int64) error {
	s.added = s.added.Add(qty)
	s.addedTx = transactionID
	return nil
}

func (s *stubLedger) AddToSold(_ context.Context, _ int64, _ string, qty decimal.Decimal) error {
	s.sold = s.sold.Add(qty)
	return nil
}

func (s *stubLedger) Insert(_ context.Context, row *entity.LedgerRow) error {
	s.inserted = append(s.inserted, *row)
	return nil
}

type fakeBridgeRunner struct {
	txRepo     repository.TransactionRepository
	ledgerRepo repository.LedgerRepository
}

func (r fakeBridgeRunner) RunBridge(_ context.Context, fn func(
	repository.TransactionRepository, repository.LedgerRepository,
) error) error {
	return fn(r.txRepo, r.ledgerRepo)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func setup(chicksName *string, lineageExists bool) (*UseCase, *fakeTxRepo, *stubLedger) {
	txRepo := &fakeTxRepo{chicksName: chicksName}
	ledgerRepo := &stubLedger{exists: lineageExists}
	batchRepo := &fakeBatchRepo{batches: map[int64]entity.Batch{1: {ID: 1, Name: "Lote 1", IsActive: true}}}
	uc := NewUseCase(fakeBridgeRunner{txRepo: txRepo, ledgerRepo: ledgerRepo}, txRepo, batchRepo, logger.Nop())
	return uc, txRepo, ledgerRepo
}

func baseInput() AddInput {
	return AddInput{
		BatchID:      1,
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Quantity:     dec(50),
		PricePerUnit: dec(4),
		ContactName:  "Don Pedro",
	}
}

// ─────────────────────────────────────────────
// Add
// ─────────────────────────────────────────────

func TestAdd_LoteInexistente(t *testing.T) {
	uc, _, _ := setup(nil, false)
	in := baseInput()
	in.BatchID = 99
	in.Type = entity.TransactionTypeExpense
	in.ItemType = "Labor"

	_, err := uc.Add(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrBatchNotFound)
}

func TestAdd_VentaResuelveNombreYDescuentaVendidos(t *testing.T) {
	name := "Broiler"
	uc, txRepo, ledgerRepo := setup(&name, true)
	in := baseInput()
	in.Type = entity.TransactionTypeSale
	in.ItemType = entity.SaleItemLiveweight

	tx, err := uc.Add(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "Broiler", tx.ItemName, "el nombre sale de la última transacción de pollitos")
	assert.True(t, tx.TotalCost.Equal(dec(200)), "50 * 4")
	require.Len(t, txRepo.created, 1)
	assert.True(t, ledgerRepo.sold.Equal(dec(50)))
}

func TestAdd_VentaTipoInvalido(t *testing.T) {
	name := "Broiler"
	uc, txRepo, _ := setup(&name, true)
	in := baseInput()
	in.Type = entity.TransactionTypeSale
	in.ItemType = "Feeds"

	_, err := uc.Add(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidItemType)
	assert.Empty(t, txRepo.created)
}

func TestAdd_VentaSinTransaccionDePollitos(t *testing.T) {
	uc, txRepo, _ := setup(nil, true)
	in := baseInput()
	in.Type = entity.TransactionTypeSale
	in.ItemType = entity.SaleItemDressed

	_, err := uc.Add(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrNoChicksTransaction)
	assert.Empty(t, txRepo.created)
}

func TestAdd_GastoInventariableIncrementaLinajeExistente(t *testing.T) {
	uc, txRepo, ledgerRepo := setup(nil, true)
	in := baseInput()
	in.Type = entity.TransactionTypeExpense
	in.ItemType = "Feeds"
	in.ItemName = "Starter"

	tx, err := uc.Add(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, txRepo.created, 1)
	assert.True(t, ledgerRepo.added.Equal(dec(50)))
	assert.Equal(t, tx.ID, ledgerRepo.addedTx)
	assert.Empty(t, ledgerRepo.inserted)
}

func TestAdd_GastoInventariableCreaPrimeraFila(t *testing.T) {
	uc, _, ledgerRepo := setup(nil, false)
	in := baseInput()
	in.Type = entity.TransactionTypeExpense
	in.ItemType = "Chicks"
	in.ItemName = "Broiler"

	tx, err := uc.Add(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, ledgerRepo.inserted, 1)
	row := ledgerRepo.inserted[0]
	assert.Equal(t, entity.CommodityChicks, row.ItemType)
	assert.True(t, row.AmountLeft.Equal(dec(50)))
	require.NotNil(t, row.TransactionID)
	assert.Equal(t, tx.ID, *row.TransactionID)
	assert.True(t, ledgerRepo.added.IsZero())
}

func TestAdd_GastoNoInventariableNoTocaInventario(t *testing.T) {
	uc, txRepo, ledgerRepo := setup(nil, true)
	in := baseInput()
	in.Type = entity.TransactionTypeExpense
	in.ItemType = "Labor"
	in.ItemName = "Vacunación"

	_, err := uc.Add(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, txRepo.created, 1)
	assert.True(t, ledgerRepo.added.IsZero())
	assert.True(t, ledgerRepo.sold.IsZero())
	assert.Empty(t, ledgerRepo.inserted)
}

func TestAdd_TotalCostProvistoSeRespeta(t *testing.T) {
	uc, txRepo, _ := setup(nil, true)
	in := baseInput()
	in.Type = entity.TransactionTypeExpense
	in.ItemType = "Labor"
	in.TotalCost = decimal.NullDecimal{Decimal: dec(999), Valid: true}

	tx, err := uc.Add(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, tx.TotalCost.Equal(dec(999)))
	require.Len(t, txRepo.created, 1)
}

// ─────────────────────────────────────────────
// CRUD restante
// ─────────────────────────────────────────────

func TestGetByID_NoExiste(t *testing.T) {
	uc, _, _ := setup(nil, false)
	_, err := uc.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEdit_Reemplaza(t *testing.T) {
	uc, _, _ := setup(nil, true)
	in := baseInput()
	in.Type = entity.TransactionTypeExpense
	in.ItemType = "Labor"
	tx, err := uc.Add(context.Background(), in)
	require.NoError(t, err)

	err = uc.Edit(context.Background(), EditInput{
		ID:           tx.ID,
		BatchID:      1,
		Date:         tx.Date,
		Type:         tx.Type,
		ItemType:     tx.ItemType,
		ItemName:     tx.ItemName,
		ContactName:  "Doña Rosa",
		Quantity:     dec(10),
		PricePerUnit: dec(2),
		TotalCost:    dec(20),
	})
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doña Rosa", got.ContactName)
	assert.True(t, got.TotalCost.Equal(dec(20)))
}

func TestDelete_NoExiste(t *testing.T) {
	uc, _, _ := setup(nil, false)
	err := uc.Delete(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
