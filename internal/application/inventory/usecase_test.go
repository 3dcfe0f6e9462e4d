package inventory

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
// Fakes in-memory
// ─────────────────────────────────────────────

// fakeLedgerRepo guarda las filas por mercancía, en orden de id, como las
// tablas reales.
type fakeLedgerRepo struct {
	rows   map[entity.Commodity][]entity.LedgerRow
	nextID int64
}

var _ repository.LedgerRepository = (*fakeLedgerRepo)(nil)

func newFakeLedger() *fakeLedgerRepo {
	return &fakeLedgerRepo{rows: make(map[entity.Commodity][]entity.LedgerRow), nextID: 1}
}

func (f *fakeLedgerRepo) seed(row entity.LedgerRow) int64 {
	row.ID = f.nextID
	f.nextID++
	f.rows[row.ItemType] = append(f.rows[row.ItemType], row)
	return row.ID
}

func matches(row entity.LedgerRow, fl repository.LineageFilter) bool {
	if fl.BatchID != nil && row.BatchID != *fl.BatchID {
		return false
	}
	if fl.ItemName != nil && row.ItemName != *fl.ItemName {
		return false
	}
	return true
}

func (f *fakeLedgerRepo) GetByID(_ context.Context, c entity.Commodity, id int64) (*entity.LedgerRow, error) {
	for _, row := range f.rows[c] {
		if row.ID == id {
			r := row
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) LastInLineage(_ context.Context, c entity.Commodity, fl repository.LineageFilter) (*entity.LedgerRow, error) {
	list := f.rows[c]
	for i := len(list) - 1; i >= 0; i-- {
		if matches(list[i], fl) {
			r := list[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) LastBefore(_ context.Context, c entity.Commodity, id int64, fl repository.LineageFilter) (*entity.LedgerRow, error) {
	list := f.rows[c]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].ID < id && matches(list[i], fl) {
			r := list[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) ListAfter(_ context.Context, c entity.Commodity, id int64, fl repository.LineageFilter) ([]entity.LedgerRow, error) {
	var out []entity.LedgerRow
	for _, row := range f.rows[c] {
		if row.ID > id && matches(row, fl) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListByBatch(_ context.Context, c entity.Commodity, batchID int64) ([]entity.LedgerRow, error) {
	var out []entity.LedgerRow
	for _, row := range f.rows[c] {
		if row.BatchID == batchID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListStockDetails(_ context.Context, c entity.Commodity, itemName string) ([]entity.LedgerRow, error) {
	var out []entity.LedgerRow
	for _, row := range f.rows[c] {
		if row.ItemName == itemName {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) Insert(_ context.Context, row *entity.LedgerRow) error {
	row.ID = f.nextID
	f.nextID++
	f.rows[row.ItemType] = append(f.rows[row.ItemType], *row)
	return nil
}

func (f *fakeLedgerRepo) Delete(_ context.Context, c entity.Commodity, id int64) error {
	list := f.rows[c]
	for i, row := range list {
		if row.ID == id {
			f.rows[c] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeLedgerRepo) UpdateAmountLeft(_ context.Context, c entity.Commodity, id int64, amountLeft decimal.Decimal) error {
	list := f.rows[c]
	for i := range list {
		if list[i].ID == id {
			list[i].AmountLeft = amountLeft
		}
	}
	return nil
}

func (f *fakeLedgerRepo) UpdateRow(_ context.Context, row *entity.LedgerRow) error {
	list := f.rows[row.ItemType]
	for i := range list {
		if list[i].ID == row.ID {
			list[i] = *row
		}
	}
	return nil
}

func (f *fakeLedgerRepo) AddToAmountLeft(_ context.Context, key entity.LineageKey, qty decimal.Decimal, transactionID int64) error {
	list := f.rows[key.ItemType]
	for i := range list {
		if list[i].BatchID == key.BatchID && list[i].ItemName == key.ItemName {
			list[i].AmountLeft = list[i].AmountLeft.Add(qty)
			id := transactionID
			list[i].TransactionID = &id
		}
	}
	return nil
}

func (f *fakeLedgerRepo) AddToSold(_ context.Context, batchID int64, itemName string, qty decimal.Decimal) error {
	list := f.rows[entity.CommodityChicks]
	best := -1
	for i := range list {
		if list[i].BatchID != batchID || list[i].ItemName != itemName {
			continue
		}
		if best == -1 || list[i].Date.After(list[best].Date) ||
			(list[i].Date.Equal(list[best].Date) && list[i].ID > list[best].ID) {
			best = i
		}
	}
	if best >= 0 {
		sold := decimal.Zero
		if list[best].Sold.Valid {
			sold = list[best].Sold.Decimal
		}
		list[best].Sold = decimal.NullDecimal{Decimal: sold.Add(qty), Valid: true}
	}
	return nil
}

func (f *fakeLedgerRepo) LineageExists(_ context.Context, key entity.LineageKey) (bool, error) {
	for _, row := range f.rows[key.ItemType] {
		if row.BatchID == key.BatchID && row.ItemName == key.ItemName {
			return true, nil
		}
	}
	return false, nil
}

// fakeTxRunner ejecuta el callback directamente sobre el fake, sin tx real.
type fakeTxRunner struct {
	repo repository.LedgerRepository
}

func (r fakeTxRunner) Run(_ context.Context, fn func(repository.LedgerRepository) error) error {
	return fn(r.repo)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func nd(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
}

func feedRow(batchID int64, name string, left, consumed int64) entity.LedgerRow {
	return entity.LedgerRow{
		BatchID:        batchID,
		ItemType:       entity.CommodityFeeds,
		ItemName:       name,
		Date:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		AmountLeft:     dec(left),
		AmountConsumed: nd(consumed),
	}
}

func chickRow(batchID int64, name string, left, sold, mortality int64) entity.LedgerRow {
	return entity.LedgerRow{
		BatchID:    batchID,
		ItemType:   entity.CommodityChicks,
		ItemName:   name,
		Date:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		AmountLeft: dec(left),
		Sold:       nd(sold),
		Mortality:  nd(mortality),
	}
}

func newUseCase(repo *fakeLedgerRepo, cfg Config) *UseCase {
	return NewUseCase(fakeTxRunner{repo: repo}, repo, cfg, logger.Nop())
}

func mustRow(t *testing.T, repo *fakeLedgerRepo, c entity.Commodity, id int64) entity.LedgerRow {
	t.Helper()
	row, err := repo.GetByID(context.Background(), c, id)
	require.NoError(t, err)
	require.NotNil(t, row)
	return *row
}

// ─────────────────────────────────────────────
// AppendDepletion
// ─────────────────────────────────────────────

func TestAppendDepletion_FeedsActualizaYApendea(t *testing.T) {
	repo := newFakeLedger()
	txID := int64(9)
	head := feedRow(1, "Starter", 100, 0)
	head.TransactionID = &txID
	id := repo.seed(head)
	uc := newUseCase(repo, Config{})

	err := uc.AppendDepletion(context.Background(), entity.CommodityFeeds, AppendInput{
		ID:             id,
		Date:           time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		AmountLeft:     dec(100),
		AmountConsumed: dec(30),
	})
	require.NoError(t, err)

	target := mustRow(t, repo, entity.CommodityFeeds, id)
	assert.True(t, target.AmountLeft.Equal(dec(100)))
	assert.True(t, target.AmountConsumed.Decimal.Equal(dec(30)))

	rows := repo.rows[entity.CommodityFeeds]
	require.Len(t, rows, 2)
	appended := rows[1]
	assert.True(t, appended.AmountLeft.Equal(dec(70)))
	assert.False(t, appended.AmountConsumed.Valid)
	require.NotNil(t, appended.TransactionID)
	assert.Equal(t, txID, *appended.TransactionID)
}

func TestAppendDepletion_ConsumoSuperaSaldoNoMuta(t *testing.T) {
	repo := newFakeLedger()
	id := repo.seed(feedRow(1, "Starter", 100, 0))
	uc := newUseCase(repo, Config{})

	err := uc.AppendDepletion(context.Background(), entity.CommodityFeeds, AppendInput{
		ID:             id,
		Date:           time.Now(),
		AmountLeft:     dec(100),
		AmountConsumed: dec(130),
	})
	require.ErrorIs(t, err, domain.ErrDepletionExceedsBalance)

	// Nada cambió: ni la fila objetivo ni el largo del linaje.
	target := mustRow(t, repo, entity.CommodityFeeds, id)
	assert.True(t, target.AmountLeft.Equal(dec(100)))
	assert.Len(t, repo.rows[entity.CommodityFeeds], 1)
}

func TestAppendDepletion_ChicksSinPreCheck(t *testing.T) {
	repo := newFakeLedger()
	txID := int64(4)
	head := chickRow(1, "Broiler", 100, 0, 0)
	head.TransactionID = &txID
	id := repo.seed(head)
	uc := newUseCase(repo, Config{})

	err := uc.AppendDepletion(context.Background(), entity.CommodityChicks, AppendInput{
		ID:         id,
		BatchID:    1,
		ItemName:   "Broiler",
		Date:       time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		AmountLeft: dec(100),
		Sold:       nd(20),
		Mortality:  nd(10),
	})
	require.NoError(t, err)

	rows := repo.rows[entity.CommodityChicks]
	require.Len(t, rows, 2)
	appended := rows[1]
	assert.True(t, appended.AmountLeft.Equal(dec(70)), "100 - 20 vendidos - 10 mortalidad")
	assert.False(t, appended.Sold.Valid)
	require.NotNil(t, appended.TransactionID)
	assert.Equal(t, txID, *appended.TransactionID)

	target := mustRow(t, repo, entity.CommodityChicks, id)
	assert.True(t, target.Sold.Decimal.Equal(dec(20)))
	assert.True(t, target.Mortality.Decimal.Equal(dec(10)))
}

func TestAppendDepletion_TipoDesconocido(t *testing.T) {
	uc := newUseCase(newFakeLedger(), Config{})
	err := uc.AppendDepletion(context.Background(), entity.Commodity("Cattle"), AppendInput{ID: 1})
	require.ErrorIs(t, err, domain.ErrInvalidItemType)
}

// ─────────────────────────────────────────────
// EditStock
// ─────────────────────────────────────────────

func seedFeedLineage(repo *fakeLedgerRepo) (id1, id2, id3 int64) {
	id1 = repo.seed(feedRow(1, "Starter", 100, 20))
	id2 = repo.seed(feedRow(1, "Starter", 80, 10))
	id3 = repo.seed(feedRow(1, "Starter", 70, 5))
	return id1, id2, id3
}

func TestEditStock_CascadaHaciaDelante(t *testing.T) {
	repo := newFakeLedger()
	id1, id2, id3 := seedFeedLineage(repo)
	uc := newUseCase(repo, Config{})

	// El consumo de la cabeza baja de 20 a 15.
	err := uc.EditStock(context.Background(), entity.CommodityFeeds, EditInput{
		ID:             id1,
		Date:           time.Now(),
		AmountLeft:     dec(100),
		AmountConsumed: nd(15),
	})
	require.NoError(t, err)

	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, id2).AmountLeft.Equal(dec(85)))
	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, id3).AmountLeft.Equal(dec(75)))
}

func TestEditStock_SaldoSeRederivaDeLaPredecesora(t *testing.T) {
	repo := newFakeLedger()
	_, id2, id3 := seedFeedLineage(repo)
	uc := newUseCase(repo, Config{})

	// El cliente manda un saldo absurdo; la predecesora manda.
	err := uc.EditStock(context.Background(), entity.CommodityFeeds, EditInput{
		ID:             id2,
		Date:           time.Now(),
		AmountLeft:     dec(999),
		AmountConsumed: nd(10),
	})
	require.NoError(t, err)

	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, id2).AmountLeft.Equal(dec(80)), "100 - 20 de la predecesora")
	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, id3).AmountLeft.Equal(dec(70)))
}

func TestEditStock_ChicksGuardNegativoSalta(t *testing.T) {
	repo := newFakeLedger()
	id1 := repo.seed(chickRow(1, "Broiler", 30, 0, 0))
	id2 := repo.seed(chickRow(1, "Broiler", 50, 10, 5))
	id3 := repo.seed(chickRow(1, "Broiler", 30, 2, 1))
	uc := newUseCase(repo, Config{})

	// Venta editada a 40 sobre saldo 30: la sucesora quedaría en -10.
	err := uc.EditStock(context.Background(), entity.CommodityChicks, EditInput{
		ID:         id1,
		Date:       time.Now(),
		AmountLeft: dec(30),
		Sold:       nd(40),
		Mortality:  nd(0),
	})
	require.NoError(t, err)

	// La fila 2 se salta y conserva sus valores; la 3 continúa desde los
	// originales de la saltada: 50 - 10 - 5 = 35.
	assert.True(t, mustRow(t, repo, entity.CommodityChicks, id2).AmountLeft.Equal(dec(50)))
	assert.True(t, mustRow(t, repo, entity.CommodityChicks, id3).AmountLeft.Equal(dec(35)))
}

func TestEditStock_NoExiste(t *testing.T) {
	uc := newUseCase(newFakeLedger(), Config{})
	err := uc.EditStock(context.Background(), entity.CommodityFeeds, EditInput{ID: 99, Date: time.Now()})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────

func TestDelete_ReanclaEnLaPredecesora(t *testing.T) {
	repo := newFakeLedger()
	_, id2, id3 := seedFeedLineage(repo)
	uc := newUseCase(repo, Config{})

	err := uc.Delete(context.Background(), DeleteInput{
		ID: id2, ItemType: entity.CommodityFeeds, ItemName: "Starter", BatchID: 1,
	})
	require.NoError(t, err)

	assert.Len(t, repo.rows[entity.CommodityFeeds], 2)
	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, id3).AmountLeft.Equal(dec(80)), "hereda 100-20 de la predecesora restante")
}

func TestDelete_CabezaDeLinajeUsaSuPropioSaldo(t *testing.T) {
	repo := newFakeLedger()
	id1, id2, id3 := seedFeedLineage(repo)
	uc := newUseCase(repo, Config{})

	err := uc.Delete(context.Background(), DeleteInput{
		ID: id1, ItemType: entity.CommodityFeeds, ItemName: "Starter", BatchID: 1,
	})
	require.NoError(t, err)

	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, id2).AmountLeft.Equal(dec(100)))
	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, id3).AmountLeft.Equal(dec(90)))
}

func TestDelete_NoExiste(t *testing.T) {
	uc := newUseCase(newFakeLedger(), Config{})
	err := uc.Delete(context.Background(), DeleteInput{ID: 99, ItemType: entity.CommodityFeeds})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────
// Scoping legacy vs estricto
// ─────────────────────────────────────────────

func TestDelete_ScopingLegacyCruzaLinajes(t *testing.T) {
	repo := newFakeLedger()
	idA1 := repo.seed(feedRow(1, "Starter", 100, 20))
	idB1 := repo.seed(feedRow(1, "Grower", 200, 50))
	idA2 := repo.seed(feedRow(1, "Starter", 80, 10))
	uc := newUseCase(repo, Config{})

	err := uc.Delete(context.Background(), DeleteInput{
		ID: idA1, ItemType: entity.CommodityFeeds, ItemName: "Starter", BatchID: 1,
	})
	require.NoError(t, err)

	// El recorrido histórico va en orden global de id: contamina el linaje
	// intercalado de Grower.
	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, idB1).AmountLeft.Equal(dec(100)))
	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, idA2).AmountLeft.Equal(dec(50)))
}

func TestDelete_ScopingEstrictoRespetaLinajes(t *testing.T) {
	repo := newFakeLedger()
	idA1 := repo.seed(feedRow(1, "Starter", 100, 20))
	idB1 := repo.seed(feedRow(1, "Grower", 200, 50))
	idA2 := repo.seed(feedRow(1, "Starter", 80, 10))
	uc := newUseCase(repo, Config{StrictLineage: true})

	err := uc.Delete(context.Background(), DeleteInput{
		ID: idA1, ItemType: entity.CommodityFeeds, ItemName: "Starter", BatchID: 1,
	})
	require.NoError(t, err)

	// El linaje de Grower queda intacto y Starter hereda el saldo base.
	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, idB1).AmountLeft.Equal(dec(200)))
	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, idA2).AmountLeft.Equal(dec(100)))
}

func TestEditStock_ScopingLegacyIgnoraLote(t *testing.T) {
	repo := newFakeLedger()
	id1 := repo.seed(feedRow(1, "Starter", 100, 20))
	otherBatch := repo.seed(feedRow(2, "Starter", 500, 0))
	uc := newUseCase(repo, Config{})

	err := uc.EditStock(context.Background(), entity.CommodityFeeds, EditInput{
		ID:             id1,
		Date:           time.Now(),
		AmountLeft:     dec(100),
		AmountConsumed: nd(15),
	})
	require.NoError(t, err)

	// Mismo nombre en otro lote: el scoping histórico lo arrastra igual.
	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, otherBatch).AmountLeft.Equal(dec(85)))
}

func TestEditStock_ScopingEstrictoAcotaPorLote(t *testing.T) {
	repo := newFakeLedger()
	id1 := repo.seed(feedRow(1, "Starter", 100, 20))
	otherBatch := repo.seed(feedRow(2, "Starter", 500, 0))
	uc := newUseCase(repo, Config{StrictLineage: true})

	err := uc.EditStock(context.Background(), entity.CommodityFeeds, EditInput{
		ID:             id1,
		Date:           time.Now(),
		AmountLeft:     dec(100),
		AmountConsumed: nd(15),
	})
	require.NoError(t, err)

	assert.True(t, mustRow(t, repo, entity.CommodityFeeds, otherBatch).AmountLeft.Equal(dec(500)))
}
