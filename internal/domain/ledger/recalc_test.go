package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func nd(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
}

func feedRow(id, left, consumed int64) entity.LedgerRow {
	return entity.LedgerRow{
		ID:             id,
		ItemType:       entity.CommodityFeeds,
		AmountLeft:     dec(left),
		AmountConsumed: nd(consumed),
	}
}

func chickRow(id, left, sold, mortality int64) entity.LedgerRow {
	return entity.LedgerRow{
		ID:         id,
		ItemType:   entity.CommodityChicks,
		AmountLeft: dec(left),
		Sold:       nd(sold),
		Mortality:  nd(mortality),
	}
}

func mustPolicy(t *testing.T, c entity.Commodity) Policy {
	t.Helper()
	p, err := PolicyFor(c)
	require.NoError(t, err)
	return p
}

// ─────────────────────────────────────────────
// PolicyFor / Depletion
// ─────────────────────────────────────────────

func TestPolicyFor_AsimetriaPorMercancia(t *testing.T) {
	feeds := mustPolicy(t, entity.CommodityFeeds)
	assert.True(t, feeds.ValidateBound)
	assert.False(t, feeds.NegativeGuard)

	supps := mustPolicy(t, entity.CommoditySupplements)
	assert.True(t, supps.ValidateBound)
	assert.False(t, supps.NegativeGuard)

	chicks := mustPolicy(t, entity.CommodityChicks)
	assert.False(t, chicks.ValidateBound)
	assert.True(t, chicks.NegativeGuard)
}

func TestPolicyFor_TipoDesconocido(t *testing.T) {
	_, err := PolicyFor(entity.Commodity("Cattle"))
	require.ErrorIs(t, err, domain.ErrInvalidItemType)
}

func TestPolicy_Depletion(t *testing.T) {
	feeds := mustPolicy(t, entity.CommodityFeeds)
	assert.True(t, feeds.Depletion(feedRow(1, 100, 20)).Equal(dec(20)))

	chicks := mustPolicy(t, entity.CommodityChicks)
	assert.True(t, chicks.Depletion(chickRow(1, 500, 30, 12)).Equal(dec(42)))
}

func TestPolicy_DepletionCamposNulosCuentanCero(t *testing.T) {
	chicks := mustPolicy(t, entity.CommodityChicks)
	row := entity.LedgerRow{ID: 1, ItemType: entity.CommodityChicks, AmountLeft: dec(500)}
	assert.True(t, chicks.Depletion(row).IsZero())

	row.Sold = nd(7)
	assert.True(t, chicks.Depletion(row).Equal(dec(7)))
}

// ─────────────────────────────────────────────
// Cascade
// ─────────────────────────────────────────────

func TestCascade_LinajeConsistenteNoProduceCambios(t *testing.T) {
	p := mustPolicy(t, entity.CommodityFeeds)
	rows := []entity.LedgerRow{feedRow(2, 80, 10), feedRow(3, 70, 5)}

	changes, skipped := Cascade(dec(100), dec(20), rows, p)

	assert.Empty(t, changes)
	assert.Empty(t, skipped)
}

func TestCascade_EdicionPropagaHaciaDelante(t *testing.T) {
	// Linaje [100/20, 80/10, 70/5]; el consumo de la primera fila baja a 15.
	p := mustPolicy(t, entity.CommodityFeeds)
	rows := []entity.LedgerRow{feedRow(2, 80, 10), feedRow(3, 70, 5)}

	changes, _ := Cascade(dec(100), dec(15), rows, p)

	require.Len(t, changes, 2)
	assert.Equal(t, int64(2), changes[0].ID)
	assert.True(t, changes[0].AmountLeft.Equal(dec(85)))
	assert.Equal(t, int64(3), changes[1].ID)
	assert.True(t, changes[1].AmountLeft.Equal(dec(75)))
}

func TestCascade_BorradoReanclaEnLaPredecesora(t *testing.T) {
	// Linaje [100/20, 80/10, 70/5, 65/...]; se borra la segunda fila. La
	// predecesora restante arrastra 100-20=80 y la primera sucesora lo hereda
	// tal cual (depleción previa cero), luego sigue la recurrencia normal.
	p := mustPolicy(t, entity.CommodityFeeds)
	rows := []entity.LedgerRow{feedRow(3, 70, 5), feedRow(4, 65, 8)}

	changes, _ := Cascade(dec(80), decimal.Zero, rows, p)

	require.Len(t, changes, 2)
	assert.True(t, changes[0].AmountLeft.Equal(dec(80)))
	assert.True(t, changes[1].AmountLeft.Equal(dec(75)))
}

func TestCascade_GuardNegativoSaltaYContinuaDesdeOriginales(t *testing.T) {
	// El saldo recalculado de la fila 2 quedaría en -5, así que se salta sin
	// tocarla y el recorrido continúa desde sus valores originales.
	p := mustPolicy(t, entity.CommodityChicks)
	rows := []entity.LedgerRow{
		chickRow(2, 50, 10, 5),
		chickRow(3, 30, 2, 1),
	}

	changes, skipped := Cascade(dec(5), dec(10), rows, p)

	require.Len(t, skipped, 1)
	assert.Equal(t, int64(2), skipped[0])
	require.Len(t, changes, 1)
	assert.Equal(t, int64(3), changes[0].ID)
	assert.True(t, changes[0].AmountLeft.Equal(dec(35)), "hereda 50-15 de la fila saltada")
}

func TestCascade_SinGuardLosSaldosNegativosSePropagan(t *testing.T) {
	p := mustPolicy(t, entity.CommodityFeeds)
	rows := []entity.LedgerRow{feedRow(2, 80, 10)}

	changes, skipped := Cascade(dec(5), dec(10), rows, p)

	assert.Empty(t, skipped)
	require.Len(t, changes, 1)
	assert.True(t, changes[0].AmountLeft.Equal(dec(-5)))
}

func TestCascade_Idempotente(t *testing.T) {
	p := mustPolicy(t, entity.CommodityFeeds)
	rows := []entity.LedgerRow{feedRow(2, 80, 10), feedRow(3, 70, 5), feedRow(4, 60, 9)}

	first, _ := Cascade(dec(100), dec(15), rows, p)
	require.NotEmpty(t, first)
	Apply(rows, first)

	second, _ := Cascade(dec(100), dec(15), rows, p)
	assert.Empty(t, second)
}

func TestCascade_IdempotenteConGuardNegativo(t *testing.T) {
	p := mustPolicy(t, entity.CommodityChicks)
	rows := []entity.LedgerRow{chickRow(2, 50, 10, 5), chickRow(3, 30, 2, 1)}

	first, firstSkipped := Cascade(dec(5), dec(10), rows, p)
	Apply(rows, first)

	second, secondSkipped := Cascade(dec(5), dec(10), rows, p)
	assert.Empty(t, second)
	assert.Equal(t, firstSkipped, secondSkipped)
}

func TestCarryForward(t *testing.T) {
	feeds := mustPolicy(t, entity.CommodityFeeds)
	assert.True(t, CarryForward(feedRow(1, 100, 30), feeds).Equal(dec(70)))

	chicks := mustPolicy(t, entity.CommodityChicks)
	assert.True(t, CarryForward(chickRow(1, 500, 30, 20), chicks).Equal(dec(450)))
}
