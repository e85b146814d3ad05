package planning

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finops/backend/internal/domain/partner"
)

var testToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func testInvoice(amount int64, dueOffsetDays int, importance partner.Importance) PayableInvoice {
	return PayableInvoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-" + uuid.NewString()[:8],
		SupplierID:    uuid.New(),
		SupplierName:  "Supplier",
		Importance:    importance,
		Amount:        decimal.NewFromInt(amount),
		DueDate:       testToday.AddDate(0, 0, dueOffsetDays),
	}
}

func TestScorerFor_UnknownStrategy(t *testing.T) {
	_, err := ScorerFor(Strategy("RANDOM"))
	assert.Error(t, err)
}

func TestDueDateScorer_SoonestDueScoresHighest(t *testing.T) {
	soon := testInvoice(1000, 2, partner.ImportanceNormal)
	far := testInvoice(1000, 30, partner.ImportanceNormal)

	scored, err := ScoreInvoices(StrategyByDueDate, []PayableInvoice{far, soon}, testToday)
	require.NoError(t, err)
	require.Len(t, scored, 2)

	assert.Equal(t, soon.ID, scored[0].ID)
	assert.True(t, scored[0].Score.GreaterThan(scored[1].Score))
}

func TestImportanceScorer_CriticalOutscoresNormal(t *testing.T) {
	critical := testInvoice(1000, 10, partner.ImportanceCritical)
	normal := testInvoice(1000, 10, partner.ImportanceNormal)

	scored, err := ScoreInvoices(StrategyByImportance, []PayableInvoice{normal, critical}, testToday)
	require.NoError(t, err)

	assert.Equal(t, critical.ID, scored[0].ID)
	assert.True(t, scored[0].Score.GreaterThan(scored[1].Score))
}

func TestImportanceScorer_DueDateBreaksTiesWithinSameWeight(t *testing.T) {
	soon := testInvoice(1000, 5, partner.ImportanceHigh)
	far := testInvoice(1000, 25, partner.ImportanceHigh)

	scored, err := ScoreInvoices(StrategyByImportance, []PayableInvoice{far, soon}, testToday)
	require.NoError(t, err)

	assert.Equal(t, soon.ID, scored[0].ID)
}

func TestCashFlowScorer_DiscountMinusAccruedPenalty(t *testing.T) {
	inv := testInvoice(10000, -4, partner.ImportanceNormal)
	inv.EarlyPaymentDiscountRate = decimal.NewFromFloat(0.02)
	inv.LatePaymentPenaltyRate = decimal.NewFromFloat(0.001)

	scorer := &CashFlowScorer{}
	score := scorer.Score(inv, testToday)

	// 10000*0.02 - 4*10000*0.001 = 200 - 40
	assert.True(t, score.Equal(decimal.NewFromInt(160)), "got %s", score)
}

func TestOverdueInvoice_AlwaysSortsFirst(t *testing.T) {
	overdue := testInvoice(100, -3, partner.ImportanceLow)
	bigDiscount := testInvoice(1000000, 20, partner.ImportanceCritical)
	bigDiscount.EarlyPaymentDiscountRate = decimal.NewFromFloat(0.05)

	for _, strategy := range []Strategy{StrategyByDueDate, StrategyByImportance, StrategyOptimizeCashFlow} {
		scored, err := ScoreInvoices(strategy, []PayableInvoice{bigDiscount, overdue}, testToday)
		require.NoError(t, err)
		assert.Equal(t, overdue.ID, scored[0].ID, "strategy %s", strategy)
	}
}

func TestOverdueBonus_ScoreExceedsThousand(t *testing.T) {
	overdue := testInvoice(100, -1, partner.ImportanceLow)

	for _, strategy := range []Strategy{StrategyByDueDate, StrategyByImportance, StrategyOptimizeCashFlow} {
		scored, err := ScoreInvoices(strategy, []PayableInvoice{overdue}, testToday)
		require.NoError(t, err)
		assert.True(t, scored[0].Score.GreaterThan(decimal.NewFromInt(1000)), "strategy %s score %s", strategy, scored[0].Score)
	}
}

func TestScoreInvoices_TiesBrokenByAscendingID(t *testing.T) {
	a := testInvoice(500, 10, partner.ImportanceNormal)
	b := testInvoice(500, 10, partner.ImportanceNormal)

	scored, err := ScoreInvoices(StrategyByDueDate, []PayableInvoice{a, b}, testToday)
	require.NoError(t, err)
	require.Len(t, scored, 2)

	assert.True(t, scored[0].ID.String() < scored[1].ID.String())
	assert.True(t, scored[0].Score.Equal(scored[1].Score))
}
