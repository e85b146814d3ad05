package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finops/backend/internal/domain/planning"
)

func newTestScenario(t *testing.T) *PaymentScenario {
	t.Helper()
	s, err := NewPaymentScenario(
		uuid.New(), "June plan", "pay critical suppliers first",
		planning.StrategyByImportance,
		decimal.NewFromInt(10000),
		[]uuid.UUID{uuid.New(), uuid.New()},
		decimal.NewFromInt(4500),
	)
	require.NoError(t, err)
	return s
}

func TestNewPaymentScenarioValidation(t *testing.T) {
	tenantID := uuid.New()
	refs := []uuid.UUID{uuid.New()}

	_, err := NewPaymentScenario(tenantID, "", "", planning.StrategyByDueDate, decimal.Zero, refs, decimal.Zero)
	assert.Error(t, err)

	_, err = NewPaymentScenario(tenantID, "plan", "", planning.Strategy("GUESSWORK"), decimal.Zero, refs, decimal.Zero)
	assert.Error(t, err)

	_, err = NewPaymentScenario(tenantID, "plan", "", planning.StrategyByDueDate, decimal.NewFromInt(-1), refs, decimal.Zero)
	assert.Error(t, err)
}

func TestScenarioStartsInactive(t *testing.T) {
	s := newTestScenario(t)

	assert.False(t, s.IsActive)
	assert.Nil(t, s.AppliedAt)
	assert.Len(t, s.InvoiceRefs, 2)
	assert.True(t, s.TotalAmount.Equal(decimal.NewFromInt(4500)))
}

func TestScenarioActivateStampsAppliedAt(t *testing.T) {
	s := newTestScenario(t)
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	s.Activate(now)

	assert.True(t, s.IsActive)
	require.NotNil(t, s.AppliedAt)
	assert.Equal(t, now, *s.AppliedAt)

	s.Deactivate()
	assert.False(t, s.IsActive)
	// The activation timestamp survives deactivation as history
	assert.NotNil(t, s.AppliedAt)
}

func TestScenarioSetPeriodOrdering(t *testing.T) {
	s := newTestScenario(t)
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	require.NoError(t, s.SetPeriod(&start, &end))
	assert.Equal(t, &start, s.StartDate)

	err := s.SetPeriod(&end, &start)
	assert.Error(t, err)
}
