package planning

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/domain/shared"
)

var (
	overdueBonusBase = decimal.NewFromInt(1000)
	overdueBonusStep = decimal.NewFromInt(10)
	dueDateCeiling   = decimal.NewFromInt(10000)
	tiebreakDivisor  = decimal.NewFromInt(100)
)

// ScoredInvoice is a payable invoice annotated with its priority score
type ScoredInvoice struct {
	PayableInvoice
	Score   decimal.Decimal
	Overdue bool
}

// Scorer computes the strategy-specific base score of an invoice.
// The overdue bonus is applied outside the scorer, under every strategy.
type Scorer interface {
	Score(invoice PayableInvoice, today time.Time) decimal.Decimal
}

// ScorerFor returns the scorer implementing the given strategy
func ScorerFor(strategy Strategy) (Scorer, error) {
	switch strategy {
	case StrategyByDueDate:
		return &DueDateScorer{}, nil
	case StrategyByImportance:
		return &ImportanceScorer{}, nil
	case StrategyOptimizeCashFlow:
		return &CashFlowScorer{}, nil
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown planning strategy: "+strategy.String())
	}
}

// DueDateScorer scores invoices so the soonest due date ranks highest
type DueDateScorer struct{}

// Score returns 10000 minus the days until due. Overdue invoices land
// above 10000 before the bonus is even applied.
func (s *DueDateScorer) Score(invoice PayableInvoice, today time.Time) decimal.Decimal {
	return dueDateCeiling.Sub(decimal.NewFromInt(int64(invoice.DaysUntilDue(today))))
}

// ImportanceScorer scores invoices by supplier importance weight with a
// small due-date tiebreak between equally important suppliers
type ImportanceScorer struct{}

func (s *ImportanceScorer) Score(invoice PayableInvoice, today time.Time) decimal.Decimal {
	weight := decimal.NewFromInt(invoice.Importance.Weight())
	tiebreak := decimal.NewFromInt(int64(invoice.DaysUntilDue(today))).Div(tiebreakDivisor)
	return weight.Sub(tiebreak)
}

// CashFlowScorer scores invoices by the net financial benefit of settling
// them now: the early payment discount earned minus the late penalty
// already accruing. The formula is a heuristic for scenario authoring.
type CashFlowScorer struct{}

func (s *CashFlowScorer) Score(invoice PayableInvoice, today time.Time) decimal.Decimal {
	discount := invoice.Amount.Mul(invoice.EarlyPaymentDiscountRate)
	lateness := decimal.NewFromInt(int64(invoice.OverdueDays(today)))
	penalty := lateness.Mul(invoice.Amount).Mul(invoice.LatePaymentPenaltyRate)
	return discount.Sub(penalty)
}

// overdueBonus returns 1000 + overdueDays*10 for overdue invoices so they
// outrank non-overdue ones regardless of strategy
func overdueBonus(invoice PayableInvoice, today time.Time) decimal.Decimal {
	if !invoice.IsOverdue(today) {
		return decimal.Zero
	}
	return overdueBonusBase.Add(overdueBonusStep.Mul(decimal.NewFromInt(int64(invoice.OverdueDays(today)))))
}

// ScoreInvoices annotates each invoice with its score under the given
// strategy and returns them sorted by priority: overdue invoices first,
// then descending score, ties broken by ascending invoice id.
func ScoreInvoices(strategy Strategy, invoices []PayableInvoice, today time.Time) ([]ScoredInvoice, error) {
	scorer, err := ScorerFor(strategy)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredInvoice, 0, len(invoices))
	for _, inv := range invoices {
		scored = append(scored, ScoredInvoice{
			PayableInvoice: inv,
			Score:          scorer.Score(inv, today).Add(overdueBonus(inv, today)),
			Overdue:        inv.IsOverdue(today),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Overdue != scored[j].Overdue {
			return scored[i].Overdue
		}
		if !scored[i].Score.Equal(scored[j].Score) {
			return scored[i].Score.GreaterThan(scored[j].Score)
		}
		return scored[i].ID.String() < scored[j].ID.String()
	})

	return scored, nil
}
