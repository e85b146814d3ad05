package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/domain/partner"
)

// maxProbeDays bounds the forward search for a day with remaining capacity
// under the daily spending cap.
const maxProbeDays = 90

const dayKeyLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// Constraints bound the allocator for one planning run
type Constraints struct {
	AvailableCash     decimal.Decimal
	TargetCashReserve decimal.Decimal
	// MaxDailyAmount caps the total scheduled on any single day. Nil means
	// unbounded.
	MaxDailyAmount *decimal.Decimal
}

// PlanItem is one committed payment in a plan
type PlanItem struct {
	InvoiceID     uuid.UUID       `json:"invoiceId"`
	InvoiceNumber string          `json:"invoiceNumber"`
	SupplierID    uuid.UUID       `json:"supplierId"`
	SupplierName  string          `json:"supplierName"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	ScheduledDate time.Time       `json:"scheduledDate"`
	Score         decimal.Decimal `json:"score"`
	IsLate        bool            `json:"isLate"`
	Penalty       decimal.Decimal `json:"penalty"`
}

// SkippedInvoice is an invoice the allocator could not place
type SkippedInvoice struct {
	InvoiceID     uuid.UUID       `json:"invoiceId"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Score         decimal.Decimal `json:"score"`
}

// Metrics aggregates plan-wide statistics
type Metrics struct {
	TotalInvoices     int             `json:"totalInvoices"`
	ScheduledInvoices int             `json:"scheduledInvoices"`
	InsufficientFunds int             `json:"insufficientFunds"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaymentsLate      int             `json:"paymentsLate"`
	OnTimeRate        decimal.Decimal `json:"onTimeRate"`
	TotalPenalties    decimal.Decimal `json:"totalPenalties"`
}

// Plan is the result of one optimization run
type Plan struct {
	Strategy          Strategy         `json:"strategy"`
	Items             []PlanItem       `json:"plan"`
	InsufficientFunds []SkippedInvoice `json:"insufficientFunds"`
	Metrics           Metrics          `json:"metrics"`
	AvailableCash     decimal.Decimal  `json:"availableCash"`
}

// BuildPlan scores the given invoices under the strategy and greedily
// allocates them within the constraints. It is a pure in-memory
// computation with no side effects.
func BuildPlan(strategy Strategy, invoices []PayableInvoice, constraints Constraints, today time.Time) (*Plan, error) {
	scored, err := ScoreInvoices(strategy, invoices, today)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Strategy:          strategy,
		Items:             make([]PlanItem, 0, len(scored)),
		InsufficientFunds: make([]SkippedInvoice, 0),
		AvailableCash:     constraints.AvailableCash,
	}

	runningCash := constraints.AvailableCash
	perDay := make(map[string]decimal.Decimal)
	today = truncateToDay(today)

	for _, inv := range scored {
		if runningCash.Sub(constraints.TargetCashReserve).LessThan(inv.Amount) {
			plan.InsufficientFunds = append(plan.InsufficientFunds, skipped(inv))
			continue
		}

		scheduledDate, ok := placeInvoice(inv, strategy, constraints.MaxDailyAmount, perDay, today)
		if !ok {
			plan.InsufficientFunds = append(plan.InsufficientFunds, skipped(inv))
			continue
		}

		runningCash = runningCash.Sub(inv.Amount)
		key := scheduledDate.Format(dayKeyLayout)
		perDay[key] = perDay[key].Add(inv.Amount)

		isLate := scheduledDate.After(truncateToDay(inv.DueDate))
		penalty := decimal.Zero
		if isLate {
			penalty = inv.Amount.Mul(inv.LatePaymentPenaltyRate)
		}

		plan.Items = append(plan.Items, PlanItem{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			SupplierID:    inv.SupplierID,
			SupplierName:  inv.SupplierName,
			Amount:        inv.Amount,
			DueDate:       inv.DueDate,
			ScheduledDate: scheduledDate,
			Score:         inv.Score,
			IsLate:        isLate,
			Penalty:       penalty,
		})
	}

	plan.Metrics = computeMetrics(plan.Items, plan.InsufficientFunds)
	return plan, nil
}

// placeInvoice probes forward from the strategy's candidate date for the
// first day with enough remaining capacity under the daily cap.
func placeInvoice(inv ScoredInvoice, strategy Strategy, maxDaily *decimal.Decimal, perDay map[string]decimal.Decimal, today time.Time) (time.Time, bool) {
	date := candidateDate(inv, strategy, today)
	if maxDaily == nil {
		return date, true
	}
	if inv.Amount.GreaterThan(*maxDaily) {
		return time.Time{}, false
	}
	for probe := 0; probe < maxProbeDays; probe++ {
		key := date.Format(dayKeyLayout)
		if perDay[key].Add(inv.Amount).LessThanOrEqual(*maxDaily) {
			return date, true
		}
		date = date.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// candidateDate picks the earliest date the strategy would pay the
// invoice on. Never before today.
func candidateDate(inv ScoredInvoice, strategy Strategy, today time.Time) time.Time {
	switch strategy {
	case StrategyByImportance:
		if inv.Importance == partner.ImportanceCritical || inv.Importance == partner.ImportanceHigh {
			return today
		}
	case StrategyOptimizeCashFlow:
		// pay as early as possible to capture the discount
		return today
	}
	due := truncateToDay(inv.DueDate)
	if due.Before(today) {
		return today
	}
	return due
}

func skipped(inv ScoredInvoice) SkippedInvoice {
	return SkippedInvoice{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount,
		Score:         inv.Score,
	}
}

func computeMetrics(items []PlanItem, insufficient []SkippedInvoice) Metrics {
	m := Metrics{
		ScheduledInvoices: len(items),
		InsufficientFunds: len(insufficient),
		TotalInvoices:     len(items) + len(insufficient),
		TotalAmount:       decimal.Zero,
		TotalPenalties:    decimal.Zero,
		OnTimeRate:        decimal.Zero,
	}
	for _, item := range items {
		m.TotalAmount = m.TotalAmount.Add(item.Amount)
		if item.IsLate {
			m.PaymentsLate++
			m.TotalPenalties = m.TotalPenalties.Add(item.Penalty)
		}
	}
	if m.ScheduledInvoices > 0 {
		onTime := decimal.NewFromInt(int64(m.ScheduledInvoices - m.PaymentsLate))
		rate := hundred.Mul(onTime).Div(decimal.NewFromInt(int64(m.ScheduledInvoices)))
		if rate.IsNegative() {
			rate = decimal.Zero
		}
		if rate.GreaterThan(hundred) {
			rate = hundred
		}
		m.OnTimeRate = rate.Round(2)
	}
	return m
}
