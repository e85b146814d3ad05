package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/domain/partner"
)

// PayableInvoice is a planning view of a supplier invoice joined with the
// supplier attributes the scoring strategies need.
type PayableInvoice struct {
	ID                       uuid.UUID
	InvoiceNumber            string
	SupplierID               uuid.UUID
	SupplierName             string
	Importance               partner.Importance
	Amount                   decimal.Decimal
	DueDate                  time.Time
	LatePaymentPenaltyRate   decimal.Decimal
	EarlyPaymentDiscountRate decimal.Decimal
}

// IsOverdue reports whether the invoice is past due at calendar-day
// granularity relative to the given date.
func (i PayableInvoice) IsOverdue(today time.Time) bool {
	return truncateToDay(i.DueDate).Before(truncateToDay(today))
}

// OverdueDays returns the number of whole days past due, 0 if not overdue
func (i PayableInvoice) OverdueDays(today time.Time) int {
	days := daysBetween(i.DueDate, today)
	if days < 0 {
		return 0
	}
	return days
}

// DaysUntilDue returns the number of whole days until the due date,
// negative when overdue.
func (i PayableInvoice) DaysUntilDue(today time.Time) int {
	return daysBetween(today, i.DueDate)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from a to b
func daysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}
