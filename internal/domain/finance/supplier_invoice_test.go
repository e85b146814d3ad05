package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finops/backend/internal/domain/shared"
)

func newTestInvoice(t *testing.T, amount string, dueDate time.Time) *SupplierInvoice {
	t.Helper()
	inv, err := NewSupplierInvoice(
		uuid.New(), uuid.New(), "INV-100",
		decimal.RequireFromString(amount),
		dueDate.AddDate(0, -1, 0), dueDate,
	)
	require.NoError(t, err)
	return inv
}

func TestNewSupplierInvoiceValidation(t *testing.T) {
	tenantID := uuid.New()
	supplierID := uuid.New()
	issue := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 1, 0)

	_, err := NewSupplierInvoice(tenantID, supplierID, "", decimal.NewFromInt(100), issue, due)
	assert.Error(t, err)

	_, err = NewSupplierInvoice(tenantID, supplierID, "INV-1", decimal.Zero, issue, due)
	assert.Error(t, err)

	_, err = NewSupplierInvoice(tenantID, supplierID, "INV-1", decimal.NewFromInt(100), due, issue)
	assert.Error(t, err)
}

func TestOverdueDayMathIgnoresTimeOfDay(t *testing.T) {
	due := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	inv := newTestInvoice(t, "100", due)

	// Later the same calendar day is not overdue yet
	sameDay := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	assert.False(t, inv.IsOverdue(sameDay))
	assert.Equal(t, 0, inv.OverdueDays(sameDay))

	// Early next morning counts as one full day
	nextMorning := time.Date(2025, 6, 11, 0, 30, 0, 0, time.UTC)
	assert.True(t, inv.IsOverdue(nextMorning))
	assert.Equal(t, 1, inv.OverdueDays(nextMorning))

	fiveLater := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, inv.OverdueDays(fiveLater))
	assert.Equal(t, -5, inv.DaysUntilDue(fiveLater))
}

func TestApplyPaymentTransitions(t *testing.T) {
	inv := newTestInvoice(t, "1000", time.Now().AddDate(0, 0, 10))

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(300)))
	assert.Equal(t, InvoiceStatusPartial, inv.Status)
	assert.True(t, inv.RemainingAmount().Equal(decimal.NewFromInt(700)))
	assert.True(t, inv.IsPayable())

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(700)))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.RemainingAmount().IsZero())
	assert.False(t, inv.IsPayable())

	// A settled invoice takes no further payments
	err := inv.ApplyPayment(decimal.NewFromInt(1))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
}

func TestApplyPaymentRejectsOverpayment(t *testing.T) {
	inv := newTestInvoice(t, "500", time.Now().AddDate(0, 0, 10))

	err := inv.ApplyPayment(decimal.NewFromInt(600))
	assert.Error(t, err)
	assert.Equal(t, InvoiceStatusPending, inv.Status)
}

func TestCancelPaidInvoiceFails(t *testing.T) {
	inv := newTestInvoice(t, "100", time.Now().AddDate(0, 0, 10))
	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100)))

	assert.Error(t, inv.Cancel())

	open := newTestInvoice(t, "100", time.Now().AddDate(0, 0, 10))
	require.NoError(t, open.Cancel())
	assert.Equal(t, InvoiceStatusCancelled, open.Status)
	assert.False(t, open.IsPayable())
}
