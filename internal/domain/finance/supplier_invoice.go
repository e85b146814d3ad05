package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/domain/shared"
)

// InvoiceStatus represents the lifecycle state of a supplier invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusScheduled InvoiceStatus = "SCHEDULED"
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the invoice status is valid
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusScheduled, InvoiceStatusPartial,
		InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	default:
		return false
	}
}

// SupplierInvoice represents an amount owed to a supplier
type SupplierInvoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber string          `gorm:"size:100;not null;uniqueIndex:idx_supplier_invoices_tenant_number"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency      string          `gorm:"size:3;not null;default:'USD'"`
	IssueDate     time.Time       `gorm:"not null"`
	DueDate       time.Time       `gorm:"not null;index"`
	Status        InvoiceStatus   `gorm:"size:20;not null;default:'PENDING';index"`
	Description   string          `gorm:"size:500"`
}

// TableName specifies the database table name
func (SupplierInvoice) TableName() string {
	return "supplier_invoices"
}

// NewSupplierInvoice creates a new supplier invoice
func NewSupplierInvoice(tenantID, supplierID uuid.UUID, invoiceNumber string, amount decimal.Decimal, issueDate, dueDate time.Time) (*SupplierInvoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice number is required")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice amount must be positive")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Due date cannot be before issue date")
	}

	return &SupplierInvoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		SupplierID:          supplierID,
		Amount:              amount,
		PaidAmount:          decimal.Zero,
		Currency:            "USD",
		IssueDate:           issueDate,
		DueDate:             dueDate,
		Status:              InvoiceStatusPending,
	}, nil
}

// RemainingAmount returns the unpaid portion of the invoice
func (i *SupplierInvoice) RemainingAmount() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// IsPayable reports whether the invoice can still be selected for payment
func (i *SupplierInvoice) IsPayable() bool {
	switch i.Status {
	case InvoiceStatusPending, InvoiceStatusScheduled, InvoiceStatusPartial:
		return i.RemainingAmount().IsPositive()
	default:
		return false
	}
}

// IsOverdue reports whether the invoice due date has passed relative to
// the given reference date. Comparison is at calendar-day granularity.
func (i *SupplierInvoice) IsOverdue(today time.Time) bool {
	return truncateToDay(i.DueDate).Before(truncateToDay(today))
}

// OverdueDays returns the number of whole days the invoice is past due.
// Returns 0 when the invoice is not overdue.
func (i *SupplierInvoice) OverdueDays(today time.Time) int {
	days := int(truncateToDay(today).Sub(truncateToDay(i.DueDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DaysUntilDue returns the number of whole days until the due date.
// Negative values indicate the invoice is overdue.
func (i *SupplierInvoice) DaysUntilDue(today time.Time) int {
	return int(truncateToDay(i.DueDate).Sub(truncateToDay(today)).Hours() / 24)
}

// MarkScheduled transitions the invoice into the scheduled state
func (i *SupplierInvoice) MarkScheduled() error {
	if i.Status != InvoiceStatusPending && i.Status != InvoiceStatusScheduled {
		return shared.NewDomainError("INVALID_STATE", "Only pending invoices can be scheduled")
	}
	i.Status = InvoiceStatusScheduled
	return nil
}

// ApplyPayment records a payment against the invoice
func (i *SupplierInvoice) ApplyPayment(amount decimal.Decimal) error {
	if !i.IsPayable() {
		return shared.NewDomainError("INVALID_STATE", "Invoice is not payable")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	if amount.GreaterThan(i.RemainingAmount()) {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount exceeds remaining balance")
	}
	i.PaidAmount = i.PaidAmount.Add(amount)
	if i.PaidAmount.Equal(i.Amount) {
		i.Status = InvoiceStatusPaid
	} else {
		i.Status = InvoiceStatusPartial
	}
	return nil
}

// Cancel marks the invoice as cancelled
func (i *SupplierInvoice) Cancel() error {
	if i.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be cancelled")
	}
	i.Status = InvoiceStatusCancelled
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SupplierInvoiceRepository defines the persistence interface for supplier invoices
type SupplierInvoiceRepository interface {
	Save(ctx context.Context, invoice *SupplierInvoice) error
	Update(ctx context.Context, invoice *SupplierInvoice) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*SupplierInvoice, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*SupplierInvoice, error)
	FindPayableForTenant(ctx context.Context, tenantID uuid.UUID) ([]*SupplierInvoice, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*SupplierInvoice, int64, error)
}
