package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/domain/shared"
)

// SupplierPayment records a completed payment against a supplier invoice.
// At most one payment may exist per invoice, enforced by a unique index.
type SupplierPayment struct {
	shared.TenantAggregateRoot
	SupplierInvoiceID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_payments_invoice"`
	SupplierID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	LedgerTransactionID uuid.UUID       `gorm:"type:uuid;not null"`
	ScenarioID          *uuid.UUID      `gorm:"type:uuid;index"`
	Amount              decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAt              time.Time       `gorm:"not null"`
	Reference           string          `gorm:"size:100"`
}

// TableName specifies the database table name
func (SupplierPayment) TableName() string {
	return "supplier_payments"
}

// NewSupplierPayment creates a new supplier payment record
func NewSupplierPayment(tenantID, invoiceID, supplierID, accountID uuid.UUID, amount decimal.Decimal) (*SupplierPayment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice ID is required")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}

	return &SupplierPayment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SupplierInvoiceID:   invoiceID,
		SupplierID:          supplierID,
		AccountID:           accountID,
		Amount:              amount,
		PaidAt:              time.Now(),
	}, nil
}

// LinkLedgerTransaction records the ledger transaction backing this payment
func (p *SupplierPayment) LinkLedgerTransaction(txID uuid.UUID) {
	p.LedgerTransactionID = txID
}

// AttachScenario links the payment to the scenario it was executed from
func (p *SupplierPayment) AttachScenario(scenarioID uuid.UUID) {
	if scenarioID != uuid.Nil {
		p.ScenarioID = &scenarioID
	}
}

// SupplierPaymentRepository defines the persistence interface for supplier payments
type SupplierPaymentRepository interface {
	Save(ctx context.Context, payment *SupplierPayment) error
	FindByInvoiceForTenant(ctx context.Context, tenantID, invoiceID uuid.UUID) (*SupplierPayment, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*SupplierPayment, int64, error)
}
