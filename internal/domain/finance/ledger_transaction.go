package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/domain/shared"
)

// LedgerTransactionType classifies ledger entries
type LedgerTransactionType string

const (
	LedgerTypeSupplierPayment LedgerTransactionType = "SUPPLIER_PAYMENT"
	LedgerTypeDeposit         LedgerTransactionType = "DEPOSIT"
	LedgerTypeAdjustment      LedgerTransactionType = "ADJUSTMENT"
)

// LedgerTransaction is an immutable record of money movement on an account
type LedgerTransaction struct {
	shared.TenantAggregateRoot
	AccountID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Type        LedgerTransactionType `gorm:"size:30;not null"`
	Amount      decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	ReferenceID uuid.UUID             `gorm:"type:uuid;index"`
	Description string                `gorm:"size:500"`
	OccurredAt  time.Time             `gorm:"not null;index"`
}

// TableName specifies the database table name
func (LedgerTransaction) TableName() string {
	return "ledger_transactions"
}

// NewLedgerTransaction creates a new ledger transaction. Debits carry a
// negative amount, credits a positive one.
func NewLedgerTransaction(tenantID, accountID uuid.UUID, txType LedgerTransactionType, amount decimal.Decimal, referenceID uuid.UUID, description string) (*LedgerTransaction, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account ID is required")
	}
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transaction amount cannot be zero")
	}

	return &LedgerTransaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AccountID:           accountID,
		Type:                txType,
		Amount:              amount,
		ReferenceID:         referenceID,
		Description:         description,
		OccurredAt:          time.Now(),
	}, nil
}

// LedgerTransactionRepository defines the persistence interface for ledger transactions
type LedgerTransactionRepository interface {
	Save(ctx context.Context, tx *LedgerTransaction) error
	ListForAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter shared.Filter) ([]*LedgerTransaction, int64, error)
}
