package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/domain/shared"
)

// Account represents a cash account payments are drawn from
type Account struct {
	shared.TenantAggregateRoot
	Code     string          `gorm:"size:50;not null;uniqueIndex:idx_accounts_tenant_code"`
	Name     string          `gorm:"size:255;not null"`
	Currency string          `gorm:"size:3;not null;default:'USD'"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Active   bool            `gorm:"not null;default:true"`
}

// TableName specifies the database table name
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new account
func NewAccount(tenantID uuid.UUID, code, name string, initialBalance decimal.Decimal) (*Account, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account code is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Account name is required")
	}
	if initialBalance.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Initial balance cannot be negative")
	}

	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Currency:            "USD",
		Balance:             initialBalance,
		Active:              true,
	}, nil
}

// Debit withdraws funds from the account
func (a *Account) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Debit amount must be positive")
	}
	if a.Balance.LessThan(amount) {
		return shared.NewDomainError("INVALID_STATE", "Insufficient account balance")
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Credit deposits funds into the account
func (a *Account) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Credit amount must be positive")
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Deactivate excludes the account from available cash calculations
func (a *Account) Deactivate() {
	a.Active = false
}

// AccountRepository defines the persistence interface for accounts
type AccountRepository interface {
	Save(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Account, error)
}
