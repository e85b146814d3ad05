package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/finops/backend/internal/application/payments"
	"github.com/finops/backend/internal/domain/finance"
)

// GormTransactionScope implements payments.TransactionScope using GORM
// transactions. Every repository handed to the callback is bound to the
// same transaction, so all writes commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos payments.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) InvoiceRepo() finance.SupplierInvoiceRepository {
	return NewGormSupplierInvoiceRepository(r.tx)
}

func (r *gormTransactionalRepositories) AccountRepo() finance.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r *gormTransactionalRepositories) PaymentRepo() finance.SupplierPaymentRepository {
	return NewGormSupplierPaymentRepository(r.tx)
}

func (r *gormTransactionalRepositories) LedgerRepo() finance.LedgerTransactionRepository {
	return NewGormLedgerTransactionRepository(r.tx)
}

func (r *gormTransactionalRepositories) ScenarioRepo() finance.PaymentScenarioRepository {
	return NewGormPaymentScenarioRepository(r.tx)
}

var _ payments.TransactionScope = (*GormTransactionScope)(nil)
