package payments

import (
	"context"

	"github.com/finops/backend/internal/domain/finance"
)

// TransactionScope provides transactional access to payment repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the finance repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// InvoiceRepo returns the supplier invoice repository scoped to the current transaction
	InvoiceRepo() finance.SupplierInvoiceRepository
	// AccountRepo returns the account repository scoped to the current transaction
	AccountRepo() finance.AccountRepository
	// PaymentRepo returns the supplier payment repository scoped to the current transaction
	PaymentRepo() finance.SupplierPaymentRepository
	// LedgerRepo returns the ledger transaction repository scoped to the current transaction
	LedgerRepo() finance.LedgerTransactionRepository
	// ScenarioRepo returns the payment scenario repository scoped to the current transaction
	ScenarioRepo() finance.PaymentScenarioRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where atomicity is not under test.
type NoOpTransactionScope struct {
	invoiceRepo  finance.SupplierInvoiceRepository
	accountRepo  finance.AccountRepository
	paymentRepo  finance.SupplierPaymentRepository
	ledgerRepo   finance.LedgerTransactionRepository
	scenarioRepo finance.PaymentScenarioRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	invoiceRepo finance.SupplierInvoiceRepository,
	accountRepo finance.AccountRepository,
	paymentRepo finance.SupplierPaymentRepository,
	ledgerRepo finance.LedgerTransactionRepository,
	scenarioRepo finance.PaymentScenarioRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:  invoiceRepo,
		accountRepo:  accountRepo,
		paymentRepo:  paymentRepo,
		ledgerRepo:   ledgerRepo,
		scenarioRepo: scenarioRepo,
	}
}

// Execute runs the function without transaction boundaries
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the supplier invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() finance.SupplierInvoiceRepository {
	return s.invoiceRepo
}

// AccountRepo returns the account repository
func (s *NoOpTransactionScope) AccountRepo() finance.AccountRepository {
	return s.accountRepo
}

// PaymentRepo returns the supplier payment repository
func (s *NoOpTransactionScope) PaymentRepo() finance.SupplierPaymentRepository {
	return s.paymentRepo
}

// LedgerRepo returns the ledger transaction repository
func (s *NoOpTransactionScope) LedgerRepo() finance.LedgerTransactionRepository {
	return s.ledgerRepo
}

// ScenarioRepo returns the payment scenario repository
func (s *NoOpTransactionScope) ScenarioRepo() finance.PaymentScenarioRepository {
	return s.scenarioRepo
}
