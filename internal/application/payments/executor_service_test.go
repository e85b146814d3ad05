package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
)

type executorFixture struct {
	invoiceRepo *MockSupplierInvoiceRepository
	accountRepo *MockAccountRepository
	paymentRepo *MockSupplierPaymentRepository
	ledgerRepo  *MockLedgerTransactionRepository
	service     *ExecutorService
}

func newExecutorFixture(store shared.IdempotencyStore) *executorFixture {
	f := &executorFixture{
		invoiceRepo: new(MockSupplierInvoiceRepository),
		accountRepo: new(MockAccountRepository),
		paymentRepo: new(MockSupplierPaymentRepository),
		ledgerRepo:  new(MockLedgerTransactionRepository),
	}
	txScope := NewNoOpTransactionScope(f.invoiceRepo, f.accountRepo, f.paymentRepo, f.ledgerRepo, new(MockPaymentScenarioRepository))
	f.service = NewExecutorService(txScope, store)
	return f
}

func makeInvoice(t *testing.T, tenantID uuid.UUID, amount string) *finance.SupplierInvoice {
	t.Helper()
	inv, err := finance.NewSupplierInvoice(
		tenantID, uuid.New(), "INV-1001",
		decimal.RequireFromString(amount),
		time.Now().AddDate(0, 0, -10), time.Now().AddDate(0, 0, 20),
	)
	require.NoError(t, err)
	return inv
}

func makeAccount(t *testing.T, tenantID uuid.UUID, balance string) *finance.Account {
	t.Helper()
	acc, err := finance.NewAccount(tenantID, "OP-01", "Operating", decimal.RequireFromString(balance))
	require.NoError(t, err)
	return acc
}

func TestExecutePaymentCommitsAllLegs(t *testing.T) {
	tenantID := uuid.New()
	invoice := makeInvoice(t, tenantID, "1000")
	account := makeAccount(t, tenantID, "5000")
	f := newExecutorFixture(nil)

	f.invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)
	f.accountRepo.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
	f.paymentRepo.On("FindByInvoiceForTenant", mock.Anything, tenantID, invoice.ID).Return(nil, shared.ErrNotFound)
	f.ledgerRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.LedgerTransaction")).Return(nil)
	f.paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.SupplierPayment")).Return(nil)
	f.accountRepo.On("Update", mock.Anything, account).Return(nil)
	f.invoiceRepo.On("Update", mock.Anything, invoice).Return(nil)

	paidAt := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	result, err := f.service.ExecutePayment(context.Background(), tenantID, ExecutePaymentRequest{
		InvoiceID:   invoice.ID,
		AccountID:   account.ID,
		PaymentDate: paidAt,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Payment.Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, invoice.ID, result.Payment.SupplierInvoiceID)
	assert.Equal(t, result.Transaction.ID, result.Payment.LedgerTransactionID)
	assert.Equal(t, "INV-1001", result.Payment.Reference)
	assert.Equal(t, paidAt, result.Payment.PaidAt)

	// Ledger entry is the negative mirror of the payment
	assert.True(t, result.Transaction.Amount.Equal(decimal.NewFromInt(-1000)))
	assert.Equal(t, invoice.ID, result.Transaction.ReferenceID)

	// Account debited and invoice settled in the same execution
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(4000)))
	assert.Equal(t, finance.InvoiceStatusPaid, invoice.Status)

	f.invoiceRepo.AssertExpectations(t)
	f.accountRepo.AssertExpectations(t)
	f.paymentRepo.AssertExpectations(t)
	f.ledgerRepo.AssertExpectations(t)
}

func TestExecutePaymentRejectsSecondExecution(t *testing.T) {
	tenantID := uuid.New()
	invoice := makeInvoice(t, tenantID, "1000")
	account := makeAccount(t, tenantID, "5000")
	f := newExecutorFixture(nil)

	existing, err := finance.NewSupplierPayment(tenantID, invoice.ID, invoice.SupplierID, account.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)

	f.invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)
	f.accountRepo.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
	f.paymentRepo.On("FindByInvoiceForTenant", mock.Anything, tenantID, invoice.ID).Return(existing, nil)

	_, err = f.service.ExecutePayment(context.Background(), tenantID, ExecutePaymentRequest{
		InvoiceID: invoice.ID,
		AccountID: account.ID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	f.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExecutePaymentForeignInvoiceNotFound(t *testing.T) {
	tenantA := uuid.New()
	invoiceID := uuid.New()
	accountID := uuid.New()
	f := newExecutorFixture(nil)

	// An invoice owned by another tenant is indistinguishable from a
	// missing one.
	f.invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantA, invoiceID).Return(nil, shared.ErrNotFound)

	_, err := f.service.ExecutePayment(context.Background(), tenantA, ExecutePaymentRequest{
		InvoiceID: invoiceID,
		AccountID: accountID,
	})

	require.ErrorIs(t, err, shared.ErrNotFound)
	f.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestExecutePaymentInsufficientBalance(t *testing.T) {
	tenantID := uuid.New()
	invoice := makeInvoice(t, tenantID, "1000")
	account := makeAccount(t, tenantID, "500")
	f := newExecutorFixture(nil)

	f.invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, invoice.ID).Return(invoice, nil)
	f.accountRepo.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
	f.paymentRepo.On("FindByInvoiceForTenant", mock.Anything, tenantID, invoice.ID).Return(nil, shared.ErrNotFound)

	_, err := f.service.ExecutePayment(context.Background(), tenantID, ExecutePaymentRequest{
		InvoiceID: invoice.ID,
		AccountID: account.ID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(500)))
	f.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExecutePaymentRequiresIDs(t *testing.T) {
	f := newExecutorFixture(nil)

	_, err := f.service.ExecutePayment(context.Background(), uuid.New(), ExecutePaymentRequest{})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestExecutePaymentIdempotencyKeyReplay(t *testing.T) {
	tenantID := uuid.New()
	store := new(MockIdempotencyStore)
	f := newExecutorFixture(store)

	store.On("MarkProcessed", mock.Anything, "payment:req-42", mock.Anything).Return(false, nil)

	_, err := f.service.ExecutePayment(context.Background(), tenantID, ExecutePaymentRequest{
		InvoiceID:      uuid.New(),
		AccountID:      uuid.New(),
		IdempotencyKey: "req-42",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	// The replay is rejected before any datastore work
	f.invoiceRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}
