package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/partner"
	"github.com/finops/backend/internal/domain/shared"
)

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*partner.Supplier, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*partner.Supplier), args.Get(1).(int64), args.Error(2)
}

// MockSupplierInvoiceRepository is a mock implementation of finance.SupplierInvoiceRepository
type MockSupplierInvoiceRepository struct {
	mock.Mock
}

func (m *MockSupplierInvoiceRepository) Save(ctx context.Context, invoice *finance.SupplierInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockSupplierInvoiceRepository) Update(ctx context.Context, invoice *finance.SupplierInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockSupplierInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.SupplierInvoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.SupplierInvoice), args.Error(1)
}

func (m *MockSupplierInvoiceRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*finance.SupplierInvoice, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.SupplierInvoice), args.Error(1)
}

func (m *MockSupplierInvoiceRepository) FindPayableForTenant(ctx context.Context, tenantID uuid.UUID) ([]*finance.SupplierInvoice, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.SupplierInvoice), args.Error(1)
}

func (m *MockSupplierInvoiceRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*finance.SupplierInvoice, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*finance.SupplierInvoice), args.Get(1).(int64), args.Error(2)
}

// MockAccountRepository is a mock implementation of finance.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(ctx context.Context, account *finance.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *finance.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Account, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Account), args.Error(1)
}

func (m *MockAccountRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]*finance.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.Account), args.Error(1)
}

// MockSupplierPaymentRepository is a mock implementation of finance.SupplierPaymentRepository
type MockSupplierPaymentRepository struct {
	mock.Mock
}

func (m *MockSupplierPaymentRepository) Save(ctx context.Context, payment *finance.SupplierPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockSupplierPaymentRepository) FindByInvoiceForTenant(ctx context.Context, tenantID, invoiceID uuid.UUID) (*finance.SupplierPayment, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.SupplierPayment), args.Error(1)
}

func (m *MockSupplierPaymentRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*finance.SupplierPayment, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*finance.SupplierPayment), args.Get(1).(int64), args.Error(2)
}

// MockLedgerTransactionRepository is a mock implementation of finance.LedgerTransactionRepository
type MockLedgerTransactionRepository struct {
	mock.Mock
}

func (m *MockLedgerTransactionRepository) Save(ctx context.Context, tx *finance.LedgerTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerTransactionRepository) ListForAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter shared.Filter) ([]*finance.LedgerTransaction, int64, error) {
	args := m.Called(ctx, tenantID, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*finance.LedgerTransaction), args.Get(1).(int64), args.Error(2)
}

// MockPaymentScenarioRepository is a mock implementation of finance.PaymentScenarioRepository
type MockPaymentScenarioRepository struct {
	mock.Mock
}

func (m *MockPaymentScenarioRepository) Save(ctx context.Context, scenario *finance.PaymentScenario) error {
	args := m.Called(ctx, scenario)
	return args.Error(0)
}

func (m *MockPaymentScenarioRepository) Update(ctx context.Context, scenario *finance.PaymentScenario) error {
	args := m.Called(ctx, scenario)
	return args.Error(0)
}

func (m *MockPaymentScenarioRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.PaymentScenario, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PaymentScenario), args.Error(1)
}

func (m *MockPaymentScenarioRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) (*finance.PaymentScenario, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PaymentScenario), args.Error(1)
}

func (m *MockPaymentScenarioRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*finance.PaymentScenario, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*finance.PaymentScenario), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentScenarioRepository) DeactivateAllForTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
