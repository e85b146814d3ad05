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
	"github.com/finops/backend/internal/domain/planning"
	"github.com/finops/backend/internal/domain/shared"
)

func newScenarioService(scenarioRepo *MockPaymentScenarioRepository, invoiceRepo *MockSupplierInvoiceRepository) *ScenarioService {
	txScope := NewNoOpTransactionScope(invoiceRepo, new(MockAccountRepository), new(MockSupplierPaymentRepository), new(MockLedgerTransactionRepository), scenarioRepo)
	return NewScenarioService(scenarioRepo, invoiceRepo, txScope)
}

func TestCreateScenarioRequiresInvoices(t *testing.T) {
	scenarioRepo := new(MockPaymentScenarioRepository)
	invoiceRepo := new(MockSupplierInvoiceRepository)
	svc := newScenarioService(scenarioRepo, invoiceRepo)

	_, err := svc.CreateScenario(context.Background(), uuid.New(), CreateScenarioRequest{
		Name:     "Q3 plan",
		Strategy: planning.StrategyByDueDate,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	scenarioRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateScenarioDropsForeignInvoices(t *testing.T) {
	tenantID := uuid.New()
	scenarioRepo := new(MockPaymentScenarioRepository)
	invoiceRepo := new(MockSupplierInvoiceRepository)
	svc := newScenarioService(scenarioRepo, invoiceRepo)

	ownedA := makeInvoice(t, tenantID, "1200")
	ownedB := makeInvoice(t, tenantID, "800")
	foreignID := uuid.New()
	requested := []uuid.UUID{ownedA.ID, ownedB.ID, foreignID}

	// The foreign id simply comes back missing from the tenant-scoped read
	invoiceRepo.On("FindByIDsForTenant", mock.Anything, tenantID, requested).
		Return([]*finance.SupplierInvoice{ownedA, ownedB}, nil)
	scenarioRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.PaymentScenario")).Return(nil)

	scenario, err := svc.CreateScenario(context.Background(), tenantID, CreateScenarioRequest{
		Name:              "August run",
		Strategy:          planning.StrategyByImportance,
		TargetCashReserve: decimal.NewFromInt(5000),
		InvoiceIDs:        requested,
	})

	require.NoError(t, err)
	assert.Len(t, scenario.InvoiceRefs, 2)
	assert.NotContains(t, scenario.InvoiceRefs, foreignID)
	assert.True(t, scenario.TotalAmount.Equal(decimal.NewFromInt(2000)))
	assert.False(t, scenario.IsActive)
	assert.Nil(t, scenario.AppliedAt)
	scenarioRepo.AssertExpectations(t)
}

func TestCreateScenarioRejectsBlankName(t *testing.T) {
	tenantID := uuid.New()
	scenarioRepo := new(MockPaymentScenarioRepository)
	invoiceRepo := new(MockSupplierInvoiceRepository)
	svc := newScenarioService(scenarioRepo, invoiceRepo)

	owned := makeInvoice(t, tenantID, "100")
	invoiceRepo.On("FindByIDsForTenant", mock.Anything, tenantID, []uuid.UUID{owned.ID}).
		Return([]*finance.SupplierInvoice{owned}, nil)

	_, err := svc.CreateScenario(context.Background(), tenantID, CreateScenarioRequest{
		Name:       "   ",
		Strategy:   planning.StrategyByDueDate,
		InvoiceIDs: []uuid.UUID{owned.ID},
	})

	require.Error(t, err)
	scenarioRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestActivateScenarioDeactivatesOthersFirst(t *testing.T) {
	tenantID := uuid.New()
	scenarioRepo := new(MockPaymentScenarioRepository)
	invoiceRepo := new(MockSupplierInvoiceRepository)
	svc := newScenarioService(scenarioRepo, invoiceRepo)

	scenario, err := finance.NewPaymentScenario(tenantID, "Weekly", "", planning.StrategyByDueDate, decimal.Zero, []uuid.UUID{uuid.New()}, decimal.NewFromInt(500))
	require.NoError(t, err)

	scenarioRepo.On("FindByIDForTenant", mock.Anything, tenantID, scenario.ID).Return(scenario, nil)
	scenarioRepo.On("DeactivateAllForTenant", mock.Anything, tenantID).Return(nil)
	scenarioRepo.On("Update", mock.Anything, scenario).Return(nil)

	activated, err := svc.ActivateScenario(context.Background(), tenantID, scenario.ID)

	require.NoError(t, err)
	assert.True(t, activated.IsActive)
	require.NotNil(t, activated.AppliedAt)
	assert.WithinDuration(t, time.Now(), *activated.AppliedAt, 5*time.Second)
	scenarioRepo.AssertExpectations(t)
}

func TestActivateScenarioNotFound(t *testing.T) {
	tenantID := uuid.New()
	scenarioRepo := new(MockPaymentScenarioRepository)
	invoiceRepo := new(MockSupplierInvoiceRepository)
	svc := newScenarioService(scenarioRepo, invoiceRepo)

	scenarioID := uuid.New()
	scenarioRepo.On("FindByIDForTenant", mock.Anything, tenantID, scenarioID).Return(nil, shared.ErrNotFound)

	_, err := svc.ActivateScenario(context.Background(), tenantID, scenarioID)

	require.ErrorIs(t, err, shared.ErrNotFound)
	scenarioRepo.AssertNotCalled(t, "DeactivateAllForTenant", mock.Anything, mock.Anything)
	scenarioRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetActiveScenarioPropagatesNotFound(t *testing.T) {
	tenantID := uuid.New()
	scenarioRepo := new(MockPaymentScenarioRepository)
	invoiceRepo := new(MockSupplierInvoiceRepository)
	svc := newScenarioService(scenarioRepo, invoiceRepo)

	scenarioRepo.On("FindActiveForTenant", mock.Anything, tenantID).Return(nil, shared.ErrNotFound)

	_, err := svc.GetActiveScenario(context.Background(), tenantID)

	require.ErrorIs(t, err, shared.ErrNotFound)
}
