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
	"github.com/finops/backend/internal/domain/partner"
	"github.com/finops/backend/internal/domain/planning"
	"github.com/finops/backend/internal/domain/shared"
)

func makeSupplier(t *testing.T, tenantID uuid.UUID, code string, importance partner.Importance) *partner.Supplier {
	t.Helper()
	sup, err := partner.NewSupplier(tenantID, code, "Supplier "+code, importance)
	require.NoError(t, err)
	return sup
}

func invoiceFor(t *testing.T, sup *partner.Supplier, number, amount string, dueInDays int) *finance.SupplierInvoice {
	t.Helper()
	inv, err := finance.NewSupplierInvoice(
		sup.TenantID, sup.ID, number,
		decimal.RequireFromString(amount),
		time.Now().AddDate(0, 0, -5), time.Now().AddDate(0, 0, dueInDays),
	)
	require.NoError(t, err)
	return inv
}

func TestSelectPayableJoinsSupplierTerms(t *testing.T) {
	tenantID := uuid.New()
	invoiceRepo := new(MockSupplierInvoiceRepository)
	supplierRepo := new(MockSupplierRepository)
	selector := NewInvoiceSelector(invoiceRepo, supplierRepo)

	sup := makeSupplier(t, tenantID, "SUP-01", partner.ImportanceCritical)
	require.NoError(t, sup.SetPaymentTerms(decimal.RequireFromString("0.015"), decimal.RequireFromString("0.02")))
	open := invoiceFor(t, sup, "INV-1", "1000", 10)
	settled := invoiceFor(t, sup, "INV-2", "400", 10)
	require.NoError(t, settled.ApplyPayment(decimal.NewFromInt(400)))

	invoiceRepo.On("FindPayableForTenant", mock.Anything, tenantID).
		Return([]*finance.SupplierInvoice{open, settled}, nil)
	supplierRepo.On("FindByIDsForTenant", mock.Anything, tenantID, []uuid.UUID{sup.ID}).
		Return([]*partner.Supplier{sup}, nil)

	result, err := selector.SelectPayable(context.Background(), tenantID, nil)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, open.ID, result[0].ID)
	assert.Equal(t, partner.ImportanceCritical, result[0].Importance)
	assert.True(t, result[0].LatePaymentPenaltyRate.Equal(decimal.RequireFromString("0.015")))
	assert.True(t, result[0].EarlyPaymentDiscountRate.Equal(decimal.RequireFromString("0.02")))
}

func TestSelectPayableUsesRemainingAmount(t *testing.T) {
	tenantID := uuid.New()
	invoiceRepo := new(MockSupplierInvoiceRepository)
	supplierRepo := new(MockSupplierRepository)
	selector := NewInvoiceSelector(invoiceRepo, supplierRepo)

	sup := makeSupplier(t, tenantID, "SUP-02", partner.ImportanceNormal)
	partial := invoiceFor(t, sup, "INV-3", "1000", 10)
	require.NoError(t, partial.ApplyPayment(decimal.NewFromInt(300)))

	invoiceRepo.On("FindByIDsForTenant", mock.Anything, tenantID, []uuid.UUID{partial.ID}).
		Return([]*finance.SupplierInvoice{partial}, nil)
	supplierRepo.On("FindByIDsForTenant", mock.Anything, tenantID, []uuid.UUID{sup.ID}).
		Return([]*partner.Supplier{sup}, nil)

	result, err := selector.SelectPayable(context.Background(), tenantID, []uuid.UUID{partial.ID})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].Amount.Equal(decimal.NewFromInt(700)))
}

func TestOptimizeDefaultsCashToActiveAccounts(t *testing.T) {
	tenantID := uuid.New()
	invoiceRepo := new(MockSupplierInvoiceRepository)
	supplierRepo := new(MockSupplierRepository)
	accountRepo := new(MockAccountRepository)
	svc := NewOptimizerService(NewInvoiceSelector(invoiceRepo, supplierRepo), accountRepo)

	sup := makeSupplier(t, tenantID, "SUP-03", partner.ImportanceHigh)
	inv := invoiceFor(t, sup, "INV-4", "3000", 7)

	invoiceRepo.On("FindPayableForTenant", mock.Anything, tenantID).
		Return([]*finance.SupplierInvoice{inv}, nil)
	supplierRepo.On("FindByIDsForTenant", mock.Anything, tenantID, []uuid.UUID{sup.ID}).
		Return([]*partner.Supplier{sup}, nil)

	operating := makeAccount(t, tenantID, "10000")
	dormant := makeAccount(t, tenantID, "5000")
	dormant.Deactivate()
	accountRepo.On("ListForTenant", mock.Anything, tenantID).
		Return([]*finance.Account{operating, dormant}, nil)

	plan, err := svc.Optimize(context.Background(), tenantID, OptimizeRequest{
		Strategy: planning.StrategyByDueDate,
	})

	require.NoError(t, err)
	// Inactive balances are not spendable
	assert.True(t, plan.AvailableCash.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 1, plan.Metrics.ScheduledInvoices)
	assert.Equal(t, 0, plan.Metrics.InsufficientFunds)
}

func TestOptimizeCashOverrideSkipsAccountRead(t *testing.T) {
	tenantID := uuid.New()
	invoiceRepo := new(MockSupplierInvoiceRepository)
	supplierRepo := new(MockSupplierRepository)
	accountRepo := new(MockAccountRepository)
	svc := NewOptimizerService(NewInvoiceSelector(invoiceRepo, supplierRepo), accountRepo)

	invoiceRepo.On("FindPayableForTenant", mock.Anything, tenantID).
		Return([]*finance.SupplierInvoice{}, nil)
	supplierRepo.On("FindByIDsForTenant", mock.Anything, tenantID, []uuid.UUID{}).
		Return([]*partner.Supplier{}, nil)

	override := decimal.NewFromInt(2500)
	plan, err := svc.Optimize(context.Background(), tenantID, OptimizeRequest{
		Strategy:      planning.StrategyOptimizeCashFlow,
		AvailableCash: &override,
	})

	require.NoError(t, err)
	assert.True(t, plan.AvailableCash.Equal(override))
	accountRepo.AssertNotCalled(t, "ListForTenant", mock.Anything, mock.Anything)
}

func TestOptimizeValidation(t *testing.T) {
	svc := NewOptimizerService(NewInvoiceSelector(new(MockSupplierInvoiceRepository), new(MockSupplierRepository)), new(MockAccountRepository))

	cases := []struct {
		name string
		req  OptimizeRequest
	}{
		{
			name: "unknown strategy",
			req:  OptimizeRequest{Strategy: planning.Strategy("BY_VIBES")},
		},
		{
			name: "negative reserve",
			req: OptimizeRequest{
				Strategy:          planning.StrategyByDueDate,
				TargetCashReserve: decimal.NewFromInt(-1),
			},
		},
		{
			name: "non-positive daily cap",
			req: OptimizeRequest{
				Strategy:       planning.StrategyByDueDate,
				MaxDailyAmount: decimalPtr(decimal.Zero),
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Optimize(context.Background(), uuid.New(), tc.req)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		})
	}
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
