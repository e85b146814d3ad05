package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/planning"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/finops/backend/internal/infrastructure/telemetry"
)

// OptimizerService builds payment plans. It is read-only: every call is an
// independent in-memory computation over one bounded datastore read.
type OptimizerService struct {
	selector    *InvoiceSelector
	accountRepo finance.AccountRepository
	now         func() time.Time
}

// NewOptimizerService creates a new OptimizerService
func NewOptimizerService(selector *InvoiceSelector, accountRepo finance.AccountRepository) *OptimizerService {
	return &OptimizerService{
		selector:    selector,
		accountRepo: accountRepo,
		now:         time.Now,
	}
}

// OptimizeRequest describes one planning run
type OptimizeRequest struct {
	Strategy          planning.Strategy
	TargetCashReserve decimal.Decimal
	MaxDailyAmount    *decimal.Decimal
	// AvailableCash overrides the default of summing the tenant's active
	// account balances when set.
	AvailableCash *decimal.Decimal
	// InvoiceIDs restricts planning to the given invoices. Foreign ids are
	// excluded silently.
	InvoiceIDs []uuid.UUID
}

// Optimize selects the tenant's payable invoices, scores them under the
// requested strategy and allocates them within the cash constraints.
// Insufficient funds is a planning outcome, never an error.
func (s *OptimizerService) Optimize(ctx context.Context, tenantID uuid.UUID, req OptimizeRequest) (*planning.Plan, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "planning", "optimize")
	defer span.End()

	telemetry.SetAttributes(span, telemetry.SpanAttrStrategy, req.Strategy.String())

	if !req.Strategy.IsValid() {
		err := shared.NewDomainError("INVALID_INPUT", "Unknown planning strategy: "+req.Strategy.String())
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.TargetCashReserve.IsNegative() {
		err := shared.NewDomainError("INVALID_INPUT", "Target cash reserve cannot be negative")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.MaxDailyAmount != nil && !req.MaxDailyAmount.IsPositive() {
		err := shared.NewDomainError("INVALID_INPUT", "Max daily amount must be positive when set")
		telemetry.RecordError(span, err)
		return nil, err
	}

	invoices, err := s.selector.SelectPayable(ctx, tenantID, req.InvoiceIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	availableCash, err := s.availableCash(ctx, tenantID, req.AvailableCash)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	plan, err := planning.BuildPlan(req.Strategy, invoices, planning.Constraints{
		AvailableCash:     availableCash,
		TargetCashReserve: req.TargetCashReserve,
		MaxDailyAmount:    req.MaxDailyAmount,
	}, s.now())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceCount, plan.Metrics.TotalInvoices,
		telemetry.SpanAttrScheduledCount, plan.Metrics.ScheduledInvoices,
	)
	return plan, nil
}

// availableCash defaults to the sum of the tenant's active account balances
func (s *OptimizerService) availableCash(ctx context.Context, tenantID uuid.UUID, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		if override.IsNegative() {
			return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Available cash cannot be negative")
		}
		return *override, nil
	}

	accounts, err := s.accountRepo.ListForTenant(ctx, tenantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load accounts: %w", err)
	}
	total := decimal.Zero
	for _, acc := range accounts {
		if acc.Active {
			total = total.Add(acc.Balance)
		}
	}
	return total, nil
}
