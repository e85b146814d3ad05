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

// ScenarioService manages persisted payment scenarios
type ScenarioService struct {
	scenarioRepo finance.PaymentScenarioRepository
	invoiceRepo  finance.SupplierInvoiceRepository
	txScope      TransactionScope
	now          func() time.Time
}

// NewScenarioService creates a new ScenarioService
func NewScenarioService(scenarioRepo finance.PaymentScenarioRepository, invoiceRepo finance.SupplierInvoiceRepository, txScope TransactionScope) *ScenarioService {
	return &ScenarioService{
		scenarioRepo: scenarioRepo,
		invoiceRepo:  invoiceRepo,
		txScope:      txScope,
		now:          time.Now,
	}
}

// CreateScenarioRequest describes a scenario to persist
type CreateScenarioRequest struct {
	Name              string
	Description       string
	Strategy          planning.Strategy
	TargetCashReserve decimal.Decimal
	InvoiceIDs        []uuid.UUID
	StartDate         *time.Time
	EndDate           *time.Time
}

// CreateScenario validates and persists a new inactive scenario.
// Requested invoice ids belonging to another tenant are dropped silently;
// the stored refs and total amount cover only the tenant's own invoices.
func (s *ScenarioService) CreateScenario(ctx context.Context, tenantID uuid.UUID, req CreateScenarioRequest) (*finance.PaymentScenario, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "scenario", "create")
	defer span.End()

	if len(req.InvoiceIDs) == 0 {
		err := shared.NewDomainError("INVALID_INPUT", "Scenario must reference at least one invoice")
		telemetry.RecordError(span, err)
		return nil, err
	}

	owned, err := s.invoiceRepo.FindByIDsForTenant(ctx, tenantID, req.InvoiceIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	ownedIDs := make([]uuid.UUID, 0, len(owned))
	totalAmount := decimal.Zero
	for _, inv := range owned {
		ownedIDs = append(ownedIDs, inv.ID)
		totalAmount = totalAmount.Add(inv.Amount)
	}

	scenario, err := finance.NewPaymentScenario(tenantID, req.Name, req.Description, req.Strategy, req.TargetCashReserve, ownedIDs, totalAmount)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := scenario.SetPeriod(req.StartDate, req.EndDate); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.scenarioRepo.Save(ctx, scenario); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save scenario: %w", err)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrScenarioID, scenario.ID.String())
	return scenario, nil
}

// ListScenarios returns the tenant's scenarios
func (s *ScenarioService) ListScenarios(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*finance.PaymentScenario, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "scenario", "list")
	defer span.End()

	scenarios, total, err := s.scenarioRepo.ListForTenant(ctx, tenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to list scenarios: %w", err)
	}
	return scenarios, total, nil
}

// GetActiveScenario returns the tenant's currently active scenario
func (s *ScenarioService) GetActiveScenario(ctx context.Context, tenantID uuid.UUID) (*finance.PaymentScenario, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "scenario", "get_active")
	defer span.End()

	scenario, err := s.scenarioRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return scenario, nil
}

// ActivateScenario marks the scenario as the tenant's single active plan.
// Any previously active scenario of the tenant is deactivated in the same
// transaction, so exactly one scenario is active afterwards.
func (s *ScenarioService) ActivateScenario(ctx context.Context, tenantID, scenarioID uuid.UUID) (*finance.PaymentScenario, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "scenario", "activate")
	defer span.End()

	telemetry.SetAttributes(span, telemetry.SpanAttrScenarioID, scenarioID.String())

	var activated *finance.PaymentScenario
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		scenario, err := repos.ScenarioRepo().FindByIDForTenant(ctx, tenantID, scenarioID)
		if err != nil {
			return err
		}
		if err := repos.ScenarioRepo().DeactivateAllForTenant(ctx, tenantID); err != nil {
			return fmt.Errorf("failed to deactivate scenarios: %w", err)
		}
		scenario.Activate(s.now())
		if err := repos.ScenarioRepo().Update(ctx, scenario); err != nil {
			return fmt.Errorf("failed to activate scenario: %w", err)
		}
		activated = scenario
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return activated, nil
}
