package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/finops/backend/internal/domain/planning"
	"github.com/finops/backend/internal/domain/shared"
)

// PaymentScenario is a saved what-if payment planning configuration.
// At most one scenario per tenant may be active at a time.
type PaymentScenario struct {
	shared.TenantAggregateRoot
	Name              string                         `gorm:"size:255;not null"`
	Description       string                         `gorm:"size:1000"`
	Strategy          planning.Strategy              `gorm:"size:30;not null"`
	TargetCashReserve decimal.Decimal                `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount       decimal.Decimal                `gorm:"type:decimal(18,2);not null;default:0"`
	StartDate         *time.Time                     `gorm:""`
	EndDate           *time.Time                     `gorm:""`
	InvoiceRefs       datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb"`
	IsActive          bool                           `gorm:"not null;default:false;index"`
	AppliedAt         *time.Time                     `gorm:""`
}

// TableName specifies the database table name
func (PaymentScenario) TableName() string {
	return "payment_scenarios"
}

// NewPaymentScenario creates a new inactive payment scenario.
// invoiceIDs must already be filtered to tenant-owned invoices and
// totalAmount must be the sum of those invoices' amounts.
func NewPaymentScenario(tenantID uuid.UUID, name, description string, strategy planning.Strategy, targetCashReserve decimal.Decimal, invoiceIDs []uuid.UUID, totalAmount decimal.Decimal) (*PaymentScenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Scenario name is required")
	}
	if !strategy.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown planning strategy: "+strategy.String())
	}
	if targetCashReserve.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Target cash reserve cannot be negative")
	}

	return &PaymentScenario{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Description:         strings.TrimSpace(description),
		Strategy:            strategy,
		TargetCashReserve:   targetCashReserve,
		TotalAmount:         totalAmount,
		InvoiceRefs:         datatypes.NewJSONSlice(invoiceIDs),
		IsActive:            false,
	}, nil
}

// SetPeriod sets the optional planning window
func (s *PaymentScenario) SetPeriod(startDate, endDate *time.Time) error {
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return shared.NewDomainError("INVALID_INPUT", "End date cannot be before start date")
	}
	s.StartDate = startDate
	s.EndDate = endDate
	return nil
}

// Activate marks the scenario as the tenant's active plan
func (s *PaymentScenario) Activate(now time.Time) {
	s.IsActive = true
	s.AppliedAt = &now
}

// Deactivate clears the active flag
func (s *PaymentScenario) Deactivate() {
	s.IsActive = false
}

// PaymentScenarioRepository defines the persistence interface for payment scenarios
type PaymentScenarioRepository interface {
	Save(ctx context.Context, scenario *PaymentScenario) error
	Update(ctx context.Context, scenario *PaymentScenario) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PaymentScenario, error)
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) (*PaymentScenario, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*PaymentScenario, int64, error)
	DeactivateAllForTenant(ctx context.Context, tenantID uuid.UUID) error
}
