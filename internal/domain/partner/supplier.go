package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/domain/shared"
)

// Importance classifies how critical a supplier relationship is when
// prioritizing payments.
type Importance string

const (
	ImportanceLow      Importance = "LOW"
	ImportanceNormal   Importance = "NORMAL"
	ImportanceHigh     Importance = "HIGH"
	ImportanceCritical Importance = "CRITICAL"
)

// IsValid checks if the importance level is valid
func (i Importance) IsValid() bool {
	switch i {
	case ImportanceLow, ImportanceNormal, ImportanceHigh, ImportanceCritical:
		return true
	default:
		return false
	}
}

// Weight returns the base priority weight contributed by this importance
// level when scoring invoices by supplier importance.
func (i Importance) Weight() int64 {
	switch i {
	case ImportanceCritical:
		return 500
	case ImportanceHigh:
		return 300
	case ImportanceNormal:
		return 100
	default:
		return 0
	}
}

// Supplier represents a vendor the company purchases from
type Supplier struct {
	shared.TenantAggregateRoot
	Code                     string          `gorm:"size:50;not null;uniqueIndex:idx_suppliers_tenant_code"`
	Name                     string          `gorm:"size:255;not null"`
	ContactEmail             string          `gorm:"size:255"`
	ContactPhone             string          `gorm:"size:50"`
	Importance               Importance      `gorm:"size:20;not null;default:'NORMAL'"`
	LatePaymentPenaltyRate   decimal.Decimal `gorm:"type:decimal(10,6);not null;default:0"`
	EarlyPaymentDiscountRate decimal.Decimal `gorm:"type:decimal(10,6);not null;default:0"`
	Active                   bool            `gorm:"not null;default:true"`
}

// TableName specifies the database table name
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier aggregate
func NewSupplier(tenantID uuid.UUID, code, name string, importance Importance) (*Supplier, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier code is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name is required")
	}
	if importance == "" {
		importance = ImportanceNormal
	}
	if !importance.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid supplier importance level")
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Importance:          importance,
		Active:              true,
	}, nil
}

// SetPaymentTerms sets the penalty and discount rates used by cash flow
// scoring. Rates are fractions per day, e.g. 0.001 for 0.1%.
func (s *Supplier) SetPaymentTerms(penaltyRate, discountRate decimal.Decimal) error {
	if penaltyRate.IsNegative() || discountRate.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Payment term rates cannot be negative")
	}
	s.LatePaymentPenaltyRate = penaltyRate
	s.EarlyPaymentDiscountRate = discountRate
	return nil
}

// Deactivate marks the supplier as inactive
func (s *Supplier) Deactivate() {
	s.Active = false
}

// SupplierRepository defines the persistence interface for suppliers
type SupplierRepository interface {
	Save(ctx context.Context, supplier *Supplier) error
	Update(ctx context.Context, supplier *Supplier) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Supplier, error)
	FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*Supplier, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Supplier, int64, error)
}
