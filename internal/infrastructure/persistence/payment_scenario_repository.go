package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
)

// GormPaymentScenarioRepository implements PaymentScenarioRepository using GORM
type GormPaymentScenarioRepository struct {
	db *gorm.DB
}

// NewGormPaymentScenarioRepository creates a new GormPaymentScenarioRepository
func NewGormPaymentScenarioRepository(db *gorm.DB) *GormPaymentScenarioRepository {
	return &GormPaymentScenarioRepository{db: db}
}

// Save creates a new payment scenario
func (r *GormPaymentScenarioRepository) Save(ctx context.Context, scenario *finance.PaymentScenario) error {
	return translateError(r.db.WithContext(ctx).Create(scenario).Error)
}

// Update persists changes to an existing payment scenario
func (r *GormPaymentScenarioRepository) Update(ctx context.Context, scenario *finance.PaymentScenario) error {
	scenario.IncrementVersion()
	return translateError(r.db.WithContext(ctx).Save(scenario).Error)
}

// FindByIDForTenant finds a payment scenario by ID within a tenant
func (r *GormPaymentScenarioRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.PaymentScenario, error) {
	var scenario finance.PaymentScenario
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&scenario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &scenario, nil
}

// FindActiveForTenant finds the tenant's currently active scenario
func (r *GormPaymentScenarioRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) (*finance.PaymentScenario, error) {
	var scenario finance.PaymentScenario
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		First(&scenario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &scenario, nil
}

// ListForTenant lists payment scenarios for a tenant with pagination
func (r *GormPaymentScenarioRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*finance.PaymentScenario, int64, error) {
	query := r.db.WithContext(ctx).Model(&finance.PaymentScenario{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var scenarios []*finance.PaymentScenario
	if err := applyFilter(query, filter).Find(&scenarios).Error; err != nil {
		return nil, 0, err
	}
	return scenarios, total, nil
}

// DeactivateAllForTenant clears the active flag on all scenarios of a tenant
func (r *GormPaymentScenarioRepository) DeactivateAllForTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&finance.PaymentScenario{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Update("is_active", false).Error
}

var _ finance.PaymentScenarioRepository = (*GormPaymentScenarioRepository)(nil)
