package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finops/backend/internal/domain/partner"
	"github.com/finops/backend/internal/domain/shared"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// Save creates a new supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return translateError(r.db.WithContext(ctx).Create(supplier).Error)
}

// Update persists changes to an existing supplier
func (r *GormSupplierRepository) Update(ctx context.Context, supplier *partner.Supplier) error {
	supplier.IncrementVersion()
	return translateError(r.db.WithContext(ctx).Save(supplier).Error)
}

// FindByIDForTenant finds a supplier by ID within a tenant
func (r *GormSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByIDsForTenant finds multiple suppliers by their IDs within a tenant.
// IDs belonging to other tenants are absent from the result.
func (r *GormSupplierRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*partner.Supplier, error) {
	if len(ids) == 0 {
		return []*partner.Supplier{}, nil
	}

	var suppliers []*partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// FindByCodeForTenant finds a supplier by its code within a tenant
func (r *GormSupplierRepository) FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.TrimSpace(code)).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// ListForTenant lists suppliers for a tenant with pagination
func (r *GormSupplierRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*partner.Supplier, int64, error) {
	query := r.db.WithContext(ctx).Model(&partner.Supplier{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suppliers []*partner.Supplier
	if err := applyFilter(query, filter).Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
