// Package tenant provides multi-tenant database scoping for GORM.
//
// It applies WHERE tenant_id = ? conditions so cross-tenant data access
// cannot happen at the repository layer.
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finops/backend/internal/infrastructure/logger"
)

// ErrTenantIDRequired is returned when tenant_id is required but not found
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// ErrInvalidTenantID is returned when tenant_id format is invalid
var ErrInvalidTenantID = errors.New("invalid tenant_id format")

// Scope applies tenant filtering to GORM queries
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// ScopeString applies tenant filtering using a string tenant ID
func ScopeString(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// DB wraps a GORM DB with automatic tenant scoping
type DB struct {
	db       *gorm.DB
	required bool
}

// NewDB creates a new tenant-scoped DB wrapper. Tenant ids are mandatory
// unless disabled with SetRequired.
func NewDB(db *gorm.DB) *DB {
	return &DB{db: db, required: true}
}

// Unscoped returns the underlying GORM DB without tenant scoping.
// Use only for system-level operations or migrations.
func (t *DB) Unscoped() *gorm.DB {
	return t.db
}

// WithContext returns a GORM DB scoped to the tenant carried in the context
// by the tenant middleware. If no tenant id is present and one is required,
// the returned DB errors on any operation.
func (t *DB) WithContext(ctx context.Context) *gorm.DB {
	tenantID := logger.GetTenantID(ctx)

	if tenantID == "" {
		db := t.db.WithContext(ctx)
		if t.required {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return db
	}

	if _, err := uuid.Parse(tenantID); err != nil {
		db := t.db.WithContext(ctx)
		_ = db.AddError(ErrInvalidTenantID)
		return db
	}

	return t.db.WithContext(ctx).Scopes(ScopeString(tenantID))
}

// ForTenant returns a GORM DB scoped to the given tenant id
func (t *DB) ForTenant(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	if tenantID == uuid.Nil {
		db := t.db.WithContext(ctx)
		_ = db.AddError(ErrTenantIDRequired)
		return db
	}
	return t.db.WithContext(ctx).Scopes(Scope(tenantID))
}

// SetRequired changes whether a tenant id is mandatory
func (t *DB) SetRequired(required bool) *DB {
	return &DB{db: t.db, required: required}
}
