package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Save creates a new account
func (r *GormAccountRepository) Save(ctx context.Context, account *finance.Account) error {
	return translateError(r.db.WithContext(ctx).Create(account).Error)
}

// Update persists changes to an existing account
func (r *GormAccountRepository) Update(ctx context.Context, account *finance.Account) error {
	account.IncrementVersion()
	return translateError(r.db.WithContext(ctx).Save(account).Error)
}

// FindByIDForTenant finds an account by ID within a tenant
func (r *GormAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Account, error) {
	var account finance.Account
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ListForTenant lists all accounts of a tenant
func (r *GormAccountRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]*finance.Account, error) {
	var accounts []*finance.Account
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("code ASC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

var _ finance.AccountRepository = (*GormAccountRepository)(nil)
