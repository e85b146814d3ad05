package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
)

// GormLedgerTransactionRepository implements LedgerTransactionRepository using GORM
type GormLedgerTransactionRepository struct {
	db *gorm.DB
}

// NewGormLedgerTransactionRepository creates a new GormLedgerTransactionRepository
func NewGormLedgerTransactionRepository(db *gorm.DB) *GormLedgerTransactionRepository {
	return &GormLedgerTransactionRepository{db: db}
}

// Save appends a new ledger transaction. Ledger entries are never updated.
func (r *GormLedgerTransactionRepository) Save(ctx context.Context, tx *finance.LedgerTransaction) error {
	return translateError(r.db.WithContext(ctx).Create(tx).Error)
}

// ListForAccount lists ledger transactions of one account with pagination
func (r *GormLedgerTransactionRepository) ListForAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter shared.Filter) ([]*finance.LedgerTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&finance.LedgerTransaction{}).
		Where("tenant_id = ? AND account_id = ?", tenantID, accountID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []*finance.LedgerTransaction
	if err := applyFilter(query, filter).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

var _ finance.LedgerTransactionRepository = (*GormLedgerTransactionRepository)(nil)
