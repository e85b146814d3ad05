package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
)

// GormSupplierPaymentRepository implements SupplierPaymentRepository using GORM
type GormSupplierPaymentRepository struct {
	db *gorm.DB
}

// NewGormSupplierPaymentRepository creates a new GormSupplierPaymentRepository
func NewGormSupplierPaymentRepository(db *gorm.DB) *GormSupplierPaymentRepository {
	return &GormSupplierPaymentRepository{db: db}
}

// Save creates a new supplier payment. The unique index on the invoice id
// makes a concurrent duplicate fail with ErrAlreadyExists instead of
// writing a second payment.
func (r *GormSupplierPaymentRepository) Save(ctx context.Context, payment *finance.SupplierPayment) error {
	return translateError(r.db.WithContext(ctx).Create(payment).Error)
}

// FindByInvoiceForTenant finds the payment of an invoice within a tenant
func (r *GormSupplierPaymentRepository) FindByInvoiceForTenant(ctx context.Context, tenantID, invoiceID uuid.UUID) (*finance.SupplierPayment, error) {
	var payment finance.SupplierPayment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND supplier_invoice_id = ?", tenantID, invoiceID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// ListForTenant lists supplier payments for a tenant with pagination
func (r *GormSupplierPaymentRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*finance.SupplierPayment, int64, error) {
	query := r.db.WithContext(ctx).Model(&finance.SupplierPayment{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []*finance.SupplierPayment
	if err := applyFilter(query, filter).Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

var _ finance.SupplierPaymentRepository = (*GormSupplierPaymentRepository)(nil)
