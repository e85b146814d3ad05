package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
)

// payableStatuses are the stored statuses an invoice can be selected for
// payment in. OVERDUE is a derived label, never stored.
var payableStatuses = []finance.InvoiceStatus{
	finance.InvoiceStatusPending,
	finance.InvoiceStatusScheduled,
	finance.InvoiceStatusPartial,
}

// GormSupplierInvoiceRepository implements SupplierInvoiceRepository using GORM
type GormSupplierInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSupplierInvoiceRepository creates a new GormSupplierInvoiceRepository
func NewGormSupplierInvoiceRepository(db *gorm.DB) *GormSupplierInvoiceRepository {
	return &GormSupplierInvoiceRepository{db: db}
}

// Save creates a new supplier invoice
func (r *GormSupplierInvoiceRepository) Save(ctx context.Context, invoice *finance.SupplierInvoice) error {
	return translateError(r.db.WithContext(ctx).Create(invoice).Error)
}

// Update persists changes to an existing supplier invoice
func (r *GormSupplierInvoiceRepository) Update(ctx context.Context, invoice *finance.SupplierInvoice) error {
	invoice.IncrementVersion()
	return translateError(r.db.WithContext(ctx).Save(invoice).Error)
}

// FindByIDForTenant finds a supplier invoice by ID within a tenant
func (r *GormSupplierInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.SupplierInvoice, error) {
	var invoice finance.SupplierInvoice
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByIDsForTenant finds multiple invoices by their IDs within a tenant.
// IDs belonging to other tenants are absent from the result, never an error.
func (r *GormSupplierInvoiceRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*finance.SupplierInvoice, error) {
	if len(ids) == 0 {
		return []*finance.SupplierInvoice{}, nil
	}

	var invoices []*finance.SupplierInvoice
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindPayableForTenant finds all invoices of a tenant that can still be paid
func (r *GormSupplierInvoiceRepository) FindPayableForTenant(ctx context.Context, tenantID uuid.UUID) ([]*finance.SupplierInvoice, error) {
	var invoices []*finance.SupplierInvoice
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ?", tenantID, payableStatuses).
		Order("due_date ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListForTenant lists supplier invoices for a tenant with pagination
func (r *GormSupplierInvoiceRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*finance.SupplierInvoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&finance.SupplierInvoice{}).Where("tenant_id = ?", tenantID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []*finance.SupplierInvoice
	if err := applyFilter(query, filter).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

var _ finance.SupplierInvoiceRepository = (*GormSupplierInvoiceRepository)(nil)
