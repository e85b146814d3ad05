package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/partner"
	"github.com/finops/backend/internal/domain/planning"
	"github.com/finops/backend/internal/infrastructure/telemetry"
)

// InvoiceSelector loads the payable invoices of a tenant joined with the
// supplier attributes the planner needs.
type InvoiceSelector struct {
	invoiceRepo  finance.SupplierInvoiceRepository
	supplierRepo partner.SupplierRepository
}

// NewInvoiceSelector creates a new InvoiceSelector
func NewInvoiceSelector(invoiceRepo finance.SupplierInvoiceRepository, supplierRepo partner.SupplierRepository) *InvoiceSelector {
	return &InvoiceSelector{
		invoiceRepo:  invoiceRepo,
		supplierRepo: supplierRepo,
	}
}

// SelectPayable returns the tenant's payable invoices as planning input.
// When invoiceIDs is non-empty the selection is restricted to those ids;
// ids belonging to another tenant are dropped silently, so the result may
// contain fewer invoices than requested, possibly none.
func (s *InvoiceSelector) SelectPayable(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) ([]planning.PayableInvoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "planning", "select_payable")
	defer span.End()

	var invoices []*finance.SupplierInvoice
	var err error
	if len(invoiceIDs) > 0 {
		invoices, err = s.invoiceRepo.FindByIDsForTenant(ctx, tenantID, invoiceIDs)
	} else {
		invoices, err = s.invoiceRepo.FindPayableForTenant(ctx, tenantID)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	payable := make([]*finance.SupplierInvoice, 0, len(invoices))
	supplierIDs := make([]uuid.UUID, 0, len(invoices))
	seen := make(map[uuid.UUID]bool)
	for _, inv := range invoices {
		if !inv.IsPayable() {
			continue
		}
		payable = append(payable, inv)
		if !seen[inv.SupplierID] {
			seen[inv.SupplierID] = true
			supplierIDs = append(supplierIDs, inv.SupplierID)
		}
	}

	suppliers, err := s.supplierRepo.FindByIDsForTenant(ctx, tenantID, supplierIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}
	byID := make(map[uuid.UUID]*partner.Supplier, len(suppliers))
	for _, sup := range suppliers {
		byID[sup.ID] = sup
	}

	result := make([]planning.PayableInvoice, 0, len(payable))
	for _, inv := range payable {
		sup, ok := byID[inv.SupplierID]
		if !ok {
			continue
		}
		result = append(result, planning.PayableInvoice{
			ID:                       inv.ID,
			InvoiceNumber:            inv.InvoiceNumber,
			SupplierID:               sup.ID,
			SupplierName:             sup.Name,
			Importance:               sup.Importance,
			Amount:                   inv.RemainingAmount(),
			DueDate:                  inv.DueDate,
			LatePaymentPenaltyRate:   sup.LatePaymentPenaltyRate,
			EarlyPaymentDiscountRate: sup.EarlyPaymentDiscountRate,
		})
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrInvoiceCount, len(result))
	return result, nil
}
