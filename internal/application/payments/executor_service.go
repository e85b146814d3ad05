package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/finops/backend/internal/infrastructure/telemetry"
)

// idempotencyKeyTTL bounds how long a request-level idempotency key is
// remembered. The database uniqueness constraint on the invoice id remains
// the authoritative guard.
const idempotencyKeyTTL = 24 * time.Hour

// ExecutorService realizes one plan item as an irreversible ledger event
type ExecutorService struct {
	txScope          TransactionScope
	idempotencyStore shared.IdempotencyStore
	now              func() time.Time
}

// NewExecutorService creates a new ExecutorService. idempotencyStore may be
// nil when request-level idempotency keys are not used.
func NewExecutorService(txScope TransactionScope, idempotencyStore shared.IdempotencyStore) *ExecutorService {
	return &ExecutorService{
		txScope:          txScope,
		idempotencyStore: idempotencyStore,
		now:              time.Now,
	}
}

// ExecutePaymentRequest describes one payment execution
type ExecutePaymentRequest struct {
	InvoiceID   uuid.UUID
	AccountID   uuid.UUID
	PaymentDate time.Time
	// ScenarioID optionally links the payment to the plan it came from
	ScenarioID *uuid.UUID
	// IdempotencyKey optionally deduplicates client retries before any
	// datastore work happens
	IdempotencyKey string
}

// ExecutePaymentResult carries the created payment and its ledger transaction
type ExecutePaymentResult struct {
	Payment     *finance.SupplierPayment
	Transaction *finance.LedgerTransaction
}

// ExecutePayment pays a supplier invoice in full from the given account.
// The ledger transaction, payment record, account debit and invoice status
// change commit atomically; on any failure nothing is persisted. A second
// execution for the same invoice is rejected.
func (s *ExecutorService) ExecutePayment(ctx context.Context, tenantID uuid.UUID, req ExecutePaymentRequest) (*ExecutePaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "execute")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, req.InvoiceID.String(),
		telemetry.SpanAttrAccountID, req.AccountID.String(),
	)

	if req.InvoiceID == uuid.Nil || req.AccountID == uuid.Nil {
		err := shared.NewDomainError("INVALID_INPUT", "Invoice ID and account ID are required")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.idempotencyStore != nil && req.IdempotencyKey != "" {
		fresh, err := s.idempotencyStore.MarkProcessed(ctx, "payment:"+req.IdempotencyKey, idempotencyKeyTTL)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !fresh {
			err := shared.NewDomainError("ALREADY_EXISTS", "Payment request was already processed")
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = s.now()
	}

	var result *ExecutePaymentResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, req.InvoiceID)
		if err != nil {
			return err
		}

		account, err := repos.AccountRepo().FindByIDForTenant(ctx, tenantID, req.AccountID)
		if err != nil {
			return err
		}

		existing, err := repos.PaymentRepo().FindByInvoiceForTenant(ctx, tenantID, req.InvoiceID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("failed to check existing payment: %w", err)
		}
		if existing != nil {
			return shared.NewDomainError("ALREADY_EXISTS", "Invoice has already been paid")
		}

		amount := invoice.RemainingAmount()

		ledgerTx, err := finance.NewLedgerTransaction(
			tenantID, account.ID, finance.LedgerTypeSupplierPayment,
			amount.Neg(), invoice.ID,
			fmt.Sprintf("Payment of supplier invoice %s", invoice.InvoiceNumber),
		)
		if err != nil {
			return err
		}
		ledgerTx.OccurredAt = paymentDate

		payment, err := finance.NewSupplierPayment(tenantID, invoice.ID, invoice.SupplierID, account.ID, amount)
		if err != nil {
			return err
		}
		payment.LinkLedgerTransaction(ledgerTx.ID)
		payment.PaidAt = paymentDate
		if req.ScenarioID != nil {
			payment.AttachScenario(*req.ScenarioID)
		}
		payment.Reference = invoice.InvoiceNumber

		if err := account.Debit(amount); err != nil {
			return err
		}
		if err := invoice.ApplyPayment(amount); err != nil {
			return err
		}

		if err := repos.LedgerRepo().Save(ctx, ledgerTx); err != nil {
			return fmt.Errorf("failed to save ledger transaction: %w", err)
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		if err := repos.AccountRepo().Update(ctx, account); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		if err := repos.InvoiceRepo().Update(ctx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		result = &ExecutePaymentResult{Payment: payment, Transaction: ledgerTx}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrPaymentID, result.Payment.ID.String())
	return result, nil
}
