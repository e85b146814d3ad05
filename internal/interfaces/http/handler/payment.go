package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/application/payments"
)

// IdempotencyKeyHeader carries the client-supplied retry deduplication key
const IdempotencyKeyHeader = "Idempotency-Key"

// PaymentHandler handles payment execution endpoints
type PaymentHandler struct {
	BaseHandler
	executorService *payments.ExecutorService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(executorService *payments.ExecutorService) *PaymentHandler {
	return &PaymentHandler{executorService: executorService}
}

// ExecutePaymentRequest represents a request to pay a supplier invoice
type ExecutePaymentRequest struct {
	InvoiceID   uuid.UUID  `json:"invoiceId" binding:"required"`
	AccountID   uuid.UUID  `json:"accountId" binding:"required"`
	PaymentDate *time.Time `json:"paymentDate"`
	ScenarioID  *uuid.UUID `json:"scenarioId"`
}

// ExecutePaymentResponse represents the outcome of a payment execution
type ExecutePaymentResponse struct {
	PaymentID           uuid.UUID       `json:"paymentId"`
	InvoiceID           uuid.UUID       `json:"invoiceId"`
	AccountID           uuid.UUID       `json:"accountId"`
	LedgerTransactionID uuid.UUID       `json:"ledgerTransactionId"`
	ScenarioID          *uuid.UUID      `json:"scenarioId,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	PaidAt              time.Time       `json:"paidAt"`
	Reference           string          `json:"reference"`
}

// Execute godoc
// @Summary      Execute a supplier payment
// @Description  Pays an invoice in full from the given account. The ledger entry, payment record, account debit and invoice status change commit atomically. A repeated execution for the same invoice returns 409.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client retry deduplication key"
// @Param        request body ExecutePaymentRequest true "Payment execution request"
// @Success      201 {object} dto.Response{data=ExecutePaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/execute [post]
func (h *PaymentHandler) Execute(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ExecutePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	result, err := h.executorService.ExecutePayment(c.Request.Context(), tenantID, payments.ExecutePaymentRequest{
		InvoiceID:      req.InvoiceID,
		AccountID:      req.AccountID,
		PaymentDate:    paymentDate,
		ScenarioID:     req.ScenarioID,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ExecutePaymentResponse{
		PaymentID:           result.Payment.ID,
		InvoiceID:           result.Payment.SupplierInvoiceID,
		AccountID:           result.Payment.AccountID,
		LedgerTransactionID: result.Payment.LedgerTransactionID,
		ScenarioID:          result.Payment.ScenarioID,
		Amount:              result.Payment.Amount,
		PaidAt:              result.Payment.PaidAt,
		Reference:           result.Payment.Reference,
	})
}

// RegisterRoutes registers payment routes on the API group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/execute", h.Execute)
}
