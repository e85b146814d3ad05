package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/application/payments"
	"github.com/finops/backend/internal/domain/planning"
)

// PlanningHandler handles payment plan optimization endpoints
type PlanningHandler struct {
	BaseHandler
	optimizerService *payments.OptimizerService
	selector         *payments.InvoiceSelector
}

// NewPlanningHandler creates a new PlanningHandler
func NewPlanningHandler(optimizerService *payments.OptimizerService, selector *payments.InvoiceSelector) *PlanningHandler {
	return &PlanningHandler{
		optimizerService: optimizerService,
		selector:         selector,
	}
}

// OptimizePlanRequest represents a request to build a payment plan
type OptimizePlanRequest struct {
	Strategy          string           `json:"strategy" binding:"required"`
	TargetCashReserve decimal.Decimal  `json:"targetCashReserve"`
	MaxDailyAmount    *decimal.Decimal `json:"maxDailyAmount"`
	AvailableCash     *decimal.Decimal `json:"availableCash"`
	InvoiceIDs        []uuid.UUID      `json:"invoiceIds"`
}

// PayableInvoiceResponse represents one payable invoice in the planner view
type PayableInvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	SupplierID    uuid.UUID       `json:"supplierId"`
	SupplierName  string          `json:"supplierName"`
	Importance    string          `json:"importance"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	Overdue       bool            `json:"overdue"`
	OverdueDays   int             `json:"overdueDays"`
}

// Optimize godoc
// @Summary      Build an optimized payment plan
// @Description  Scores the tenant's payable invoices under the requested strategy and allocates them within the cash constraints. Invoices the available cash cannot cover are reported, not errors.
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        request body OptimizePlanRequest true "Planning request"
// @Success      200 {object} dto.Response{data=planning.Plan}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/optimize [post]
func (h *PlanningHandler) Optimize(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req OptimizePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.optimizerService.Optimize(c.Request.Context(), tenantID, payments.OptimizeRequest{
		Strategy:          planning.Strategy(req.Strategy),
		TargetCashReserve: req.TargetCashReserve,
		MaxDailyAmount:    req.MaxDailyAmount,
		AvailableCash:     req.AvailableCash,
		InvoiceIDs:        req.InvoiceIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// ListPayable godoc
// @Summary      List payable invoices
// @Description  Returns the tenant's open invoices in the projection the planner consumes, joined with supplier importance and payment terms.
// @Tags         planning
// @Produce      json
// @Success      200 {object} dto.Response{data=[]PayableInvoiceResponse}
// @Security     BearerAuth
// @Router       /invoices/payable [get]
func (h *PlanningHandler) ListPayable(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoices, err := h.selector.SelectPayable(c.Request.Context(), tenantID, nil)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	now := time.Now()
	resp := make([]PayableInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, PayableInvoiceResponse{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			SupplierID:    inv.SupplierID,
			SupplierName:  inv.SupplierName,
			Importance:    string(inv.Importance),
			Amount:        inv.Amount,
			DueDate:       inv.DueDate,
			Overdue:       inv.IsOverdue(now),
			OverdueDays:   inv.OverdueDays(now),
		})
	}

	h.Success(c, resp)
}

// RegisterRoutes registers planning routes on the API group
func (h *PlanningHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/optimize", h.Optimize)
	rg.GET("/invoices/payable", h.ListPayable)
}
