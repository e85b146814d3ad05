package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finops/backend/internal/application/payments"
	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/domain/planning"
	"github.com/finops/backend/internal/domain/shared"
	"github.com/finops/backend/internal/interfaces/http/dto"
)

// ScenarioHandler handles payment scenario endpoints
type ScenarioHandler struct {
	BaseHandler
	scenarioService *payments.ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler
func NewScenarioHandler(scenarioService *payments.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// CreateScenarioRequest represents a request to persist a payment scenario
type CreateScenarioRequest struct {
	Name              string          `json:"name" binding:"required,min=1,max=255"`
	Description       string          `json:"description" binding:"max=1000"`
	Strategy          string          `json:"strategy" binding:"required"`
	TargetCashReserve decimal.Decimal `json:"targetCashReserve"`
	InvoiceIDs        []uuid.UUID     `json:"invoiceIds" binding:"required,min=1"`
	StartDate         *time.Time      `json:"startDate"`
	EndDate           *time.Time      `json:"endDate"`
}

// ScenarioResponse represents a payment scenario in API responses
type ScenarioResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Strategy          string          `json:"strategy"`
	TargetCashReserve decimal.Decimal `json:"targetCashReserve"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	InvoiceIDs        []uuid.UUID     `json:"invoiceIds"`
	StartDate         *time.Time      `json:"startDate,omitempty"`
	EndDate           *time.Time      `json:"endDate,omitempty"`
	IsActive          bool            `json:"isActive"`
	AppliedAt         *time.Time      `json:"appliedAt,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func toScenarioResponse(s *finance.PaymentScenario) ScenarioResponse {
	return ScenarioResponse{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Strategy:          s.Strategy.String(),
		TargetCashReserve: s.TargetCashReserve,
		TotalAmount:       s.TotalAmount,
		InvoiceIDs:        s.InvoiceRefs,
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
		IsActive:          s.IsActive,
		AppliedAt:         s.AppliedAt,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// Create godoc
// @Summary      Create a payment scenario
// @Description  Persists a named planning configuration over a set of the tenant's invoices. The scenario starts inactive.
// @Tags         scenarios
// @Accept       json
// @Produce      json
// @Param        request body CreateScenarioRequest true "Scenario creation request"
// @Success      201 {object} dto.Response{data=ScenarioResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scenarios [post]
func (h *ScenarioHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	scenario, err := h.scenarioService.CreateScenario(c.Request.Context(), tenantID, payments.CreateScenarioRequest{
		Name:              req.Name,
		Description:       req.Description,
		Strategy:          planning.Strategy(req.Strategy),
		TargetCashReserve: req.TargetCashReserve,
		InvoiceIDs:        req.InvoiceIDs,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toScenarioResponse(scenario))
}

// List godoc
// @Summary      List payment scenarios
// @Tags         scenarios
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]ScenarioResponse}
// @Security     BearerAuth
// @Router       /scenarios [get]
func (h *ScenarioHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	if listReq.Page > 0 {
		filter.Page = listReq.Page
	}
	if listReq.PageSize > 0 {
		filter.PageSize = listReq.PageSize
	}
	if listReq.OrderBy != "" {
		filter.OrderBy = listReq.OrderBy
	}
	if listReq.OrderDir != "" {
		filter.OrderDir = listReq.OrderDir
	}

	scenarios, total, err := h.scenarioService.ListScenarios(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]ScenarioResponse, 0, len(scenarios))
	for _, s := range scenarios {
		resp = append(resp, toScenarioResponse(s))
	}

	h.SuccessWithMeta(c, resp, total, filter.Page, filter.PageSize)
}

// GetActive godoc
// @Summary      Get the active payment scenario
// @Description  Returns the tenant's single active scenario, or 404 when none has been activated.
// @Tags         scenarios
// @Produce      json
// @Success      200 {object} dto.Response{data=ScenarioResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scenarios/active [get]
func (h *ScenarioHandler) GetActive(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	scenario, err := h.scenarioService.GetActiveScenario(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toScenarioResponse(scenario))
}

// Activate godoc
// @Summary      Activate a payment scenario
// @Description  Marks the scenario as the tenant's active plan. Any previously active scenario is deactivated in the same transaction.
// @Tags         scenarios
// @Produce      json
// @Param        id path string true "Scenario ID"
// @Success      200 {object} dto.Response{data=ScenarioResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scenarios/{id}/activate [post]
func (h *ScenarioHandler) Activate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid scenario ID")
		return
	}
	scenarioID, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid scenario ID")
		return
	}

	scenario, err := h.scenarioService.ActivateScenario(c.Request.Context(), tenantID, scenarioID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toScenarioResponse(scenario))
}

// RegisterRoutes registers scenario routes on the API group
func (h *ScenarioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scenarios", h.Create)
	rg.GET("/scenarios", h.List)
	rg.GET("/scenarios/active", h.GetActive)
	rg.POST("/scenarios/:id/activate", h.Activate)
}
