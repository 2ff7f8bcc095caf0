package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	accountingapp "github.com/simpleaccounting/backend/internal/application/accounting"
	"github.com/simpleaccounting/backend/internal/interfaces/http/dto"
)

// IncomeHandler exposes the income CRUD endpoints.
type IncomeHandler struct {
	BaseHandler
	service *accountingapp.IncomeService
	logger  *zap.Logger
}

func NewIncomeHandler(service *accountingapp.IncomeService, logger *zap.Logger) *IncomeHandler {
	return &IncomeHandler{service: service, logger: logger}
}

// RegisterRoutes registers the income routes on the given group.
func (h *IncomeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.Create)
		incomes.GET("", h.List)
		incomes.GET("/:id", h.Get)
		incomes.PUT("/:id", h.Update)
		incomes.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /incomes
func (h *IncomeHandler) Create(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var req accountingapp.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.service.CreateIncome(c.Request.Context(), workspaceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /incomes/:id
func (h *IncomeHandler) Get(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindingError(c, err)
		return
	}
	id := uuid.MustParse(uri.ID)

	resp, err := h.service.GetIncome(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /incomes
func (h *IncomeHandler) List(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var filter accountingapp.IncomeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.service.ListIncomes(c.Request.Context(), workspaceID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Update handles PUT /incomes/:id
func (h *IncomeHandler) Update(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindingError(c, err)
		return
	}
	id := uuid.MustParse(uri.ID)

	var req accountingapp.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.UpdateIncome(c.Request.Context(), workspaceID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /incomes/:id
func (h *IncomeHandler) Delete(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindingError(c, err)
		return
	}
	id := uuid.MustParse(uri.ID)

	if err := h.service.DeleteIncome(c.Request.Context(), workspaceID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
