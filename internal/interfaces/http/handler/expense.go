package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	accountingapp "github.com/simpleaccounting/backend/internal/application/accounting"
	"github.com/simpleaccounting/backend/internal/interfaces/http/dto"
)

// ExpenseHandler exposes the expense CRUD endpoints.
type ExpenseHandler struct {
	BaseHandler
	service *accountingapp.ExpenseService
	logger  *zap.Logger
}

func NewExpenseHandler(service *accountingapp.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{service: service, logger: logger}
}

// RegisterRoutes registers the expense routes on the given group.
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/:id", h.Get)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var req accountingapp.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.service.CreateExpense(c.Request.Context(), workspaceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
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

	resp, err := h.service.GetExpense(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var filter accountingapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.service.ListExpenses(c.Request.Context(), workspaceID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Update handles PUT /expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
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

	var req accountingapp.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.UpdateExpense(c.Request.Context(), workspaceID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
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

	if err := h.service.DeleteExpense(c.Request.Context(), workspaceID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
