package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	accountingapp "github.com/simpleaccounting/backend/internal/application/accounting"
	"github.com/simpleaccounting/backend/internal/interfaces/http/dto"
)

// ReferenceHandler exposes the customer, category and tax endpoints.
type ReferenceHandler struct {
	BaseHandler
	service *accountingapp.ReferenceService
	logger  *zap.Logger
}

func NewReferenceHandler(service *accountingapp.ReferenceService, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{service: service, logger: logger}
}

// RegisterRoutes registers the reference data routes on the given group.
func (h *ReferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.PUT("/:id", h.RenameCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	taxes := rg.Group("/taxes")
	{
		taxes.POST("", h.CreateTax)
		taxes.GET("", h.ListTaxes)
		taxes.PUT("/:id", h.UpdateTax)
		taxes.DELETE("/:id", h.DeleteTax)
	}
}

// CreateCustomer handles POST /customers
func (h *ReferenceHandler) CreateCustomer(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var req accountingapp.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.CreateCustomer(c.Request.Context(), workspaceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetCustomer handles GET /customers/:id
func (h *ReferenceHandler) GetCustomer(c *gin.Context) {
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

	resp, err := h.service.GetCustomer(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListCustomers handles GET /customers
func (h *ReferenceHandler) ListCustomers(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.service.ListCustomers(c.Request.Context(), workspaceID, query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// UpdateCustomer handles PUT /customers/:id
func (h *ReferenceHandler) UpdateCustomer(c *gin.Context) {
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

	var req accountingapp.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.UpdateCustomer(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteCustomer handles DELETE /customers/:id
func (h *ReferenceHandler) DeleteCustomer(c *gin.Context) {
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

	if err := h.service.DeleteCustomer(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCategory handles POST /categories
func (h *ReferenceHandler) CreateCategory(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var req accountingapp.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.CreateCategory(c.Request.Context(), workspaceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCategories handles GET /categories?type=EXPENSE|INCOME
func (h *ReferenceHandler) ListCategories(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	categories, err := h.service.ListCategories(c.Request.Context(), workspaceID, c.Query("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

type renameCategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// RenameCategory handles PUT /categories/:id
func (h *ReferenceHandler) RenameCategory(c *gin.Context) {
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

	var req renameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.RenameCategory(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteCategory handles DELETE /categories/:id
func (h *ReferenceHandler) DeleteCategory(c *gin.Context) {
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

	if err := h.service.DeleteCategory(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateTax handles POST /taxes
func (h *ReferenceHandler) CreateTax(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var req accountingapp.TaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.CreateTax(c.Request.Context(), workspaceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListTaxes handles GET /taxes
func (h *ReferenceHandler) ListTaxes(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	taxes, err := h.service.ListTaxes(c.Request.Context(), workspaceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, taxes)
}

// UpdateTax handles PUT /taxes/:id
func (h *ReferenceHandler) UpdateTax(c *gin.Context) {
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

	var req accountingapp.TaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.UpdateTax(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteTax handles DELETE /taxes/:id
func (h *ReferenceHandler) DeleteTax(c *gin.Context) {
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

	if err := h.service.DeleteTax(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
