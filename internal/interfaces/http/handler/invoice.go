package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	accountingapp "github.com/simpleaccounting/backend/internal/application/accounting"
	"github.com/simpleaccounting/backend/internal/interfaces/http/dto"
)

// InvoiceHandler exposes the invoice endpoints, including the
// sent/paid/cancelled lifecycle transitions.
type InvoiceHandler struct {
	BaseHandler
	service *accountingapp.InvoiceService
	logger  *zap.Logger
}

func NewInvoiceHandler(service *accountingapp.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, logger: logger}
}

// RegisterRoutes registers the invoice routes on the given group.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.Get)
		invoices.PUT("/:id", h.Update)
		invoices.DELETE("/:id", h.Delete)
		invoices.POST("/:id/send", h.Send)
		invoices.POST("/:id/pay", h.Pay)
		invoices.POST("/:id/cancel", h.Cancel)
	}
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var req accountingapp.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.service.CreateInvoice(c.Request.Context(), workspaceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
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

	resp, err := h.service.GetInvoice(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var filter accountingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.service.ListInvoices(c.Request.Context(), workspaceID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Update handles PUT /invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
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

	var req accountingapp.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.UpdateInvoice(c.Request.Context(), workspaceID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
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

	if err := h.service.DeleteInvoice(c.Request.Context(), workspaceID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Send handles POST /invoices/:id/send
func (h *InvoiceHandler) Send(c *gin.Context) {
	h.transition(c, h.service.SendInvoice)
}

// Pay handles POST /invoices/:id/pay
func (h *InvoiceHandler) Pay(c *gin.Context) {
	h.transition(c, h.service.PayInvoice)
}

// Cancel handles POST /invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.CancelInvoice)
}

func (h *InvoiceHandler) transition(c *gin.Context, fn func(ctx context.Context, workspaceID, id uuid.UUID) (*accountingapp.InvoiceResponse, error)) {
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

	resp, err := fn(c.Request.Context(), workspaceID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
