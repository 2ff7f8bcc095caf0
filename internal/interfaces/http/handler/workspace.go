package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	workspaceapp "github.com/simpleaccounting/backend/internal/application/workspace"
	"github.com/simpleaccounting/backend/internal/interfaces/http/dto"
)

// WorkspaceHandler exposes workspace and membership management endpoints.
type WorkspaceHandler struct {
	BaseHandler
	service *workspaceapp.WorkspaceService
	logger  *zap.Logger
}

func NewWorkspaceHandler(service *workspaceapp.WorkspaceService, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{service: service, logger: logger}
}

// RegisterRoutes registers the workspace routes on the given group.
func (h *WorkspaceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.Create)
		workspaces.GET("", h.List)
		workspaces.GET("/:id", h.Get)
		workspaces.PUT("/:id", h.Update)
		workspaces.DELETE("/:id", h.Delete)
		workspaces.POST("/:id/members", h.AddMember)
		workspaces.DELETE("/:id/members/:user_id", h.RemoveMember)
	}
}

// Create handles POST /workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req workspaceapp.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.CreateWorkspace(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /workspaces/:id
func (h *WorkspaceHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.GetWorkspace(c.Request.Context(), uuid.MustParse(uri.ID), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	workspaces, err := h.service.ListWorkspaces(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, workspaces)
}

// Update handles PUT /workspaces/:id
func (h *WorkspaceHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindingError(c, err)
		return
	}

	var req workspaceapp.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.UpdateWorkspace(c.Request.Context(), uuid.MustParse(uri.ID), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /workspaces/:id
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.service.DeleteWorkspace(c.Request.Context(), uuid.MustParse(uri.ID), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddMember handles POST /workspaces/:id/members
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindingError(c, err)
		return
	}

	var req workspaceapp.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.service.AddMember(c.Request.Context(), uuid.MustParse(uri.ID), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type memberURI struct {
	ID     string `uri:"id" binding:"required,uuid"`
	UserID string `uri:"user_id" binding:"required,uuid"`
}

// RemoveMember handles DELETE /workspaces/:id/members/:user_id
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri memberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), uuid.MustParse(uri.ID), userID, uuid.MustParse(uri.UserID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
