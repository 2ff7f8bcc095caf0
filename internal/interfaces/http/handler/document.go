package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	accountingapp "github.com/simpleaccounting/backend/internal/application/accounting"
	"github.com/simpleaccounting/backend/internal/interfaces/http/dto"
)

// DocumentHandler exposes the document metadata and presigned URL endpoints.
// Uploads and downloads go straight to object storage; the API only hands out
// short lived URLs.
type DocumentHandler struct {
	BaseHandler
	service *accountingapp.DocumentService
	logger  *zap.Logger
}

func NewDocumentHandler(service *accountingapp.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{service: service, logger: logger}
}

// RegisterRoutes registers the document routes on the given group.
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.POST("", h.InitiateUpload)
		documents.GET("", h.List)
		documents.GET("/:id", h.Get)
		documents.GET("/:id/download", h.DownloadURL)
		documents.DELETE("/:id", h.Delete)
	}
}

// InitiateUpload handles POST /documents
func (h *DocumentHandler) InitiateUpload(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		h.Unauthorized(c, "Workspace context required")
		return
	}

	var req accountingapp.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.InitiateUpload(c.Request.Context(), workspaceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
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

	resp, err := h.service.GetDocument(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DownloadURL handles GET /documents/:id/download
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
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

	resp, err := h.service.GetDownloadURL(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /documents
func (h *DocumentHandler) List(c *gin.Context) {
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

	page, err := h.service.ListDocuments(c.Request.Context(), workspaceID, query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Delete handles DELETE /documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
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

	if err := h.service.DeleteDocument(c.Request.Context(), workspaceID, uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
