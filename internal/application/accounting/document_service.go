package accounting

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
)

// allowedContentTypes is the whitelist for document uploads. SVG is excluded
// on purpose: it can carry scripts.
var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
	"text/csv":        true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/zip": true,
}

// ObjectStorageService defines the interface for object storage operations.
// Implemented by the infrastructure layer (S3 or the in-memory stub).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// DocumentServiceConfig holds URL expiry configuration
type DocumentServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultDocumentServiceConfig returns the default configuration
func DefaultDocumentServiceConfig() DocumentServiceConfig {
	return DocumentServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// DocumentService handles document upload, download and metadata operations
type DocumentService struct {
	documentRepo accounting.DocumentRepository
	storage      ObjectStorageService
	config       DocumentServiceConfig
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo accounting.DocumentRepository, storage ObjectStorageService) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		storage:      storage,
		config:       DefaultDocumentServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *DocumentService) SetConfig(config DocumentServiceConfig) {
	s.config = config
}

// InitiateUploadRequest represents a request to start a document upload
type InitiateUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
}

// InitiateUploadResponse carries the presigned upload URL and the created
// document record
type InitiateUploadResponse struct {
	Document  DocumentResponse `json:"document"`
	UploadURL string           `json:"upload_url"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// InitiateUpload creates the document record and returns a presigned upload URL
func (s *DocumentService) InitiateUpload(ctx context.Context, workspaceID uuid.UUID, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	if !allowedContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", fmt.Sprintf("Content type %q is not allowed", req.ContentType))
	}

	storageKey := buildStorageKey(workspaceID, req.FileName)
	document, err := accounting.NewDocument(workspaceID, req.FileName, req.ContentType, req.SizeBytes, storageKey)
	if err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, document); err != nil {
		return nil, err
	}

	return &InitiateUploadResponse{
		Document:  *toDocumentResponse(document),
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// GetDownloadURL returns a presigned download URL for a document
func (s *DocumentService) GetDownloadURL(ctx context.Context, workspaceID, id uuid.UUID) (*DownloadURLResponse, error) {
	document, err := s.findDocument(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, document.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Document content has not been uploaded yet")
	}

	downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, document.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &DownloadURLResponse{DownloadURL: downloadURL, ExpiresAt: expiresAt}, nil
}

// GetDocument gets document metadata by ID
func (s *DocumentService) GetDocument(ctx context.Context, workspaceID, id uuid.UUID) (*DocumentResponse, error) {
	document, err := s.findDocument(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(document), nil
}

// ListDocuments lists document metadata with pagination
func (s *DocumentService) ListDocuments(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (*shared.Paginated[DocumentResponse], error) {
	page, err := s.documentRepo.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]DocumentResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *toDocumentResponse(&page.Items[i]))
	}
	return &shared.Paginated[DocumentResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// DeleteDocument removes the document record and its stored object
func (s *DocumentService) DeleteDocument(ctx context.Context, workspaceID, id uuid.UUID) error {
	document, err := s.findDocument(ctx, workspaceID, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, document.StorageKey); err != nil {
		return err
	}
	return s.documentRepo.DeleteForWorkspace(ctx, workspaceID, id)
}

func (s *DocumentService) findDocument(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Document, error) {
	document, err := s.documentRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Document not found")
	}
	return document, nil
}

func buildStorageKey(workspaceID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("documents/%s/%s%s", workspaceID, uuid.New(), ext)
}

func toDocumentResponse(document *accounting.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:          document.ID,
		WorkspaceID: document.WorkspaceID,
		FileName:    document.FileName,
		ContentType: document.ContentType,
		SizeBytes:   document.SizeBytes,
		CreatedAt:   document.CreatedAt,
	}
}
