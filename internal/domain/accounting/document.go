package accounting

import (
	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
)

const maxDocumentSize = 50 << 20 // 50 MiB

// Document represents an uploaded file attached to expenses, incomes or
// invoices. Only metadata lives here; the bytes live in object storage under
// StorageKey.
type Document struct {
	shared.WorkspaceAggregateRoot
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageKey  string `json:"storage_key"`
}

// NewDocument creates a new document record within a workspace.
func NewDocument(workspaceID uuid.UUID, fileName, contentType string, sizeBytes int64, storageKey string) (*Document, error) {
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(fileName) > 255 {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if sizeBytes <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File cannot be empty")
	}
	if sizeBytes > maxDocumentSize {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File exceeds the maximum allowed size")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	return &Document{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		FileName:               fileName,
		ContentType:            contentType,
		SizeBytes:              sizeBytes,
		StorageKey:             storageKey,
	}, nil
}
