package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByIDForWorkspace finds a document by ID within a workspace.
// Returns (nil, nil) when no document exists.
func (r *GormDocumentRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForWorkspace finds documents for a workspace with filtering and pagination
func (r *GormDocumentRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (*shared.Paginated[accounting.Document], error) {
	var total int64
	countQuery := r.db.WithContext(ctx).Model(&models.DocumentModel{}).
		Where("workspace_id = ?", workspaceID)
	if filter.Search != "" {
		countQuery = countQuery.Where("file_name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.DocumentModel{}).
		Where("workspace_id = ?", workspaceID)
	if filter.Search != "" {
		query = query.Where("file_name ILIKE ?", "%"+filter.Search+"%")
	}

	sortField := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	var documentModels []models.DocumentModel
	if err := query.Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]accounting.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return newPaginated(documents, total, filter), nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, document *accounting.Document) error {
	model := models.DocumentModelFromDomain(document)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForWorkspace deletes a document within a workspace
func (r *GormDocumentRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "workspace_id = ? AND id = ?", workspaceID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
