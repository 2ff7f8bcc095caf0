package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForWorkspace finds a category by ID within a workspace.
// Returns (nil, nil) when no category exists.
func (r *GormCategoryRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Category, error) {
	var model models.CategoryModel
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

// FindAllForWorkspace finds all categories for a workspace, optionally
// restricted to one type, ordered by name
func (r *GormCategoryRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, categoryType *accounting.CategoryType) ([]accounting.Category, error) {
	query := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	var categoryModels []models.CategoryModel
	if err := query.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]accounting.Category, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *accounting.Category) error {
	model := models.CategoryModelFromDomain(category)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForWorkspace deletes a category within a workspace
func (r *GormCategoryRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CategoryModel{}, "workspace_id = ? AND id = ?", workspaceID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
