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

// GormTaxRepository implements TaxRepository using GORM
type GormTaxRepository struct {
	db *gorm.DB
}

// NewGormTaxRepository creates a new GormTaxRepository
func NewGormTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

// FindByIDForWorkspace finds a tax by ID within a workspace.
// Returns (nil, nil) when no tax exists.
func (r *GormTaxRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Tax, error) {
	var model models.TaxModel
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

// FindAllForWorkspace finds all tax rates for a workspace, ordered by title
func (r *GormTaxRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]accounting.Tax, error) {
	var taxModels []models.TaxModel
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("title ASC").
		Find(&taxModels).Error; err != nil {
		return nil, err
	}

	taxes := make([]accounting.Tax, len(taxModels))
	for i, model := range taxModels {
		taxes[i] = *model.ToDomain()
	}
	return taxes, nil
}

// Save creates or updates a tax
func (r *GormTaxRepository) Save(ctx context.Context, tax *accounting.Tax) error {
	model := models.TaxModelFromDomain(tax)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForWorkspace deletes a tax within a workspace
func (r *GormTaxRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TaxModel{}, "workspace_id = ? AND id = ?", workspaceID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
