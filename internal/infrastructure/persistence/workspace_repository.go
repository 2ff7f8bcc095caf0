package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/workspace"
	"github.com/simpleaccounting/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkspaceRepository implements WorkspaceRepository using GORM
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewGormWorkspaceRepository creates a new GormWorkspaceRepository
func NewGormWorkspaceRepository(db *gorm.DB) *GormWorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// FindByID finds a workspace by ID.
// Returns (nil, nil) when no workspace exists.
func (r *GormWorkspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*workspace.Workspace, error) {
	var model models.WorkspaceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds all workspaces a user owns or is a member of,
// oldest first so the first workspace a user created stays first
func (r *GormWorkspaceRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]workspace.Workspace, error) {
	var workspaceModels []models.WorkspaceModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? OR id IN (?)", userID,
			r.db.Model(&models.WorkspaceMemberModel{}).
				Select("workspace_id").
				Where("user_id = ?", userID)).
		Order("created_at ASC").
		Find(&workspaceModels).Error; err != nil {
		return nil, err
	}

	workspaces := make([]workspace.Workspace, len(workspaceModels))
	for i, model := range workspaceModels {
		workspaces[i] = *model.ToDomain()
	}
	return workspaces, nil
}

// Save creates or updates a workspace
func (r *GormWorkspaceRepository) Save(ctx context.Context, ws *workspace.Workspace) error {
	model := models.WorkspaceModelFromDomain(ws)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the workspace with optimistic locking
func (r *GormWorkspaceRepository) SaveWithLock(ctx context.Context, ws *workspace.Workspace) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version
		var current models.WorkspaceModel
		if err := tx.Select("version").Where("id = ?", ws.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// New record, just save
				model := models.WorkspaceModelFromDomain(ws)
				return tx.Create(model).Error
			}
			return err
		}

		// Check version matches (domain model already incremented version)
		expectedVersion := ws.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Workspace has been modified by another user")
		}

		// Update with version check
		model := models.WorkspaceModelFromDomain(ws)
		result := tx.Model(model).
			Where("id = ? AND version = ?", ws.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Workspace has been modified by another user")
		}
		return nil
	})
}

// Delete deletes a workspace and its memberships
func (r *GormWorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.WorkspaceMemberModel{}, "workspace_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.WorkspaceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// AddMember adds a user to a workspace. Adding an existing member is a no-op.
func (r *GormWorkspaceRepository) AddMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	member := models.WorkspaceMemberModel{
		WorkspaceID: workspaceID,
		UserID:      userID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&member).Error
}

// RemoveMember removes a user from a workspace
func (r *GormWorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.WorkspaceMemberModel{}, "workspace_id = ? AND user_id = ?", workspaceID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IsMember checks whether a user owns or belongs to a workspace
func (r *GormWorkspaceRepository) IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.WorkspaceModel{}).
		Where("id = ? AND owner_id = ?", workspaceID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := r.db.WithContext(ctx).Model(&models.WorkspaceMemberModel{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
