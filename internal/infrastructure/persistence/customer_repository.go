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

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForWorkspace finds a customer by ID within a workspace.
// Returns (nil, nil) when no customer exists.
func (r *GormCustomerRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Customer, error) {
	var model models.CustomerModel
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

// FindAllForWorkspace finds customers for a workspace with filtering and pagination
func (r *GormCustomerRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (*shared.Paginated[accounting.Customer], error) {
	var total int64
	countQuery := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("workspace_id = ?", workspaceID)
	if filter.Search != "" {
		countQuery = countQuery.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("workspace_id = ?", workspaceID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	sortField := ValidateSortField(filter.OrderBy, CustomerSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	var customerModels []models.CustomerModel
	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]accounting.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return newPaginated(customers, total, filter), nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *accounting.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForWorkspace deletes a customer within a workspace
func (r *GormCustomerRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "workspace_id = ? AND id = ?", workspaceID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
