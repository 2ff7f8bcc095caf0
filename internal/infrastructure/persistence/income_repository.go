package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormIncomeRepository implements IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// FindByIDForWorkspace finds an income by ID within a workspace.
// Returns (nil, nil) when no income exists.
func (r *GormIncomeRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Income, error) {
	var model models.IncomeModel
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

// FindAllForWorkspace finds incomes for a workspace with filtering and pagination
func (r *GormIncomeRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter accounting.RecordFilter) (*shared.Paginated[accounting.Income], error) {
	var total int64
	countQuery := r.db.WithContext(ctx).Model(&models.IncomeModel{}).
		Where("workspace_id = ?", workspaceID)
	if err := r.applyFilterWithoutPagination(countQuery, filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var incomeModels []models.IncomeModel
	query := r.db.WithContext(ctx).Model(&models.IncomeModel{}).
		Where("workspace_id = ?", workspaceID)
	if err := r.applyFilter(query, filter).Find(&incomeModels).Error; err != nil {
		return nil, err
	}

	incomes := make([]accounting.Income, len(incomeModels))
	for i, model := range incomeModels {
		incomes[i] = *model.ToDomain()
	}
	return newPaginated(incomes, total, filter.Filter), nil
}

// FindByInvoice finds incomes linked to an invoice
func (r *GormIncomeRepository) FindByInvoice(ctx context.Context, workspaceID, invoiceID uuid.UUID) ([]accounting.Income, error) {
	var incomeModels []models.IncomeModel
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND invoice_id = ?", workspaceID, invoiceID).
		Order("date_received ASC").
		Find(&incomeModels).Error; err != nil {
		return nil, err
	}
	incomes := make([]accounting.Income, len(incomeModels))
	for i, model := range incomeModels {
		incomes[i] = *model.ToDomain()
	}
	return incomes, nil
}

// Save creates or updates an income
func (r *GormIncomeRepository) Save(ctx context.Context, income *accounting.Income) error {
	model := models.IncomeModelFromDomain(income)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the income with optimistic locking
func (r *GormIncomeRepository) SaveWithLock(ctx context.Context, income *accounting.Income) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version
		var current models.IncomeModel
		if err := tx.Select("version").Where("id = ?", income.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// New record, just save
				model := models.IncomeModelFromDomain(income)
				return tx.Create(model).Error
			}
			return err
		}

		// Check version matches (domain model already incremented version)
		expectedVersion := income.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Income has been modified by another user")
		}

		// Update with version check
		model := models.IncomeModelFromDomain(income)
		result := tx.Model(model).
			Where("id = ? AND version = ?", income.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Income has been modified by another user")
		}
		return nil
	})
}

// DeleteForWorkspace deletes an income within a workspace
func (r *GormIncomeRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.IncomeModel{}, "workspace_id = ? AND id = ?", workspaceID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumForWorkspace totals finalized incomes within a date range
func (r *GormIncomeRepository) SumForWorkspace(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (accounting.RecordTotals, error) {
	var totals accounting.RecordTotals
	if err := r.db.WithContext(ctx).Model(&models.IncomeModel{}).
		Select("COALESCE(SUM(reporting_amount_adjusted), 0) AS reporting_adjusted, COALESCE(SUM(taxable_amount_adjusted), 0) AS taxable_adjusted, COUNT(*) AS count").
		Where("workspace_id = ? AND status = ? AND date_received >= ? AND date_received <= ?",
			workspaceID, accounting.StatusFinalized, from, to).
		Scan(&totals).Error; err != nil {
		return accounting.RecordTotals{}, err
	}
	return totals, nil
}

// applyFilter applies filter conditions, sorting and pagination to query
func (r *GormIncomeRepository) applyFilter(query *gorm.DB, filter accounting.RecordFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, IncomeSortFields, "date_received")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	// Apply pagination
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	return query
}

// applyFilterWithoutPagination applies filter conditions without pagination
func (r *GormIncomeRepository) applyFilterWithoutPagination(query *gorm.DB, filter accounting.RecordFilter) *gorm.DB {
	// Search in title and notes
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(title ILIKE ? OR notes ILIKE ?)", searchPattern, searchPattern)
	}

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	if filter.Currency != nil {
		query = query.Where("original_currency = ?", *filter.Currency)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	// Date range on the receipt date, not the row timestamps
	if filter.FromDate != nil {
		query = query.Where("date_received >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date_received <= ?", filter.ToDate)
	}

	return query
}
