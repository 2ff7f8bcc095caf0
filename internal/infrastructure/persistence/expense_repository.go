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

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForWorkspace finds an expense by ID within a workspace.
// Returns (nil, nil) when no expense exists; absence is not an error here.
func (r *GormExpenseRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Expense, error) {
	var model models.ExpenseModel
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

// FindAllForWorkspace finds expenses for a workspace with filtering and pagination
func (r *GormExpenseRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter accounting.RecordFilter) (*shared.Paginated[accounting.Expense], error) {
	var total int64
	countQuery := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("workspace_id = ?", workspaceID)
	if err := r.applyFilterWithoutPagination(countQuery, filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var expenseModels []models.ExpenseModel
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("workspace_id = ?", workspaceID)
	if err := r.applyFilter(query, filter).Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]accounting.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return newPaginated(expenses, total, filter.Filter), nil
}

// FindByStatus finds expenses in the given status for a workspace,
// oldest payment date first
func (r *GormExpenseRepository) FindByStatus(ctx context.Context, workspaceID uuid.UUID, status accounting.AmountsStatus) ([]accounting.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND status = ?", workspaceID, status).
		Order("date_paid ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]accounting.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *accounting.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the expense with optimistic locking
func (r *GormExpenseRepository) SaveWithLock(ctx context.Context, expense *accounting.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version
		var current models.ExpenseModel
		if err := tx.Select("version").Where("id = ?", expense.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// New record, just save
				model := models.ExpenseModelFromDomain(expense)
				return tx.Create(model).Error
			}
			return err
		}

		// Check version matches (domain model already incremented version)
		expectedVersion := expense.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Expense has been modified by another user")
		}

		// Update with version check
		model := models.ExpenseModelFromDomain(expense)
		result := tx.Model(model).
			Where("id = ? AND version = ?", expense.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Expense has been modified by another user")
		}
		return nil
	})
}

// DeleteForWorkspace deletes an expense within a workspace
func (r *GormExpenseRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "workspace_id = ? AND id = ?", workspaceID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumForWorkspace totals finalized expenses within a date range. Pending
// records carry no default-currency amounts and are excluded.
func (r *GormExpenseRepository) SumForWorkspace(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (accounting.RecordTotals, error) {
	var totals accounting.RecordTotals
	if err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(reporting_amount_adjusted), 0) AS reporting_adjusted, COALESCE(SUM(taxable_amount_adjusted), 0) AS taxable_adjusted, COUNT(*) AS count").
		Where("workspace_id = ? AND status = ? AND date_paid >= ? AND date_paid <= ?",
			workspaceID, accounting.StatusFinalized, from, to).
		Scan(&totals).Error; err != nil {
		return accounting.RecordTotals{}, err
	}
	return totals, nil
}

// applyFilter applies filter conditions, sorting and pagination to query
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter accounting.RecordFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, ExpenseSortFields, "date_paid")
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
func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter accounting.RecordFilter) *gorm.DB {
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

	// Date range on the payment date, not the row timestamps
	if filter.FromDate != nil {
		query = query.Where("date_paid >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date_paid <= ?", filter.ToDate)
	}

	return query
}
