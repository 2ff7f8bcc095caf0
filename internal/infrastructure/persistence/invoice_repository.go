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

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForWorkspace finds an invoice by ID within a workspace.
// Returns (nil, nil) when no invoice exists.
func (r *GormInvoiceRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Invoice, error) {
	var model models.InvoiceModel
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

// FindAllForWorkspace finds invoices for a workspace with filtering and pagination
func (r *GormInvoiceRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter accounting.InvoiceFilter) (*shared.Paginated[accounting.Invoice], error) {
	var total int64
	countQuery := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("workspace_id = ?", workspaceID)
	if err := r.applyFilterWithoutPagination(countQuery, filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var invoiceModels []models.InvoiceModel
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("workspace_id = ?", workspaceID)
	if err := r.applyFilter(query, filter).Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]accounting.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return newPaginated(invoices, total, filter.Filter), nil
}

// FindOverdue finds sent, unpaid, uncancelled invoices due before the given instant
func (r *GormInvoiceRepository) FindOverdue(ctx context.Context, workspaceID uuid.UUID, asOf time.Time) ([]accounting.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND cancelled = false AND date_sent IS NOT NULL AND date_paid IS NULL AND due_date < ?",
			workspaceID, asOf).
		Order("due_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]accounting.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *accounting.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the invoice with optimistic locking
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *accounting.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version
		var current models.InvoiceModel
		if err := tx.Select("version").Where("id = ?", invoice.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// New record, just save
				model := models.InvoiceModelFromDomain(invoice)
				return tx.Create(model).Error
			}
			return err
		}

		// Check version matches (domain model already incremented version)
		expectedVersion := invoice.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Invoice has been modified by another user")
		}

		// Update with version check
		model := models.InvoiceModelFromDomain(invoice)
		result := tx.Model(model).
			Where("id = ? AND version = ?", invoice.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Invoice has been modified by another user")
		}
		return nil
	})
}

// DeleteForWorkspace deletes an invoice within a workspace
func (r *GormInvoiceRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "workspace_id = ? AND id = ?", workspaceID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter conditions, sorting and pagination to query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter accounting.InvoiceFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "date_issued")
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
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter accounting.InvoiceFilter) *gorm.DB {
	// Search in title and notes
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(title ILIKE ? OR notes ILIKE ?)", searchPattern, searchPattern)
	}

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	if filter.Cancelled != nil {
		query = query.Where("cancelled = ?", *filter.Cancelled)
	}

	// Paid means a payment date has been recorded
	if filter.Paid != nil {
		if *filter.Paid {
			query = query.Where("date_paid IS NOT NULL")
		} else {
			query = query.Where("date_paid IS NULL")
		}
	}

	if filter.DueBefore != nil {
		query = query.Where("due_date < ?", filter.DueBefore)
	}

	return query
}
