package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// RecordFilter defines filtering options shared by expense and income queries
type RecordFilter struct {
	shared.Filter
	CategoryID *uuid.UUID            // Filter by category
	Currency   *valueobject.Currency // Filter by original currency
	Status     *AmountsStatus        // Filter by derived status
	FromDate   *time.Time            // Filter by record date range start
	ToDate     *time.Time            // Filter by record date range end
}

// RecordTotals aggregates the default-currency sums over a set of records.
// Only finalized records contribute; pending ones have nothing to sum yet.
type RecordTotals struct {
	ReportingAdjusted valueobject.Amount `json:"reporting_adjusted"`
	TaxableAdjusted   valueobject.Amount `json:"taxable_adjusted"`
	Count             int64              `json:"count"`
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByIDForWorkspace finds an expense by ID within a workspace
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Expense, error)

	// FindAllForWorkspace finds expenses for a workspace with filtering
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter RecordFilter) (*shared.Paginated[Expense], error)

	// FindByStatus finds expenses in the given status for a workspace
	FindByStatus(ctx context.Context, workspaceID uuid.UUID, status AmountsStatus) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, expense *Expense) error

	// DeleteForWorkspace deletes an expense within a workspace
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error

	// SumForWorkspace totals finalized expenses in a date range
	SumForWorkspace(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (RecordTotals, error)
}

// IncomeRepository defines the interface for income persistence
type IncomeRepository interface {
	// FindByIDForWorkspace finds an income by ID within a workspace
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Income, error)

	// FindAllForWorkspace finds incomes for a workspace with filtering
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter RecordFilter) (*shared.Paginated[Income], error)

	// FindByInvoice finds incomes linked to an invoice
	FindByInvoice(ctx context.Context, workspaceID, invoiceID uuid.UUID) ([]Income, error)

	// Save creates or updates an income
	Save(ctx context.Context, income *Income) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, income *Income) error

	// DeleteForWorkspace deletes an income within a workspace
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error

	// SumForWorkspace totals finalized incomes in a date range
	SumForWorkspace(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (RecordTotals, error)
}

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	CustomerID *uuid.UUID // Filter by customer
	Cancelled  *bool      // Filter by cancellation
	Paid       *bool      // Filter by presence of a payment date
	DueBefore  *time.Time // Filter by due date upper bound
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForWorkspace finds an invoice by ID within a workspace
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Invoice, error)

	// FindAllForWorkspace finds invoices for a workspace with filtering
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter InvoiceFilter) (*shared.Paginated[Invoice], error)

	// FindOverdue finds sent, unpaid, uncancelled invoices due before the given instant
	FindOverdue(ctx context.Context, workspaceID uuid.UUID, asOf time.Time) ([]Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// DeleteForWorkspace deletes an invoice within a workspace
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Customer, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (*shared.Paginated[Customer], error)
	Save(ctx context.Context, customer *Customer) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Category, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, categoryType *CategoryType) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// TaxRepository defines the interface for tax rate persistence
type TaxRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Tax, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Tax, error)
	Save(ctx context.Context, tax *Tax) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}

// DocumentRepository defines the interface for document metadata persistence
type DocumentRepository interface {
	FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*Document, error)
	FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (*shared.Paginated[Document], error)
	Save(ctx context.Context, document *Document) error
	DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error
}
