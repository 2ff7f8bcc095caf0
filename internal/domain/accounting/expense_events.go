package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// ExpenseCreatedEvent is raised when a new expense is created
type ExpenseCreatedEvent struct {
	shared.BaseDomainEvent
	ExpenseID        uuid.UUID            `json:"expense_id"`
	Title            string               `json:"title"`
	CategoryID       uuid.UUID            `json:"category_id"`
	OriginalCurrency valueobject.Currency `json:"original_currency"`
	OriginalAmount   valueobject.Amount   `json:"original_amount"`
	DatePaid         time.Time            `json:"date_paid"`
	Status           AmountsStatus        `json:"status"`
}

// EventType returns the event type name
func (e *ExpenseCreatedEvent) EventType() string {
	return "ExpenseCreated"
}

// NewExpenseCreatedEvent creates a new ExpenseCreatedEvent
func NewExpenseCreatedEvent(expense *Expense) *ExpenseCreatedEvent {
	return &ExpenseCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("ExpenseCreated", "Expense", expense.ID, expense.WorkspaceID),
		ExpenseID:        expense.ID,
		Title:            expense.Title,
		CategoryID:       expense.CategoryID,
		OriginalCurrency: expense.OriginalCurrency,
		OriginalAmount:   expense.OriginalAmount,
		DatePaid:         expense.DatePaid,
		Status:           expense.Status,
	}
}

// ExpenseUpdatedEvent is raised when an expense is updated and its derived
// amounts have been recomputed
type ExpenseUpdatedEvent struct {
	shared.BaseDomainEvent
	ExpenseID        uuid.UUID            `json:"expense_id"`
	Title            string               `json:"title"`
	OriginalCurrency valueobject.Currency `json:"original_currency"`
	OriginalAmount   valueobject.Amount   `json:"original_amount"`
	Status           AmountsStatus        `json:"status"`
}

// EventType returns the event type name
func (e *ExpenseUpdatedEvent) EventType() string {
	return "ExpenseUpdated"
}

// NewExpenseUpdatedEvent creates a new ExpenseUpdatedEvent
func NewExpenseUpdatedEvent(expense *Expense) *ExpenseUpdatedEvent {
	return &ExpenseUpdatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("ExpenseUpdated", "Expense", expense.ID, expense.WorkspaceID),
		ExpenseID:        expense.ID,
		Title:            expense.Title,
		OriginalCurrency: expense.OriginalCurrency,
		OriginalAmount:   expense.OriginalAmount,
		Status:           expense.Status,
	}
}
