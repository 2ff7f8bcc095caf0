package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// IncomeCreatedEvent is raised when a new income record is created
type IncomeCreatedEvent struct {
	shared.BaseDomainEvent
	IncomeID         uuid.UUID            `json:"income_id"`
	Title            string               `json:"title"`
	CategoryID       uuid.UUID            `json:"category_id"`
	OriginalCurrency valueobject.Currency `json:"original_currency"`
	OriginalAmount   valueobject.Amount   `json:"original_amount"`
	DateReceived     time.Time            `json:"date_received"`
	InvoiceID        *uuid.UUID           `json:"invoice_id,omitempty"`
	Status           AmountsStatus        `json:"status"`
}

// EventType returns the event type name
func (e *IncomeCreatedEvent) EventType() string {
	return "IncomeCreated"
}

// NewIncomeCreatedEvent creates a new IncomeCreatedEvent
func NewIncomeCreatedEvent(income *Income) *IncomeCreatedEvent {
	return &IncomeCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("IncomeCreated", "Income", income.ID, income.WorkspaceID),
		IncomeID:         income.ID,
		Title:            income.Title,
		CategoryID:       income.CategoryID,
		OriginalCurrency: income.OriginalCurrency,
		OriginalAmount:   income.OriginalAmount,
		DateReceived:     income.DateReceived,
		InvoiceID:        income.InvoiceID,
		Status:           income.Status,
	}
}

// IncomeUpdatedEvent is raised when an income record is updated
type IncomeUpdatedEvent struct {
	shared.BaseDomainEvent
	IncomeID         uuid.UUID            `json:"income_id"`
	Title            string               `json:"title"`
	OriginalCurrency valueobject.Currency `json:"original_currency"`
	OriginalAmount   valueobject.Amount   `json:"original_amount"`
	Status           AmountsStatus        `json:"status"`
}

// EventType returns the event type name
func (e *IncomeUpdatedEvent) EventType() string {
	return "IncomeUpdated"
}

// NewIncomeUpdatedEvent creates a new IncomeUpdatedEvent
func NewIncomeUpdatedEvent(income *Income) *IncomeUpdatedEvent {
	return &IncomeUpdatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("IncomeUpdated", "Income", income.ID, income.WorkspaceID),
		IncomeID:         income.ID,
		Title:            income.Title,
		OriginalCurrency: income.OriginalCurrency,
		OriginalAmount:   income.OriginalAmount,
		Status:           income.Status,
	}
}
