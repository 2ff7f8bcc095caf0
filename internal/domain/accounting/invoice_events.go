package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// InvoiceCreatedEvent is raised when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID            `json:"invoice_id"`
	CustomerID uuid.UUID            `json:"customer_id"`
	Title      string               `json:"title"`
	Currency   valueobject.Currency `json:"currency"`
	Amount     valueobject.Amount   `json:"amount"`
	DateIssued time.Time            `json:"date_issued"`
	DueDate    time.Time            `json:"due_date"`
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return "InvoiceCreated"
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(invoice *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceCreated", "Invoice", invoice.ID, invoice.WorkspaceID),
		InvoiceID:       invoice.ID,
		CustomerID:      invoice.CustomerID,
		Title:           invoice.Title,
		Currency:        invoice.Currency,
		Amount:          invoice.Amount,
		DateIssued:      invoice.DateIssued,
		DueDate:         invoice.DueDate,
	}
}

// InvoiceSentEvent is raised when an invoice is sent to the customer
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID `json:"invoice_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	DateSent   time.Time `json:"date_sent"`
}

// EventType returns the event type name
func (e *InvoiceSentEvent) EventType() string {
	return "InvoiceSent"
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(invoice *Invoice) *InvoiceSentEvent {
	dateSent := time.Now()
	if invoice.DateSent != nil {
		dateSent = *invoice.DateSent
	}
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceSent", "Invoice", invoice.ID, invoice.WorkspaceID),
		InvoiceID:       invoice.ID,
		CustomerID:      invoice.CustomerID,
		DateSent:        dateSent,
	}
}

// InvoicePaidEvent is raised when payment for an invoice is received
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID            `json:"invoice_id"`
	CustomerID uuid.UUID            `json:"customer_id"`
	Currency   valueobject.Currency `json:"currency"`
	Amount     valueobject.Amount   `json:"amount"`
	DatePaid   time.Time            `json:"date_paid"`
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return "InvoicePaid"
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(invoice *Invoice) *InvoicePaidEvent {
	datePaid := time.Now()
	if invoice.DatePaid != nil {
		datePaid = *invoice.DatePaid
	}
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoicePaid", "Invoice", invoice.ID, invoice.WorkspaceID),
		InvoiceID:       invoice.ID,
		CustomerID:      invoice.CustomerID,
		Currency:        invoice.Currency,
		Amount:          invoice.Amount,
		DatePaid:        datePaid,
	}
}

// InvoiceCancelledEvent is raised when an invoice is cancelled
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID `json:"invoice_id"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// EventType returns the event type name
func (e *InvoiceCancelledEvent) EventType() string {
	return "InvoiceCancelled"
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(invoice *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceCancelled", "Invoice", invoice.ID, invoice.WorkspaceID),
		InvoiceID:       invoice.ID,
		CustomerID:      invoice.CustomerID,
	}
}
