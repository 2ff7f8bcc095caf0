package accounting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the derived status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"     // Not yet sent to the customer
	InvoiceStatusSent      InvoiceStatus = "SENT"      // Sent, awaiting payment
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"   // Sent, unpaid, due date passed
	InvoiceStatusPaid      InvoiceStatus = "PAID"      // Payment received
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED" // Cancelled
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusOverdue,
		InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// InvoiceInput carries the user-editable fields of an invoice.
type InvoiceInput struct {
	CustomerID  uuid.UUID
	Title       string
	Currency    valueobject.Currency
	Amount      valueobject.Amount
	DateIssued  time.Time
	DueDate     time.Time
	Notes       string
	DocumentIDs []uuid.UUID
}

// Invoice represents an invoice aggregate root. Unlike expense and income
// records, its status is not stored: it is derived from the sent/paid/
// cancelled markers and the due date against an injected clock.
type Invoice struct {
	shared.WorkspaceAggregateRoot
	CustomerID  uuid.UUID            `json:"customer_id"`
	Title       string               `json:"title"`
	Currency    valueobject.Currency `json:"currency"`
	Amount      valueobject.Amount   `json:"amount"`
	DateIssued  time.Time            `json:"date_issued"`
	DueDate     time.Time            `json:"due_date"`
	DateSent    *time.Time           `json:"date_sent"`
	DatePaid    *time.Time           `json:"date_paid"`
	Cancelled   bool                 `json:"cancelled"`
	Notes       string               `json:"notes"`
	DocumentIDs []uuid.UUID          `json:"document_ids"`
}

// NewInvoice creates a new draft invoice within a workspace.
func NewInvoice(workspaceID uuid.UUID, catalog valueobject.CurrencyCatalog, in InvoiceInput) (*Invoice, error) {
	if err := validateInvoiceInput(catalog, in); err != nil {
		return nil, err
	}

	invoice := &Invoice{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		CustomerID:             in.CustomerID,
		Title:                  in.Title,
		Currency:               in.Currency,
		Amount:                 in.Amount,
		DateIssued:             in.DateIssued,
		DueDate:                in.DueDate,
		Notes:                  in.Notes,
		DocumentIDs:            append([]uuid.UUID(nil), in.DocumentIDs...),
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// Status derives the invoice status at the given clock's current instant.
func (i *Invoice) Status(clock shared.Clock) InvoiceStatus {
	if i.Cancelled {
		return InvoiceStatusCancelled
	}
	if i.DatePaid != nil {
		return InvoiceStatusPaid
	}
	if i.DateSent == nil {
		return InvoiceStatusDraft
	}
	if clock.Now().After(i.DueDate) {
		return InvoiceStatusOverdue
	}
	return InvoiceStatusSent
}

// Update replaces the editable fields. Only draft and sent invoices can be
// edited; paid and cancelled invoices are immutable.
func (i *Invoice) Update(clock shared.Clock, catalog valueobject.CurrencyCatalog, in InvoiceInput) error {
	status := i.Status(clock)
	if status == InvoiceStatusPaid || status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update invoice in %s status", status))
	}
	if err := validateInvoiceInput(catalog, in); err != nil {
		return err
	}

	i.CustomerID = in.CustomerID
	i.Title = in.Title
	i.Currency = in.Currency
	i.Amount = in.Amount
	i.DateIssued = in.DateIssued
	i.DueDate = in.DueDate
	i.Notes = in.Notes
	i.DocumentIDs = append([]uuid.UUID(nil), in.DocumentIDs...)
	i.UpdatedAt = clock.Now()
	i.IncrementVersion()

	return nil
}

// MarkSent records that the invoice was sent to the customer.
func (i *Invoice) MarkSent(clock shared.Clock) error {
	status := i.Status(clock)
	if status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", status))
	}

	now := clock.Now()
	i.DateSent = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceSentEvent(i))

	return nil
}

// MarkPaid records that payment was received.
func (i *Invoice) MarkPaid(clock shared.Clock) error {
	status := i.Status(clock)
	if status != InvoiceStatusSent && status != InvoiceStatusOverdue {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark invoice paid in %s status", status))
	}

	now := clock.Now()
	i.DatePaid = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoicePaidEvent(i))

	return nil
}

// Cancel cancels the invoice. Paid invoices cannot be cancelled.
func (i *Invoice) Cancel(clock shared.Clock) error {
	status := i.Status(clock)
	if status == InvoiceStatusPaid || status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", status))
	}

	i.Cancelled = true
	i.UpdatedAt = clock.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceCancelledEvent(i))

	return nil
}

func validateInvoiceInput(catalog valueobject.CurrencyCatalog, in InvoiceInput) error {
	if in.CustomerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if in.Title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(in.Title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}
	if in.Amount < 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if _, err := catalog.Precision(in.Currency); err != nil {
		return err
	}
	if in.DateIssued.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Issue date cannot be empty")
	}
	if in.DueDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Due date cannot be empty")
	}
	if in.DueDate.Before(in.DateIssued) {
		return shared.NewDomainError("INVALID_DATE", "Due date cannot be before issue date")
	}
	return nil
}
