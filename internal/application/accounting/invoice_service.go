package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// InvoiceService provides application-level invoice operations
type InvoiceService struct {
	invoiceRepo  accounting.InvoiceRepository
	customerRepo accounting.CustomerRepository
	catalog      valueobject.CurrencyCatalog
	clock        shared.Clock
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo accounting.InvoiceRepository,
	customerRepo accounting.CustomerRepository,
	catalog valueobject.CurrencyCatalog,
	clock shared.Clock,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		catalog:      catalog,
		clock:        clock,
	}
}

// InvoiceRequest represents a request to create or update an invoice
type InvoiceRequest struct {
	CustomerID  uuid.UUID   `json:"customer_id" binding:"required"`
	Title       string      `json:"title" binding:"required,max=255"`
	Currency    string      `json:"currency" binding:"required,len=3"`
	Amount      string      `json:"amount" binding:"required"`
	DateIssued  time.Time   `json:"date_issued" binding:"required"`
	DueDate     time.Time   `json:"due_date" binding:"required"`
	Notes       string      `json:"notes"`
	DocumentIDs []uuid.UUID `json:"document_ids"`
	Locale      string      `json:"locale"`
	CreatedBy   *uuid.UUID  `json:"-"` // Set from JWT context, not from request body
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID   `json:"id"`
	WorkspaceID     uuid.UUID   `json:"workspace_id"`
	CustomerID      uuid.UUID   `json:"customer_id"`
	Title           string      `json:"title"`
	Currency        string      `json:"currency"`
	Amount          int64       `json:"amount"`
	AmountFormatted string      `json:"amount_formatted"`
	DateIssued      time.Time   `json:"date_issued"`
	DueDate         time.Time   `json:"due_date"`
	DateSent        *time.Time  `json:"date_sent,omitempty"`
	DatePaid        *time.Time  `json:"date_paid,omitempty"`
	Status          string      `json:"status"`
	Notes           string      `json:"notes,omitempty"`
	DocumentIDs     []uuid.UUID `json:"document_ids,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Version         int         `json:"version"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	Search     string     `form:"search"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// CreateInvoice creates a new draft invoice
func (s *InvoiceService) CreateInvoice(ctx context.Context, workspaceID uuid.UUID, req InvoiceRequest) (*InvoiceResponse, error) {
	in, err := s.buildInput(ctx, workspaceID, req)
	if err != nil {
		return nil, err
	}

	invoice, err := accounting.NewInvoice(workspaceID, s.catalog, in)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		invoice.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return s.toResponse(invoice, req.Locale), nil
}

// GetInvoice gets an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, workspaceID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.findInvoice(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(invoice, ""), nil
}

// UpdateInvoice updates an invoice's editable fields
func (s *InvoiceService) UpdateInvoice(ctx context.Context, workspaceID, id uuid.UUID, req InvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.findInvoice(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	in, err := s.buildInput(ctx, workspaceID, req)
	if err != nil {
		return nil, err
	}

	if err := invoice.Update(s.clock, s.catalog, in); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	return s.toResponse(invoice, req.Locale), nil
}

// SendInvoice marks the invoice as sent
func (s *InvoiceService) SendInvoice(ctx context.Context, workspaceID, id uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, workspaceID, id, func(invoice *accounting.Invoice) error {
		return invoice.MarkSent(s.clock)
	})
}

// PayInvoice marks the invoice as paid
func (s *InvoiceService) PayInvoice(ctx context.Context, workspaceID, id uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, workspaceID, id, func(invoice *accounting.Invoice) error {
		return invoice.MarkPaid(s.clock)
	})
}

// CancelInvoice cancels the invoice
func (s *InvoiceService) CancelInvoice(ctx context.Context, workspaceID, id uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, workspaceID, id, func(invoice *accounting.Invoice) error {
		return invoice.Cancel(s.clock)
	})
}

// ListInvoices lists invoices with filtering and pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, workspaceID uuid.UUID, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	domainFilter := accounting.InvoiceFilter{
		CustomerID: filter.CustomerID,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	// Status is derived, so status filters translate to marker predicates.
	switch accounting.InvoiceStatus(filter.Status) {
	case "":
	case accounting.InvoiceStatusCancelled:
		yes := true
		domainFilter.Cancelled = &yes
	case accounting.InvoiceStatusPaid:
		no, yes := false, true
		domainFilter.Cancelled = &no
		domainFilter.Paid = &yes
	case accounting.InvoiceStatusOverdue:
		no := false
		now := s.clock.Now()
		domainFilter.Cancelled = &no
		domainFilter.Paid = &no
		domainFilter.DueBefore = &now
	case accounting.InvoiceStatusDraft, accounting.InvoiceStatusSent:
		no := false
		domainFilter.Cancelled = &no
		domainFilter.Paid = &no
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown status filter")
	}

	page, err := s.invoiceRepo.FindAllForWorkspace(ctx, workspaceID, domainFilter)
	if err != nil {
		return nil, err
	}

	wantStatus := accounting.InvoiceStatus(filter.Status)
	items := make([]InvoiceResponse, 0, len(page.Items))
	for i := range page.Items {
		resp := s.toResponse(&page.Items[i], "")
		// DRAFT vs SENT (and SENT vs OVERDUE) are indistinguishable at the
		// query level; finish the cut here.
		if wantStatus != "" && resp.Status != wantStatus.String() {
			continue
		}
		items = append(items, *resp)
	}

	return &shared.Paginated[InvoiceResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// DeleteInvoice deletes an invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, workspaceID, id uuid.UUID) error {
	if _, err := s.findInvoice(ctx, workspaceID, id); err != nil {
		return err
	}
	return s.invoiceRepo.DeleteForWorkspace(ctx, workspaceID, id)
}

func (s *InvoiceService) transition(ctx context.Context, workspaceID, id uuid.UUID, op func(*accounting.Invoice) error) (*InvoiceResponse, error) {
	invoice, err := s.findInvoice(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := op(invoice); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	return s.toResponse(invoice, ""), nil
}

func (s *InvoiceService) findInvoice(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return invoice, nil
}

func (s *InvoiceService) buildInput(ctx context.Context, workspaceID uuid.UUID, req InvoiceRequest) (accounting.InvoiceInput, error) {
	customer, err := s.customerRepo.FindByIDForWorkspace(ctx, workspaceID, req.CustomerID)
	if err != nil {
		return accounting.InvoiceInput{}, err
	}
	if customer == nil {
		return accounting.InvoiceInput{}, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	currency := valueobject.Currency(req.Currency)
	amount, err := valueobject.ParseAmount(req.Amount, currency, s.catalog, parseLocale(req.Locale))
	if err != nil {
		return accounting.InvoiceInput{}, err
	}

	return accounting.InvoiceInput{
		CustomerID:  req.CustomerID,
		Title:       req.Title,
		Currency:    currency,
		Amount:      amount,
		DateIssued:  req.DateIssued,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		DocumentIDs: req.DocumentIDs,
	}, nil
}

func (s *InvoiceService) toResponse(invoice *accounting.Invoice, locale string) *InvoiceResponse {
	formatted, err := valueobject.FormatAmount(invoice.Amount, invoice.Currency, s.catalog, parseLocale(locale))
	if err != nil {
		formatted = ""
	}

	return &InvoiceResponse{
		ID:              invoice.ID,
		WorkspaceID:     invoice.WorkspaceID,
		CustomerID:      invoice.CustomerID,
		Title:           invoice.Title,
		Currency:        invoice.Currency.String(),
		Amount:          int64(invoice.Amount),
		AmountFormatted: formatted,
		DateIssued:      invoice.DateIssued,
		DueDate:         invoice.DueDate,
		DateSent:        invoice.DateSent,
		DatePaid:        invoice.DatePaid,
		Status:          invoice.Status(s.clock).String(),
		Notes:           invoice.Notes,
		DocumentIDs:     invoice.DocumentIDs,
		CreatedAt:       invoice.CreatedAt,
		UpdatedAt:       invoice.UpdatedAt,
		Version:         invoice.Version,
	}
}
