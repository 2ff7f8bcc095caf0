package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// IncomeService provides application-level income operations
type IncomeService struct {
	incomeRepo  accounting.IncomeRepository
	invoiceRepo accounting.InvoiceRepository
	taxRepo     accounting.TaxRepository
	settings    SettingsProvider
	engine      *accounting.AmountsEngine
	catalog     valueobject.CurrencyCatalog
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(
	incomeRepo accounting.IncomeRepository,
	invoiceRepo accounting.InvoiceRepository,
	taxRepo accounting.TaxRepository,
	settings SettingsProvider,
	engine *accounting.AmountsEngine,
	catalog valueobject.CurrencyCatalog,
) *IncomeService {
	return &IncomeService{
		incomeRepo:  incomeRepo,
		invoiceRepo: invoiceRepo,
		taxRepo:     taxRepo,
		settings:    settings,
		engine:      engine,
		catalog:     catalog,
	}
}

// IncomeRequest represents a request to create or update an income record
type IncomeRequest struct {
	Title                               string      `json:"title" binding:"required,max=255"`
	CategoryID                          uuid.UUID   `json:"category_id" binding:"required"`
	DateReceived                        time.Time   `json:"date_received" binding:"required"`
	Currency                            string      `json:"currency" binding:"required,len=3"`
	OriginalAmount                      string      `json:"original_amount" binding:"required"`
	ConvertedAmount                     *string     `json:"converted_amount"`
	UseDifferentExchangeRateForTaxation bool        `json:"use_different_exchange_rate_for_taxation"`
	TaxationAmount                      *string     `json:"taxation_amount"`
	PercentOnBusiness                   *int        `json:"percent_on_business" binding:"omitempty,min=0,max=100"`
	TaxID                               *uuid.UUID  `json:"tax_id"`
	InvoiceID                           *uuid.UUID  `json:"invoice_id"`
	Notes                               string      `json:"notes"`
	DocumentIDs                         []uuid.UUID `json:"document_ids"`
	Locale                              string      `json:"locale"`
	CreatedBy                           *uuid.UUID  `json:"-"` // Set from JWT context, not from request body
}

// IncomeResponse represents an income record in API responses
type IncomeResponse struct {
	ID                                  uuid.UUID   `json:"id"`
	WorkspaceID                         uuid.UUID   `json:"workspace_id"`
	Title                               string      `json:"title"`
	CategoryID                          uuid.UUID   `json:"category_id"`
	DateReceived                        time.Time   `json:"date_received"`
	Currency                            string      `json:"currency"`
	OriginalAmount                      int64       `json:"original_amount"`
	OriginalAmountFormatted             string      `json:"original_amount_formatted"`
	ConvertedAmount                     *int64      `json:"converted_amount,omitempty"`
	UseDifferentExchangeRateForTaxation bool        `json:"use_different_exchange_rate_for_taxation"`
	TaxationAmount                      *int64      `json:"taxation_amount,omitempty"`
	PercentOnBusiness                   int         `json:"percent_on_business"`
	TaxID                               *uuid.UUID  `json:"tax_id,omitempty"`
	TaxRateBps                          *int64      `json:"tax_rate_bps,omitempty"`
	TaxAmount                           *int64      `json:"tax_amount,omitempty"`
	InvoiceID                           *uuid.UUID  `json:"invoice_id,omitempty"`
	ReportingAmount                     *int64      `json:"reporting_amount,omitempty"`
	ReportingAmountAdjusted             *int64      `json:"reporting_amount_adjusted,omitempty"`
	TaxableAmount                       *int64      `json:"taxable_amount,omitempty"`
	TaxableAmountAdjusted               *int64      `json:"taxable_amount_adjusted,omitempty"`
	Status                              string      `json:"status"`
	Notes                               string      `json:"notes,omitempty"`
	DocumentIDs                         []uuid.UUID `json:"document_ids,omitempty"`
	CreatedAt                           time.Time   `json:"created_at"`
	UpdatedAt                           time.Time   `json:"updated_at"`
	Version                             int         `json:"version"`
}

// IncomeListFilter defines filtering options for income list queries
type IncomeListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Currency   string     `form:"currency"`
	Status     string     `form:"status"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// CreateIncome creates a new income record in the workspace
func (s *IncomeService) CreateIncome(ctx context.Context, workspaceID uuid.UUID, req IncomeRequest) (*IncomeResponse, error) {
	in, defaultCurrency, err := s.buildInput(ctx, workspaceID, req)
	if err != nil {
		return nil, err
	}

	if in.TaxID != nil {
		rate, err := s.resolveTaxRate(ctx, workspaceID, *in.TaxID)
		if err != nil {
			return nil, err
		}
		in.TaxRateBps = &rate
	}

	if in.InvoiceID != nil {
		if err := s.checkInvoice(ctx, workspaceID, *in.InvoiceID); err != nil {
			return nil, err
		}
	}

	income, err := accounting.NewIncome(workspaceID, defaultCurrency, s.engine, in)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		income.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, err
	}

	return s.toResponse(income, req.Locale), nil
}

// GetIncome gets an income record by ID
func (s *IncomeService) GetIncome(ctx context.Context, workspaceID, id uuid.UUID) (*IncomeResponse, error) {
	income, err := s.incomeRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if income == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Income not found")
	}
	return s.toResponse(income, ""), nil
}

// UpdateIncome updates an income record and recomputes its derived amounts
func (s *IncomeService) UpdateIncome(ctx context.Context, workspaceID, id uuid.UUID, req IncomeRequest) (*IncomeResponse, error) {
	income, err := s.incomeRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if income == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Income not found")
	}

	in, defaultCurrency, err := s.buildInput(ctx, workspaceID, req)
	if err != nil {
		return nil, err
	}

	if in.TaxID != nil {
		rate, err := s.resolveTaxRate(ctx, workspaceID, *in.TaxID)
		if err != nil {
			return nil, err
		}
		in.TaxRateBps = &rate
	}

	if in.InvoiceID != nil {
		if err := s.checkInvoice(ctx, workspaceID, *in.InvoiceID); err != nil {
			return nil, err
		}
	}

	if err := income.Update(defaultCurrency, s.engine, in); err != nil {
		return nil, err
	}

	if err := s.incomeRepo.SaveWithLock(ctx, income); err != nil {
		return nil, err
	}

	return s.toResponse(income, req.Locale), nil
}

// ListIncomes lists income records with filtering and pagination
func (s *IncomeService) ListIncomes(ctx context.Context, workspaceID uuid.UUID, filter IncomeListFilter) (*shared.Paginated[IncomeResponse], error) {
	domainFilter := accounting.RecordFilter{
		CategoryID: filter.CategoryID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir

	if filter.Currency != "" {
		currency := valueobject.Currency(filter.Currency)
		domainFilter.Currency = &currency
	}
	if filter.Status != "" {
		status := accounting.AmountsStatus(filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown status filter")
		}
		domainFilter.Status = &status
	}

	page, err := s.incomeRepo.FindAllForWorkspace(ctx, workspaceID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]IncomeResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *s.toResponse(&page.Items[i], ""))
	}

	return &shared.Paginated[IncomeResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// DeleteIncome deletes an income record
func (s *IncomeService) DeleteIncome(ctx context.Context, workspaceID, id uuid.UUID) error {
	income, err := s.incomeRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if income == nil {
		return shared.NewDomainError("NOT_FOUND", "Income not found")
	}
	return s.incomeRepo.DeleteForWorkspace(ctx, workspaceID, id)
}

func (s *IncomeService) buildInput(ctx context.Context, workspaceID uuid.UUID, req IncomeRequest) (accounting.IncomeInput, valueobject.Currency, error) {
	currency := valueobject.Currency(req.Currency)
	tag := parseLocale(req.Locale)

	defaultCurrency, err := s.settings.DefaultCurrency(ctx, workspaceID)
	if err != nil {
		return accounting.IncomeInput{}, "", err
	}

	original, err := valueobject.ParseAmount(req.OriginalAmount, currency, s.catalog, tag)
	if err != nil {
		return accounting.IncomeInput{}, "", err
	}

	in := accounting.IncomeInput{
		Title:                               req.Title,
		CategoryID:                          req.CategoryID,
		DateReceived:                        req.DateReceived,
		OriginalCurrency:                    currency,
		OriginalAmount:                      original,
		UseDifferentExchangeRateForTaxation: req.UseDifferentExchangeRateForTaxation,
		PercentOnBusiness:                   100,
		TaxID:                               req.TaxID,
		InvoiceID:                           req.InvoiceID,
		Notes:                               req.Notes,
		DocumentIDs:                         req.DocumentIDs,
	}
	if req.PercentOnBusiness != nil {
		in.PercentOnBusiness = *req.PercentOnBusiness
	}

	if req.ConvertedAmount != nil {
		amount, err := valueobject.ParseAmount(*req.ConvertedAmount, defaultCurrency, s.catalog, tag)
		if err != nil {
			return accounting.IncomeInput{}, "", err
		}
		in.ConvertedAmount = &amount
	}
	if req.TaxationAmount != nil {
		amount, err := valueobject.ParseAmount(*req.TaxationAmount, defaultCurrency, s.catalog, tag)
		if err != nil {
			return accounting.IncomeInput{}, "", err
		}
		in.TaxationAmount = &amount
	}

	return in, defaultCurrency, nil
}

func (s *IncomeService) checkInvoice(ctx context.Context, workspaceID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByIDForWorkspace(ctx, workspaceID, invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return nil
}

func (s *IncomeService) resolveTaxRate(ctx context.Context, workspaceID, taxID uuid.UUID) (int64, error) {
	tax, err := s.taxRepo.FindByIDForWorkspace(ctx, workspaceID, taxID)
	if err != nil {
		return 0, err
	}
	if tax == nil {
		return 0, shared.NewDomainError("NOT_FOUND", "Tax not found")
	}
	return tax.RateBps, nil
}

func (s *IncomeService) toResponse(income *accounting.Income, locale string) *IncomeResponse {
	formatted, err := valueobject.FormatAmount(income.OriginalAmount, income.OriginalCurrency, s.catalog, parseLocale(locale))
	if err != nil {
		formatted = ""
	}

	return &IncomeResponse{
		ID:                                  income.ID,
		WorkspaceID:                         income.WorkspaceID,
		Title:                               income.Title,
		CategoryID:                          income.CategoryID,
		DateReceived:                        income.DateReceived,
		Currency:                            income.OriginalCurrency.String(),
		OriginalAmount:                      int64(income.OriginalAmount),
		OriginalAmountFormatted:             formatted,
		ConvertedAmount:                     amountPtr(income.ConvertedAmount),
		UseDifferentExchangeRateForTaxation: income.UseDifferentExchangeRateForTaxation,
		TaxationAmount:                      amountPtr(income.TaxationAmount),
		PercentOnBusiness:                   income.PercentOnBusiness,
		TaxID:                               income.TaxID,
		TaxRateBps:                          income.TaxRateBps,
		TaxAmount:                           amountPtr(income.TaxAmount),
		InvoiceID:                           income.InvoiceID,
		ReportingAmount:                     amountPtr(income.ReportingAmount),
		ReportingAmountAdjusted:             amountPtr(income.ReportingAmountAdjusted),
		TaxableAmount:                       amountPtr(income.TaxableAmount),
		TaxableAmountAdjusted:               amountPtr(income.TaxableAmountAdjusted),
		Status:                              income.Status.String(),
		Notes:                               income.Notes,
		DocumentIDs:                         income.DocumentIDs,
		CreatedAt:                           income.CreatedAt,
		UpdatedAt:                           income.UpdatedAt,
		Version:                             income.Version,
	}
}
