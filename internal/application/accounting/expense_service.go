// Package accounting provides application-level services over the accounting
// domain: expenses, incomes, invoices, customers, categories, taxes,
// documents and statistics.
package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"golang.org/x/text/language"
)

// SettingsProvider resolves workspace settings consumed on every record
// write. Production wiring backs it with a redis cache over the workspace
// repository.
type SettingsProvider interface {
	DefaultCurrency(ctx context.Context, workspaceID uuid.UUID) (valueobject.Currency, error)
}

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenseRepo accounting.ExpenseRepository
	taxRepo     accounting.TaxRepository
	settings    SettingsProvider
	engine      *accounting.AmountsEngine
	catalog     valueobject.CurrencyCatalog
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo accounting.ExpenseRepository,
	taxRepo accounting.TaxRepository,
	settings SettingsProvider,
	engine *accounting.AmountsEngine,
	catalog valueobject.CurrencyCatalog,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		taxRepo:     taxRepo,
		settings:    settings,
		engine:      engine,
		catalog:     catalog,
	}
}

// ExpenseRequest represents a request to create or update an expense.
// Monetary amounts arrive as locale-formatted decimal strings and are parsed
// at the currency's precision; excess fraction digits are rejected.
type ExpenseRequest struct {
	Title                               string     `json:"title" binding:"required,max=255"`
	CategoryID                          uuid.UUID  `json:"category_id" binding:"required"`
	DatePaid                            time.Time  `json:"date_paid" binding:"required"`
	Currency                            string     `json:"currency" binding:"required,len=3"`
	OriginalAmount                      string     `json:"original_amount" binding:"required"`
	ConvertedAmount                     *string    `json:"converted_amount"`
	UseDifferentExchangeRateForTaxation bool       `json:"use_different_exchange_rate_for_taxation"`
	TaxationAmount                      *string    `json:"taxation_amount"`
	PercentOnBusiness                   *int       `json:"percent_on_business" binding:"omitempty,min=0,max=100"`
	TaxID                               *uuid.UUID `json:"tax_id"`
	Notes                               string     `json:"notes"`
	DocumentIDs                         []uuid.UUID `json:"document_ids"`
	Locale                              string     `json:"locale"`
	CreatedBy                           *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// ExpenseResponse represents an expense in API responses. Amounts are minor
// units; the formatted fields carry the locale rendering of the same values.
type ExpenseResponse struct {
	ID                                  uuid.UUID   `json:"id"`
	WorkspaceID                         uuid.UUID   `json:"workspace_id"`
	Title                               string      `json:"title"`
	CategoryID                          uuid.UUID   `json:"category_id"`
	DatePaid                            time.Time   `json:"date_paid"`
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

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
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

// CreateExpense creates a new expense in the workspace
func (s *ExpenseService) CreateExpense(ctx context.Context, workspaceID uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
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

	expense, err := accounting.NewExpense(workspaceID, defaultCurrency, s.engine, in)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		expense.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	return s.toResponse(expense, req.Locale), nil
}

// GetExpense gets an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, workspaceID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	return s.toResponse(expense, ""), nil
}

// UpdateExpense updates an expense and recomputes its derived amounts
func (s *ExpenseService) UpdateExpense(ctx context.Context, workspaceID, id uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
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

	if err := expense.Update(defaultCurrency, s.engine, in); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.SaveWithLock(ctx, expense); err != nil {
		return nil, err
	}

	return s.toResponse(expense, req.Locale), nil
}

// ListExpenses lists expenses with filtering and pagination
func (s *ExpenseService) ListExpenses(ctx context.Context, workspaceID uuid.UUID, filter ExpenseListFilter) (*shared.Paginated[ExpenseResponse], error) {
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

	page, err := s.expenseRepo.FindAllForWorkspace(ctx, workspaceID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ExpenseResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *s.toResponse(&page.Items[i], ""))
	}

	return &shared.Paginated[ExpenseResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, workspaceID, id uuid.UUID) error {
	expense, err := s.expenseRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	return s.expenseRepo.DeleteForWorkspace(ctx, workspaceID, id)
}

func (s *ExpenseService) buildInput(ctx context.Context, workspaceID uuid.UUID, req ExpenseRequest) (accounting.ExpenseInput, valueobject.Currency, error) {
	currency := valueobject.Currency(req.Currency)
	tag := parseLocale(req.Locale)

	defaultCurrency, err := s.settings.DefaultCurrency(ctx, workspaceID)
	if err != nil {
		return accounting.ExpenseInput{}, "", err
	}

	original, err := valueobject.ParseAmount(req.OriginalAmount, currency, s.catalog, tag)
	if err != nil {
		return accounting.ExpenseInput{}, "", err
	}

	in := accounting.ExpenseInput{
		Title:                               req.Title,
		CategoryID:                          req.CategoryID,
		DatePaid:                            req.DatePaid,
		OriginalCurrency:                    currency,
		OriginalAmount:                      original,
		UseDifferentExchangeRateForTaxation: req.UseDifferentExchangeRateForTaxation,
		PercentOnBusiness:                   100,
		TaxID:                               req.TaxID,
		Notes:                               req.Notes,
		DocumentIDs:                         req.DocumentIDs,
	}
	if req.PercentOnBusiness != nil {
		in.PercentOnBusiness = *req.PercentOnBusiness
	}

	// Converted and taxation amounts are denominated in the workspace
	// default currency, so they parse at its precision.
	if req.ConvertedAmount != nil {
		amount, err := valueobject.ParseAmount(*req.ConvertedAmount, defaultCurrency, s.catalog, tag)
		if err != nil {
			return accounting.ExpenseInput{}, "", err
		}
		in.ConvertedAmount = &amount
	}
	if req.TaxationAmount != nil {
		amount, err := valueobject.ParseAmount(*req.TaxationAmount, defaultCurrency, s.catalog, tag)
		if err != nil {
			return accounting.ExpenseInput{}, "", err
		}
		in.TaxationAmount = &amount
	}

	return in, defaultCurrency, nil
}

func (s *ExpenseService) resolveTaxRate(ctx context.Context, workspaceID, taxID uuid.UUID) (int64, error) {
	tax, err := s.taxRepo.FindByIDForWorkspace(ctx, workspaceID, taxID)
	if err != nil {
		return 0, err
	}
	if tax == nil {
		return 0, shared.NewDomainError("NOT_FOUND", "Tax not found")
	}
	return tax.RateBps, nil
}

func (s *ExpenseService) toResponse(expense *accounting.Expense, locale string) *ExpenseResponse {
	formatted, err := valueobject.FormatAmount(expense.OriginalAmount, expense.OriginalCurrency, s.catalog, parseLocale(locale))
	if err != nil {
		formatted = ""
	}

	return &ExpenseResponse{
		ID:                                  expense.ID,
		WorkspaceID:                         expense.WorkspaceID,
		Title:                               expense.Title,
		CategoryID:                          expense.CategoryID,
		DatePaid:                            expense.DatePaid,
		Currency:                            expense.OriginalCurrency.String(),
		OriginalAmount:                      int64(expense.OriginalAmount),
		OriginalAmountFormatted:             formatted,
		ConvertedAmount:                     amountPtr(expense.ConvertedAmount),
		UseDifferentExchangeRateForTaxation: expense.UseDifferentExchangeRateForTaxation,
		TaxationAmount:                      amountPtr(expense.TaxationAmount),
		PercentOnBusiness:                   expense.PercentOnBusiness,
		TaxID:                               expense.TaxID,
		TaxRateBps:                          expense.TaxRateBps,
		TaxAmount:                           amountPtr(expense.TaxAmount),
		ReportingAmount:                     amountPtr(expense.ReportingAmount),
		ReportingAmountAdjusted:             amountPtr(expense.ReportingAmountAdjusted),
		TaxableAmount:                       amountPtr(expense.TaxableAmount),
		TaxableAmountAdjusted:               amountPtr(expense.TaxableAmountAdjusted),
		Status:                              expense.Status.String(),
		Notes:                               expense.Notes,
		DocumentIDs:                         expense.DocumentIDs,
		CreatedAt:                           expense.CreatedAt,
		UpdatedAt:                           expense.UpdatedAt,
		Version:                             expense.Version,
	}
}

func amountPtr(a *valueobject.Amount) *int64 {
	if a == nil {
		return nil
	}
	v := int64(*a)
	return &v
}

func parseLocale(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}
