package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// StatisticsService computes workspace-level totals over finalized records.
// Pending records are excluded from every figure: until a conversion is
// supplied there is nothing in the default currency to add up.
type StatisticsService struct {
	expenseRepo accounting.ExpenseRepository
	incomeRepo  accounting.IncomeRepository
	settings    SettingsProvider
	catalog     valueobject.CurrencyCatalog
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(
	expenseRepo accounting.ExpenseRepository,
	incomeRepo accounting.IncomeRepository,
	settings SettingsProvider,
	catalog valueobject.CurrencyCatalog,
) *StatisticsService {
	return &StatisticsService{
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
		settings:    settings,
		catalog:     catalog,
	}
}

// PeriodStatisticsRequest defines the date range for summary queries
type PeriodStatisticsRequest struct {
	From   time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To     time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	Locale string    `form:"locale"`
}

// PeriodStatisticsResponse summarizes bookkeeping totals for a date range.
// All amounts are reporting-adjusted sums in the workspace default currency.
type PeriodStatisticsResponse struct {
	From                    time.Time `json:"from"`
	To                      time.Time `json:"to"`
	Currency                string    `json:"currency"`
	IncomeTotal             int64     `json:"income_total"`
	IncomeTotalFormatted    string    `json:"income_total_formatted"`
	ExpenseTotal            int64     `json:"expense_total"`
	ExpenseTotalFormatted   string    `json:"expense_total_formatted"`
	NetTotal                int64     `json:"net_total"`
	NetTotalFormatted       string    `json:"net_total_formatted"`
	FinalizedIncomeRecords  int64     `json:"finalized_income_records"`
	FinalizedExpenseRecords int64     `json:"finalized_expense_records"`
}

// TaxStatisticsResponse summarizes the income tax view for a date range.
// Taxable figures use the taxable-adjusted amounts, which may differ from the
// reporting ones when records carry a separate taxation exchange rate.
type TaxStatisticsResponse struct {
	From                    time.Time `json:"from"`
	To                      time.Time `json:"to"`
	Currency                string    `json:"currency"`
	TaxableIncome           int64     `json:"taxable_income"`
	TaxableIncomeFormatted  string    `json:"taxable_income_formatted"`
	TaxableExpense          int64     `json:"taxable_expense"`
	TaxableExpenseFormatted string    `json:"taxable_expense_formatted"`
	TaxableProfit           int64     `json:"taxable_profit"`
	TaxableProfitFormatted  string    `json:"taxable_profit_formatted"`
}

// CurrencyInfo describes one supported currency
type CurrencyInfo struct {
	Code      string `json:"code"`
	Precision int32  `json:"precision"`
	IsDefault bool   `json:"is_default"`
}

// GetPeriodStatistics returns income/expense/net totals for a date range
func (s *StatisticsService) GetPeriodStatistics(ctx context.Context, workspaceID uuid.UUID, req PeriodStatisticsRequest) (*PeriodStatisticsResponse, error) {
	if req.To.Before(req.From) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Date range end cannot be before its start")
	}

	currency, err := s.settings.DefaultCurrency(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	incomeTotals, err := s.incomeRepo.SumForWorkspace(ctx, workspaceID, req.From, req.To)
	if err != nil {
		return nil, err
	}
	expenseTotals, err := s.expenseRepo.SumForWorkspace(ctx, workspaceID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	tag := parseLocale(req.Locale)
	net := incomeTotals.ReportingAdjusted - expenseTotals.ReportingAdjusted

	resp := &PeriodStatisticsResponse{
		From:                    req.From,
		To:                      req.To,
		Currency:                string(currency),
		IncomeTotal:             int64(incomeTotals.ReportingAdjusted),
		ExpenseTotal:            int64(expenseTotals.ReportingAdjusted),
		NetTotal:                int64(net),
		FinalizedIncomeRecords:  incomeTotals.Count,
		FinalizedExpenseRecords: expenseTotals.Count,
	}
	if resp.IncomeTotalFormatted, err = valueobject.FormatAmount(incomeTotals.ReportingAdjusted, currency, s.catalog, tag); err != nil {
		return nil, err
	}
	if resp.ExpenseTotalFormatted, err = valueobject.FormatAmount(expenseTotals.ReportingAdjusted, currency, s.catalog, tag); err != nil {
		return nil, err
	}
	if resp.NetTotalFormatted, err = valueobject.FormatAmount(net, currency, s.catalog, tag); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTaxStatistics returns the taxable income view for a date range
func (s *StatisticsService) GetTaxStatistics(ctx context.Context, workspaceID uuid.UUID, req PeriodStatisticsRequest) (*TaxStatisticsResponse, error) {
	if req.To.Before(req.From) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Date range end cannot be before its start")
	}

	currency, err := s.settings.DefaultCurrency(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	incomeTotals, err := s.incomeRepo.SumForWorkspace(ctx, workspaceID, req.From, req.To)
	if err != nil {
		return nil, err
	}
	expenseTotals, err := s.expenseRepo.SumForWorkspace(ctx, workspaceID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	tag := parseLocale(req.Locale)
	profit := incomeTotals.TaxableAdjusted - expenseTotals.TaxableAdjusted

	resp := &TaxStatisticsResponse{
		From:           req.From,
		To:             req.To,
		Currency:       string(currency),
		TaxableIncome:  int64(incomeTotals.TaxableAdjusted),
		TaxableExpense: int64(expenseTotals.TaxableAdjusted),
		TaxableProfit:  int64(profit),
	}
	if resp.TaxableIncomeFormatted, err = valueobject.FormatAmount(incomeTotals.TaxableAdjusted, currency, s.catalog, tag); err != nil {
		return nil, err
	}
	if resp.TaxableExpenseFormatted, err = valueobject.FormatAmount(expenseTotals.TaxableAdjusted, currency, s.catalog, tag); err != nil {
		return nil, err
	}
	if resp.TaxableProfitFormatted, err = valueobject.FormatAmount(profit, currency, s.catalog, tag); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListCurrencies returns the currencies a workspace can record amounts in,
// with the workspace default flagged
func (s *StatisticsService) ListCurrencies(ctx context.Context, workspaceID uuid.UUID) ([]CurrencyInfo, error) {
	defaultCurrency, err := s.settings.DefaultCurrency(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	codes := valueobject.SupportedCurrencies()
	infos := make([]CurrencyInfo, 0, len(codes))
	for _, code := range codes {
		precision, err := s.catalog.Precision(code)
		if err != nil {
			return nil, err
		}
		infos = append(infos, CurrencyInfo{
			Code:      string(code),
			Precision: precision,
			IsDefault: code == defaultCurrency,
		})
	}
	return infos, nil
}
