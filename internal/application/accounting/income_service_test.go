package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newIncomeService(incomeRepo *MockIncomeRepository, invoiceRepo *MockInvoiceRepository, taxRepo *MockTaxRepository) *IncomeService {
	catalog := valueobject.NewISOCurrencyCatalog()
	return NewIncomeService(
		incomeRepo,
		invoiceRepo,
		taxRepo,
		stubSettings{currency: "EUR"},
		accounting.NewAmountsEngine(catalog),
		catalog,
	)
}

func validIncomeRequest() IncomeRequest {
	return IncomeRequest{
		Title:          "Consulting fee",
		CategoryID:     uuid.New(),
		DateReceived:   time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Currency:       "EUR",
		OriginalAmount: "2500.00",
	}
}

func TestCreateIncome_SameCurrencyFinalized(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, new(MockTaxRepository))
	workspaceID := uuid.New()

	incomeRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Income")).Return(nil)

	resp, err := service.CreateIncome(context.Background(), workspaceID, validIncomeRequest())

	require.NoError(t, err)
	assert.Equal(t, workspaceID, resp.WorkspaceID)
	assert.Equal(t, int64(250000), resp.OriginalAmount)
	assert.Equal(t, "FINALIZED", resp.Status)
	require.NotNil(t, resp.ReportingAmountAdjusted)
	assert.Equal(t, int64(250000), *resp.ReportingAmountAdjusted)
	incomeRepo.AssertExpectations(t)
}

func TestCreateIncome_ZeroDecimalCurrency(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, new(MockTaxRepository))

	incomeRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Income")).Return(nil)

	req := validIncomeRequest()
	req.Currency = "JPY"
	req.OriginalAmount = "32000"

	resp, err := service.CreateIncome(context.Background(), uuid.New(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(32000), resp.OriginalAmount)
	assert.Equal(t, "PENDING_CONVERSION", resp.Status)
}

func TestCreateIncome_FractionRejectedForZeroDecimalCurrency(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, new(MockTaxRepository))

	req := validIncomeRequest()
	req.Currency = "JPY"
	req.OriginalAmount = "32000.50"

	_, err := service.CreateIncome(context.Background(), uuid.New(), req)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT_FORMAT", domainErr.Code)
}

func TestCreateIncome_LinkedInvoice(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, new(MockTaxRepository))
	workspaceID := uuid.New()

	catalog := valueobject.NewISOCurrencyCatalog()
	invoice, err := accounting.NewInvoice(workspaceID, catalog, accounting.InvoiceInput{
		CustomerID: uuid.New(),
		Title:      "April retainer",
		Currency:   "EUR",
		Amount:     250000,
		DateIssued: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	invoiceRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, invoice.ID).Return(invoice, nil)
	incomeRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Income")).Return(nil)

	req := validIncomeRequest()
	req.InvoiceID = &invoice.ID

	resp, err := service.CreateIncome(context.Background(), workspaceID, req)

	require.NoError(t, err)
	require.NotNil(t, resp.InvoiceID)
	assert.Equal(t, invoice.ID, *resp.InvoiceID)
	invoiceRepo.AssertExpectations(t)
}

func TestCreateIncome_InvoiceNotFound(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, new(MockTaxRepository))
	workspaceID := uuid.New()
	invoiceID := uuid.New()

	invoiceRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, invoiceID).Return(nil, nil)

	req := validIncomeRequest()
	req.InvoiceID = &invoiceID

	_, err := service.CreateIncome(context.Background(), workspaceID, req)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	incomeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateIncome_WithTaxRate(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	taxRepo := new(MockTaxRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, taxRepo)
	workspaceID := uuid.New()

	tax, err := accounting.NewTax(workspaceID, "VAT 20%", 2000, "")
	require.NoError(t, err)

	taxRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, tax.ID).Return(tax, nil)
	incomeRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Income")).Return(nil)

	req := validIncomeRequest()
	req.OriginalAmount = "100.00"
	req.TaxID = &tax.ID

	resp, err := service.CreateIncome(context.Background(), workspaceID, req)

	require.NoError(t, err)
	require.NotNil(t, resp.TaxRateBps)
	assert.Equal(t, int64(2000), *resp.TaxRateBps)
	require.NotNil(t, resp.TaxAmount)
	assert.Equal(t, int64(2000), *resp.TaxAmount)
	taxRepo.AssertExpectations(t)
}

func TestCreateIncome_TaxNotFound(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	taxRepo := new(MockTaxRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, taxRepo)
	workspaceID := uuid.New()
	taxID := uuid.New()

	taxRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, taxID).Return(nil, nil)

	req := validIncomeRequest()
	req.TaxID = &taxID

	_, err := service.CreateIncome(context.Background(), workspaceID, req)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	incomeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateIncome_ClearingConversionMovesBackToPending(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, new(MockTaxRepository))
	workspaceID := uuid.New()

	catalog := valueobject.NewISOCurrencyCatalog()
	engine := accounting.NewAmountsEngine(catalog)
	converted := valueobject.Amount(9200)
	existing, err := accounting.NewIncome(workspaceID, "EUR", engine, accounting.IncomeInput{
		Title:             "Export sale",
		CategoryID:        uuid.New(),
		DateReceived:      time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		OriginalCurrency:  "USD",
		OriginalAmount:    10000,
		ConvertedAmount:   &converted,
		PercentOnBusiness: 100,
	})
	require.NoError(t, err)
	require.Equal(t, accounting.StatusFinalized, existing.Status)

	incomeRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, existing.ID).Return(existing, nil)
	incomeRepo.On("SaveWithLock", mock.Anything, existing).Return(nil)

	req := validIncomeRequest()
	req.Title = "Export sale"
	req.Currency = "USD"
	req.OriginalAmount = "100.00"
	// No converted amount this time.

	resp, err := service.UpdateIncome(context.Background(), workspaceID, existing.ID, req)

	require.NoError(t, err)
	assert.Equal(t, "PENDING_CONVERSION", resp.Status)
	assert.Nil(t, resp.ReportingAmount)
	incomeRepo.AssertExpectations(t)
}

func TestGetIncome_NotFound(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, new(MockTaxRepository))
	workspaceID := uuid.New()
	id := uuid.New()

	incomeRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, id).Return(nil, nil)

	_, err := service.GetIncome(context.Background(), workspaceID, id)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestListIncomes_CurrencyFilter(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, new(MockTaxRepository))
	workspaceID := uuid.New()

	incomeRepo.On("FindAllForWorkspace", mock.Anything, workspaceID,
		mock.MatchedBy(func(f accounting.RecordFilter) bool {
			return f.Currency != nil && *f.Currency == valueobject.Currency("USD")
		})).
		Return(&shared.Paginated[accounting.Income]{Items: nil, Page: 1, PageSize: 20}, nil)

	_, err := service.ListIncomes(context.Background(), workspaceID, IncomeListFilter{Currency: "USD"})
	require.NoError(t, err)
	incomeRepo.AssertExpectations(t)
}

func TestDeleteIncome_NotFound(t *testing.T) {
	incomeRepo := new(MockIncomeRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := newIncomeService(incomeRepo, invoiceRepo, new(MockTaxRepository))
	workspaceID := uuid.New()
	id := uuid.New()

	incomeRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, id).Return(nil, nil)

	err := service.DeleteIncome(context.Background(), workspaceID, id)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	incomeRepo.AssertNotCalled(t, "DeleteForWorkspace", mock.Anything, mock.Anything, mock.Anything)
}
