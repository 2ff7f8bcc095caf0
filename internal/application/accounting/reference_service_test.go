package accounting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReferenceService(customerRepo *MockCustomerRepository, categoryRepo *MockCategoryRepository, taxRepo *MockTaxRepository) *ReferenceService {
	return NewReferenceService(customerRepo, categoryRepo, taxRepo)
}

func TestCreateCustomer(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	service := newReferenceService(customerRepo, new(MockCategoryRepository), new(MockTaxRepository))
	workspaceID := uuid.New()

	customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Customer")).Return(nil)

	resp, err := service.CreateCustomer(context.Background(), workspaceID, CustomerRequest{Name: "Acme GmbH"})

	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", resp.Name)
	assert.Equal(t, workspaceID, resp.WorkspaceID)
	customerRepo.AssertExpectations(t)
}

func TestCreateCustomer_EmptyName(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	service := newReferenceService(customerRepo, new(MockCategoryRepository), new(MockTaxRepository))

	_, err := service.CreateCustomer(context.Background(), uuid.New(), CustomerRequest{Name: ""})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_NAME", domainErr.Code)
	customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateCustomer(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	service := newReferenceService(customerRepo, new(MockCategoryRepository), new(MockTaxRepository))
	workspaceID := uuid.New()

	customer, err := accounting.NewCustomer(workspaceID, "Old name")
	require.NoError(t, err)

	customerRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, customer.ID).Return(customer, nil)
	customerRepo.On("Save", mock.Anything, customer).Return(nil)

	resp, err := service.UpdateCustomer(context.Background(), workspaceID, customer.ID, CustomerRequest{Name: "New name"})

	require.NoError(t, err)
	assert.Equal(t, "New name", resp.Name)
}

func TestListCustomers(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	service := newReferenceService(customerRepo, new(MockCategoryRepository), new(MockTaxRepository))
	workspaceID := uuid.New()

	customer, err := accounting.NewCustomer(workspaceID, "Acme GmbH")
	require.NoError(t, err)

	customerRepo.On("FindAllForWorkspace", mock.Anything, workspaceID, mock.AnythingOfType("shared.Filter")).
		Return(&shared.Paginated[accounting.Customer]{
			Items: []accounting.Customer{*customer}, Total: 1, Page: 1, PageSize: 20, TotalPages: 1,
		}, nil)

	page, err := service.ListCustomers(context.Background(), workspaceID, shared.Filter{Page: 1, PageSize: 20})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Acme GmbH", page.Items[0].Name)
}

func TestDeleteCustomer_NotFound(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	service := newReferenceService(customerRepo, new(MockCategoryRepository), new(MockTaxRepository))
	workspaceID := uuid.New()
	id := uuid.New()

	customerRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, id).Return(nil, nil)

	err := service.DeleteCustomer(context.Background(), workspaceID, id)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestCreateCategory(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := newReferenceService(new(MockCustomerRepository), categoryRepo, new(MockTaxRepository))
	workspaceID := uuid.New()

	categoryRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Category")).Return(nil)

	resp, err := service.CreateCategory(context.Background(), workspaceID, CategoryRequest{Name: "Travel", Type: "EXPENSE"})

	require.NoError(t, err)
	assert.Equal(t, "Travel", resp.Name)
	assert.Equal(t, "EXPENSE", resp.Type)
}

func TestCreateCategory_InvalidType(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := newReferenceService(new(MockCustomerRepository), categoryRepo, new(MockTaxRepository))

	_, err := service.CreateCategory(context.Background(), uuid.New(), CategoryRequest{Name: "Travel", Type: "TRANSFER"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY_TYPE", domainErr.Code)
}

func TestListCategories_TypeFilter(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := newReferenceService(new(MockCustomerRepository), categoryRepo, new(MockTaxRepository))
	workspaceID := uuid.New()

	category, err := accounting.NewCategory(workspaceID, "Sales", accounting.CategoryTypeIncome)
	require.NoError(t, err)

	categoryRepo.On("FindAllForWorkspace", mock.Anything, workspaceID,
		mock.MatchedBy(func(ct *accounting.CategoryType) bool {
			return ct != nil && *ct == accounting.CategoryTypeIncome
		})).
		Return([]accounting.Category{*category}, nil)

	responses, err := service.ListCategories(context.Background(), workspaceID, "INCOME")

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "Sales", responses[0].Name)

	_, err = service.ListCategories(context.Background(), workspaceID, "bogus")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestRenameCategory(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := newReferenceService(new(MockCustomerRepository), categoryRepo, new(MockTaxRepository))
	workspaceID := uuid.New()

	category, err := accounting.NewCategory(workspaceID, "Misc", accounting.CategoryTypeExpense)
	require.NoError(t, err)

	categoryRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, category.ID).Return(category, nil)
	categoryRepo.On("Save", mock.Anything, category).Return(nil)

	resp, err := service.RenameCategory(context.Background(), workspaceID, category.ID, "Miscellaneous")

	require.NoError(t, err)
	assert.Equal(t, "Miscellaneous", resp.Name)
}

func TestCreateTax(t *testing.T) {
	taxRepo := new(MockTaxRepository)
	service := newReferenceService(new(MockCustomerRepository), new(MockCategoryRepository), taxRepo)
	workspaceID := uuid.New()

	taxRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Tax")).Return(nil)

	resp, err := service.CreateTax(context.Background(), workspaceID, TaxRequest{Title: "VAT 19%", RateBps: 1900})

	require.NoError(t, err)
	assert.Equal(t, int64(1900), resp.RateBps)
	assert.Equal(t, "19.00%", resp.RatePercent)
}

func TestCreateTax_NegativeRate(t *testing.T) {
	taxRepo := new(MockTaxRepository)
	service := newReferenceService(new(MockCustomerRepository), new(MockCategoryRepository), taxRepo)

	_, err := service.CreateTax(context.Background(), uuid.New(), TaxRequest{Title: "Refund", RateBps: -100})

	require.Error(t, err)
	taxRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateTax_DoesNotTouchRecords(t *testing.T) {
	taxRepo := new(MockTaxRepository)
	service := newReferenceService(new(MockCustomerRepository), new(MockCategoryRepository), taxRepo)
	workspaceID := uuid.New()

	tax, err := accounting.NewTax(workspaceID, "VAT 19%", 1900, "")
	require.NoError(t, err)

	taxRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, tax.ID).Return(tax, nil)
	taxRepo.On("Save", mock.Anything, tax).Return(nil)

	resp, err := service.UpdateTax(context.Background(), workspaceID, tax.ID, TaxRequest{Title: "VAT 21%", RateBps: 2100})

	require.NoError(t, err)
	assert.Equal(t, int64(2100), resp.RateBps)
	assert.Equal(t, "21.00%", resp.RatePercent)
}

func TestListTaxes(t *testing.T) {
	taxRepo := new(MockTaxRepository)
	service := newReferenceService(new(MockCustomerRepository), new(MockCategoryRepository), taxRepo)
	workspaceID := uuid.New()

	tax, err := accounting.NewTax(workspaceID, "VAT 7%", 700, "Reduced rate")
	require.NoError(t, err)

	taxRepo.On("FindAllForWorkspace", mock.Anything, workspaceID).Return([]accounting.Tax{*tax}, nil)

	responses, err := service.ListTaxes(context.Background(), workspaceID)

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "7.00%", responses[0].RatePercent)
}

func TestDeleteTax_NotFound(t *testing.T) {
	taxRepo := new(MockTaxRepository)
	service := newReferenceService(new(MockCustomerRepository), new(MockCategoryRepository), taxRepo)
	workspaceID := uuid.New()
	id := uuid.New()

	taxRepo.On("FindByIDForWorkspace", mock.Anything, workspaceID, id).Return(nil, nil)

	err := service.DeleteTax(context.Background(), workspaceID, id)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
