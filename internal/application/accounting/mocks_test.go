package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/mock"
)

// MockExpenseRepository is a mock implementation of accounting.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Expense, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter accounting.RecordFilter) (*shared.Paginated[accounting.Expense], error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[accounting.Expense]), args.Error(1)
}

func (m *MockExpenseRepository) FindByStatus(ctx context.Context, workspaceID uuid.UUID, status accounting.AmountsStatus) ([]accounting.Expense, error) {
	args := m.Called(ctx, workspaceID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *accounting.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) SaveWithLock(ctx context.Context, expense *accounting.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) SumForWorkspace(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (accounting.RecordTotals, error) {
	args := m.Called(ctx, workspaceID, from, to)
	return args.Get(0).(accounting.RecordTotals), args.Error(1)
}

// MockIncomeRepository is a mock implementation of accounting.IncomeRepository
type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Income, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Income), args.Error(1)
}

func (m *MockIncomeRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter accounting.RecordFilter) (*shared.Paginated[accounting.Income], error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[accounting.Income]), args.Error(1)
}

func (m *MockIncomeRepository) FindByInvoice(ctx context.Context, workspaceID, invoiceID uuid.UUID) ([]accounting.Income, error) {
	args := m.Called(ctx, workspaceID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Income), args.Error(1)
}

func (m *MockIncomeRepository) Save(ctx context.Context, income *accounting.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) SaveWithLock(ctx context.Context, income *accounting.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

func (m *MockIncomeRepository) SumForWorkspace(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (accounting.RecordTotals, error) {
	args := m.Called(ctx, workspaceID, from, to)
	return args.Get(0).(accounting.RecordTotals), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of accounting.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Invoice, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter accounting.InvoiceFilter) (*shared.Paginated[accounting.Invoice], error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[accounting.Invoice]), args.Error(1)
}

func (m *MockInvoiceRepository) FindOverdue(ctx context.Context, workspaceID uuid.UUID, asOf time.Time) ([]accounting.Invoice, error) {
	args := m.Called(ctx, workspaceID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *accounting.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *accounting.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of accounting.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Customer, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (*shared.Paginated[accounting.Customer], error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[accounting.Customer]), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *accounting.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of accounting.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Category, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, categoryType *accounting.CategoryType) ([]accounting.Category, error) {
	args := m.Called(ctx, workspaceID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *accounting.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

// MockTaxRepository is a mock implementation of accounting.TaxRepository
type MockTaxRepository struct {
	mock.Mock
}

func (m *MockTaxRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Tax, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Tax), args.Error(1)
}

func (m *MockTaxRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]accounting.Tax, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.Tax), args.Error(1)
}

func (m *MockTaxRepository) Save(ctx context.Context, tax *accounting.Tax) error {
	args := m.Called(ctx, tax)
	return args.Error(0)
}

func (m *MockTaxRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

// MockDocumentRepository is a mock implementation of accounting.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByIDForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) (*accounting.Document, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAllForWorkspace(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (*shared.Paginated[accounting.Document], error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[accounting.Document]), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, document *accounting.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteForWorkspace(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

// stubSettings is a SettingsProvider with a fixed default currency.
type stubSettings struct {
	currency valueobject.Currency
	err      error
}

func (s stubSettings) DefaultCurrency(ctx context.Context, workspaceID uuid.UUID) (valueobject.Currency, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.currency, nil
}
