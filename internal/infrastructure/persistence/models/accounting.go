package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// ExpenseModel is the persistence model for the Expense aggregate root.
// All monetary columns hold integer minor units of their currency.
type ExpenseModel struct {
	WorkspaceAggregateModel
	Title                               string                   `gorm:"type:varchar(255);not null"`
	CategoryID                          uuid.UUID                `gorm:"type:uuid;not null;index"`
	DatePaid                            time.Time                `gorm:"not null;index"`
	OriginalCurrency                    valueobject.Currency     `gorm:"type:varchar(3);not null"`
	OriginalAmount                      valueobject.Amount       `gorm:"type:bigint;not null"`
	ConvertedAmount                     *valueobject.Amount      `gorm:"type:bigint"`
	UseDifferentExchangeRateForTaxation bool                     `gorm:"not null;default:false"`
	TaxationAmount                      *valueobject.Amount      `gorm:"type:bigint"`
	PercentOnBusiness                   int                      `gorm:"not null;default:100"`
	TaxID                               *uuid.UUID               `gorm:"type:uuid;index"`
	TaxRateBps                          *int64                   `gorm:"type:bigint"`
	Notes                               string                   `gorm:"type:text"`
	DocumentIDs                         UUIDList                 `gorm:"type:jsonb;default:'[]'"`
	ReportingAmount                     *valueobject.Amount      `gorm:"type:bigint"`
	ReportingAmountAdjusted             *valueobject.Amount      `gorm:"type:bigint"`
	TaxableAmount                       *valueobject.Amount      `gorm:"type:bigint"`
	TaxableAmountAdjusted               *valueobject.Amount      `gorm:"type:bigint"`
	TaxAmount                           *valueobject.Amount      `gorm:"type:bigint"`
	Status                              accounting.AmountsStatus `gorm:"type:varchar(50);not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *accounting.Expense {
	expense := &accounting.Expense{
		Title:                               m.Title,
		CategoryID:                          m.CategoryID,
		DatePaid:                            m.DatePaid,
		OriginalCurrency:                    m.OriginalCurrency,
		OriginalAmount:                      m.OriginalAmount,
		ConvertedAmount:                     m.ConvertedAmount,
		UseDifferentExchangeRateForTaxation: m.UseDifferentExchangeRateForTaxation,
		TaxationAmount:                      m.TaxationAmount,
		PercentOnBusiness:                   m.PercentOnBusiness,
		TaxID:                               m.TaxID,
		TaxRateBps:                          m.TaxRateBps,
		Notes:                               m.Notes,
		DocumentIDs:                         []uuid.UUID(m.DocumentIDs),
		ReportingAmount:                     m.ReportingAmount,
		ReportingAmountAdjusted:             m.ReportingAmountAdjusted,
		TaxableAmount:                       m.TaxableAmount,
		TaxableAmountAdjusted:               m.TaxableAmountAdjusted,
		TaxAmount:                           m.TaxAmount,
		Status:                              m.Status,
	}
	m.PopulateWorkspaceAggregateRoot(&expense.WorkspaceAggregateRoot)
	return expense
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *accounting.Expense) {
	m.FromDomainWorkspaceAggregateRoot(e.WorkspaceAggregateRoot)
	m.Title = e.Title
	m.CategoryID = e.CategoryID
	m.DatePaid = e.DatePaid
	m.OriginalCurrency = e.OriginalCurrency
	m.OriginalAmount = e.OriginalAmount
	m.ConvertedAmount = e.ConvertedAmount
	m.UseDifferentExchangeRateForTaxation = e.UseDifferentExchangeRateForTaxation
	m.TaxationAmount = e.TaxationAmount
	m.PercentOnBusiness = e.PercentOnBusiness
	m.TaxID = e.TaxID
	m.TaxRateBps = e.TaxRateBps
	m.Notes = e.Notes
	m.DocumentIDs = UUIDList(e.DocumentIDs)
	m.ReportingAmount = e.ReportingAmount
	m.ReportingAmountAdjusted = e.ReportingAmountAdjusted
	m.TaxableAmount = e.TaxableAmount
	m.TaxableAmountAdjusted = e.TaxableAmountAdjusted
	m.TaxAmount = e.TaxAmount
	m.Status = e.Status
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *accounting.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// IncomeModel is the persistence model for the Income aggregate root.
type IncomeModel struct {
	WorkspaceAggregateModel
	Title                               string                   `gorm:"type:varchar(255);not null"`
	CategoryID                          uuid.UUID                `gorm:"type:uuid;not null;index"`
	DateReceived                        time.Time                `gorm:"not null;index"`
	OriginalCurrency                    valueobject.Currency     `gorm:"type:varchar(3);not null"`
	OriginalAmount                      valueobject.Amount       `gorm:"type:bigint;not null"`
	ConvertedAmount                     *valueobject.Amount      `gorm:"type:bigint"`
	UseDifferentExchangeRateForTaxation bool                     `gorm:"not null;default:false"`
	TaxationAmount                      *valueobject.Amount      `gorm:"type:bigint"`
	PercentOnBusiness                   int                      `gorm:"not null;default:100"`
	TaxID                               *uuid.UUID               `gorm:"type:uuid;index"`
	TaxRateBps                          *int64                   `gorm:"type:bigint"`
	InvoiceID                           *uuid.UUID               `gorm:"type:uuid;index"`
	Notes                               string                   `gorm:"type:text"`
	DocumentIDs                         UUIDList                 `gorm:"type:jsonb;default:'[]'"`
	ReportingAmount                     *valueobject.Amount      `gorm:"type:bigint"`
	ReportingAmountAdjusted             *valueobject.Amount      `gorm:"type:bigint"`
	TaxableAmount                       *valueobject.Amount      `gorm:"type:bigint"`
	TaxableAmountAdjusted               *valueobject.Amount      `gorm:"type:bigint"`
	TaxAmount                           *valueobject.Amount      `gorm:"type:bigint"`
	Status                              accounting.AmountsStatus `gorm:"type:varchar(50);not null;index"`
}

// TableName returns the table name for GORM
func (IncomeModel) TableName() string {
	return "incomes"
}

// ToDomain converts the persistence model to a domain Income entity.
func (m *IncomeModel) ToDomain() *accounting.Income {
	income := &accounting.Income{
		Title:                               m.Title,
		CategoryID:                          m.CategoryID,
		DateReceived:                        m.DateReceived,
		OriginalCurrency:                    m.OriginalCurrency,
		OriginalAmount:                      m.OriginalAmount,
		ConvertedAmount:                     m.ConvertedAmount,
		UseDifferentExchangeRateForTaxation: m.UseDifferentExchangeRateForTaxation,
		TaxationAmount:                      m.TaxationAmount,
		PercentOnBusiness:                   m.PercentOnBusiness,
		TaxID:                               m.TaxID,
		TaxRateBps:                          m.TaxRateBps,
		InvoiceID:                           m.InvoiceID,
		Notes:                               m.Notes,
		DocumentIDs:                         []uuid.UUID(m.DocumentIDs),
		ReportingAmount:                     m.ReportingAmount,
		ReportingAmountAdjusted:             m.ReportingAmountAdjusted,
		TaxableAmount:                       m.TaxableAmount,
		TaxableAmountAdjusted:               m.TaxableAmountAdjusted,
		TaxAmount:                           m.TaxAmount,
		Status:                              m.Status,
	}
	m.PopulateWorkspaceAggregateRoot(&income.WorkspaceAggregateRoot)
	return income
}

// FromDomain populates the persistence model from a domain Income entity.
func (m *IncomeModel) FromDomain(i *accounting.Income) {
	m.FromDomainWorkspaceAggregateRoot(i.WorkspaceAggregateRoot)
	m.Title = i.Title
	m.CategoryID = i.CategoryID
	m.DateReceived = i.DateReceived
	m.OriginalCurrency = i.OriginalCurrency
	m.OriginalAmount = i.OriginalAmount
	m.ConvertedAmount = i.ConvertedAmount
	m.UseDifferentExchangeRateForTaxation = i.UseDifferentExchangeRateForTaxation
	m.TaxationAmount = i.TaxationAmount
	m.PercentOnBusiness = i.PercentOnBusiness
	m.TaxID = i.TaxID
	m.TaxRateBps = i.TaxRateBps
	m.InvoiceID = i.InvoiceID
	m.Notes = i.Notes
	m.DocumentIDs = UUIDList(i.DocumentIDs)
	m.ReportingAmount = i.ReportingAmount
	m.ReportingAmountAdjusted = i.ReportingAmountAdjusted
	m.TaxableAmount = i.TaxableAmount
	m.TaxableAmountAdjusted = i.TaxableAmountAdjusted
	m.TaxAmount = i.TaxAmount
	m.Status = i.Status
}

// IncomeModelFromDomain creates a new persistence model from a domain Income.
func IncomeModelFromDomain(i *accounting.Income) *IncomeModel {
	m := &IncomeModel{}
	m.FromDomain(i)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
// The invoice status is derived at read time and never stored.
type InvoiceModel struct {
	WorkspaceAggregateModel
	CustomerID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	Title       string               `gorm:"type:varchar(255);not null"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null"`
	Amount      valueobject.Amount   `gorm:"type:bigint;not null"`
	DateIssued  time.Time            `gorm:"not null;index"`
	DueDate     time.Time            `gorm:"not null;index"`
	DateSent    *time.Time
	DatePaid    *time.Time
	Cancelled   bool     `gorm:"not null;default:false"`
	Notes       string   `gorm:"type:text"`
	DocumentIDs UUIDList `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *accounting.Invoice {
	invoice := &accounting.Invoice{
		CustomerID:  m.CustomerID,
		Title:       m.Title,
		Currency:    m.Currency,
		Amount:      m.Amount,
		DateIssued:  m.DateIssued,
		DueDate:     m.DueDate,
		DateSent:    m.DateSent,
		DatePaid:    m.DatePaid,
		Cancelled:   m.Cancelled,
		Notes:       m.Notes,
		DocumentIDs: []uuid.UUID(m.DocumentIDs),
	}
	m.PopulateWorkspaceAggregateRoot(&invoice.WorkspaceAggregateRoot)
	return invoice
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(i *accounting.Invoice) {
	m.FromDomainWorkspaceAggregateRoot(i.WorkspaceAggregateRoot)
	m.CustomerID = i.CustomerID
	m.Title = i.Title
	m.Currency = i.Currency
	m.Amount = i.Amount
	m.DateIssued = i.DateIssued
	m.DueDate = i.DueDate
	m.DateSent = i.DateSent
	m.DatePaid = i.DatePaid
	m.Cancelled = i.Cancelled
	m.Notes = i.Notes
	m.DocumentIDs = UUIDList(i.DocumentIDs)
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(i *accounting.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(i)
	return m
}

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	WorkspaceAggregateModel
	Name string `gorm:"type:varchar(255);not null;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *accounting.Customer {
	customer := &accounting.Customer{
		Name: m.Name,
	}
	m.PopulateWorkspaceAggregateRoot(&customer.WorkspaceAggregateRoot)
	return customer
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *accounting.Customer) {
	m.FromDomainWorkspaceAggregateRoot(c.WorkspaceAggregateRoot)
	m.Name = c.Name
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *accounting.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// CategoryModel is the persistence model for the Category aggregate root.
type CategoryModel struct {
	WorkspaceAggregateModel
	Name string                  `gorm:"type:varchar(255);not null"`
	Type accounting.CategoryType `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *accounting.Category {
	category := &accounting.Category{
		Name: m.Name,
		Type: m.Type,
	}
	m.PopulateWorkspaceAggregateRoot(&category.WorkspaceAggregateRoot)
	return category
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *accounting.Category) {
	m.FromDomainWorkspaceAggregateRoot(c.WorkspaceAggregateRoot)
	m.Name = c.Name
	m.Type = c.Type
}

// CategoryModelFromDomain creates a new persistence model from a domain Category.
func CategoryModelFromDomain(c *accounting.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// TaxModel is the persistence model for the Tax aggregate root.
type TaxModel struct {
	WorkspaceAggregateModel
	Title       string `gorm:"type:varchar(255);not null"`
	RateBps     int64  `gorm:"type:bigint;not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TaxModel) TableName() string {
	return "taxes"
}

// ToDomain converts the persistence model to a domain Tax entity.
func (m *TaxModel) ToDomain() *accounting.Tax {
	tax := &accounting.Tax{
		Title:       m.Title,
		RateBps:     m.RateBps,
		Description: m.Description,
	}
	m.PopulateWorkspaceAggregateRoot(&tax.WorkspaceAggregateRoot)
	return tax
}

// FromDomain populates the persistence model from a domain Tax entity.
func (m *TaxModel) FromDomain(t *accounting.Tax) {
	m.FromDomainWorkspaceAggregateRoot(t.WorkspaceAggregateRoot)
	m.Title = t.Title
	m.RateBps = t.RateBps
	m.Description = t.Description
}

// TaxModelFromDomain creates a new persistence model from a domain Tax.
func TaxModelFromDomain(t *accounting.Tax) *TaxModel {
	m := &TaxModel{}
	m.FromDomain(t)
	return m
}

// DocumentModel is the persistence model for the Document aggregate root.
type DocumentModel struct {
	WorkspaceAggregateModel
	FileName    string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(100);not null"`
	SizeBytes   int64  `gorm:"type:bigint;not null"`
	StorageKey  string `gorm:"type:varchar(500);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document entity.
func (m *DocumentModel) ToDomain() *accounting.Document {
	document := &accounting.Document{
		FileName:    m.FileName,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		StorageKey:  m.StorageKey,
	}
	m.PopulateWorkspaceAggregateRoot(&document.WorkspaceAggregateRoot)
	return document
}

// FromDomain populates the persistence model from a domain Document entity.
func (m *DocumentModel) FromDomain(d *accounting.Document) {
	m.FromDomainWorkspaceAggregateRoot(d.WorkspaceAggregateRoot)
	m.FileName = d.FileName
	m.ContentType = d.ContentType
	m.SizeBytes = d.SizeBytes
	m.StorageKey = d.StorageKey
}

// DocumentModelFromDomain creates a new persistence model from a domain Document.
func DocumentModelFromDomain(d *accounting.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}
