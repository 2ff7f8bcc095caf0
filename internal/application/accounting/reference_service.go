package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
)

// ReferenceService provides application-level operations for the reference
// aggregates records point at: customers, categories and taxes.
type ReferenceService struct {
	customerRepo accounting.CustomerRepository
	categoryRepo accounting.CategoryRepository
	taxRepo      accounting.TaxRepository
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(
	customerRepo accounting.CustomerRepository,
	categoryRepo accounting.CategoryRepository,
	taxRepo accounting.TaxRepository,
) *ReferenceService {
	return &ReferenceService{
		customerRepo: customerRepo,
		categoryRepo: categoryRepo,
		taxRepo:      taxRepo,
	}
}

// ===================== Customers =====================

// CustomerRequest represents a request to create or update a customer
type CustomerRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCustomer creates a new customer
func (s *ReferenceService) CreateCustomer(ctx context.Context, workspaceID uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := accounting.NewCustomer(workspaceID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomer gets a customer by ID
func (s *ReferenceService) GetCustomer(ctx context.Context, workspaceID, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	return toCustomerResponse(customer), nil
}

// UpdateCustomer renames a customer
func (s *ReferenceService) UpdateCustomer(ctx context.Context, workspaceID, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	if err := customer.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers lists customers with pagination
func (s *ReferenceService) ListCustomers(ctx context.Context, workspaceID uuid.UUID, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	page, err := s.customerRepo.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *toCustomerResponse(&page.Items[i]))
	}
	return &shared.Paginated[CustomerResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// DeleteCustomer deletes a customer
func (s *ReferenceService) DeleteCustomer(ctx context.Context, workspaceID, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	return s.customerRepo.DeleteForWorkspace(ctx, workspaceID, id)
}

func toCustomerResponse(customer *accounting.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          customer.ID,
		WorkspaceID: customer.WorkspaceID,
		Name:        customer.Name,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}
}

// ===================== Categories =====================

// CategoryRequest represents a request to create a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Type string `json:"type" binding:"required,oneof=EXPENSE INCOME"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCategory creates a new category
func (s *ReferenceService) CreateCategory(ctx context.Context, workspaceID uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := accounting.NewCategory(workspaceID, req.Name, accounting.CategoryType(req.Type))
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// RenameCategory renames a category
func (s *ReferenceService) RenameCategory(ctx context.Context, workspaceID, id uuid.UUID, name string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
	}
	if err := category.Rename(name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategories lists categories, optionally limited to one type
func (s *ReferenceService) ListCategories(ctx context.Context, workspaceID uuid.UUID, categoryType string) ([]CategoryResponse, error) {
	var typeFilter *accounting.CategoryType
	if categoryType != "" {
		t := accounting.CategoryType(categoryType)
		if !t.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown category type")
		}
		typeFilter = &t
	}

	categories, err := s.categoryRepo.FindAllForWorkspace(ctx, workspaceID, typeFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *toCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// DeleteCategory deletes a category
func (s *ReferenceService) DeleteCategory(ctx context.Context, workspaceID, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if category == nil {
		return shared.NewDomainError("NOT_FOUND", "Category not found")
	}
	return s.categoryRepo.DeleteForWorkspace(ctx, workspaceID, id)
}

func toCategoryResponse(category *accounting.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          category.ID,
		WorkspaceID: category.WorkspaceID,
		Name:        category.Name,
		Type:        category.Type.String(),
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ===================== Taxes =====================

// TaxRequest represents a request to create or update a tax rate
type TaxRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	RateBps     int64  `json:"rate_bps" binding:"min=0"`
	Description string `json:"description"`
}

// TaxResponse represents a tax rate in API responses
type TaxResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Title       string    `json:"title"`
	RateBps     int64     `json:"rate_bps"`
	RatePercent string    `json:"rate_percent"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTax creates a new tax rate
func (s *ReferenceService) CreateTax(ctx context.Context, workspaceID uuid.UUID, req TaxRequest) (*TaxResponse, error) {
	tax, err := accounting.NewTax(workspaceID, req.Title, req.RateBps, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}
	return toTaxResponse(tax), nil
}

// UpdateTax updates a tax rate
func (s *ReferenceService) UpdateTax(ctx context.Context, workspaceID, id uuid.UUID, req TaxRequest) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tax not found")
	}
	if err := tax.Update(req.Title, req.RateBps, req.Description); err != nil {
		return nil, err
	}
	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}
	return toTaxResponse(tax), nil
}

// ListTaxes lists all tax rates in a workspace
func (s *ReferenceService) ListTaxes(ctx context.Context, workspaceID uuid.UUID) ([]TaxResponse, error) {
	taxes, err := s.taxRepo.FindAllForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	responses := make([]TaxResponse, 0, len(taxes))
	for i := range taxes {
		responses = append(responses, *toTaxResponse(&taxes[i]))
	}
	return responses, nil
}

// DeleteTax deletes a tax rate
func (s *ReferenceService) DeleteTax(ctx context.Context, workspaceID, id uuid.UUID) error {
	tax, err := s.taxRepo.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if tax == nil {
		return shared.NewDomainError("NOT_FOUND", "Tax not found")
	}
	return s.taxRepo.DeleteForWorkspace(ctx, workspaceID, id)
}

func toTaxResponse(tax *accounting.Tax) *TaxResponse {
	return &TaxResponse{
		ID:          tax.ID,
		WorkspaceID: tax.WorkspaceID,
		Title:       tax.Title,
		RateBps:     tax.RateBps,
		RatePercent: tax.RatePercent(),
		Description: tax.Description,
		CreatedAt:   tax.CreatedAt,
		UpdatedAt:   tax.UpdatedAt,
	}
}
