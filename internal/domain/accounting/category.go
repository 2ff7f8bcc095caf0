package accounting

import (
	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
)

// CategoryType tells whether a category classifies expenses or incomes
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
)

// IsValid checks if the type is a valid CategoryType
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// String returns the string representation of CategoryType
func (t CategoryType) String() string {
	return string(t)
}

// Category represents an expense or income category aggregate root.
type Category struct {
	shared.WorkspaceAggregateRoot
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// NewCategory creates a new category within a workspace.
func NewCategory(workspaceID uuid.UUID, name string, categoryType CategoryType) (*Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !categoryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY_TYPE", "Category type must be EXPENSE or INCOME")
	}

	return &Category{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		Name:                   name,
		Type:                   categoryType,
	}, nil
}

// Rename changes the category name. The type is fixed at creation: records
// already classified under it would silently change meaning otherwise.
func (c *Category) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	c.IncrementVersion()
	return nil
}
