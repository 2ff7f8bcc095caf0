package accounting

import (
	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
)

// Customer represents a customer aggregate root. Invoices reference it.
type Customer struct {
	shared.WorkspaceAggregateRoot
	Name string `json:"name"`
}

// NewCustomer creates a new customer within a workspace.
func NewCustomer(workspaceID uuid.UUID, name string) (*Customer, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Customer{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		Name:                   name,
	}, nil
}

// Rename changes the customer name.
func (c *Customer) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	c.IncrementVersion()
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 255 characters")
	}
	return nil
}
