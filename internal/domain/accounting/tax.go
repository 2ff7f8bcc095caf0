package accounting

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
)

// Tax represents a named tax rate aggregate root. The rate is stored in
// basis points (2000 = 20.00%). Expenses snapshot the rate at assignment
// time, so editing a tax never rewrites historical records.
type Tax struct {
	shared.WorkspaceAggregateRoot
	Title       string `json:"title"`
	RateBps     int64  `json:"rate_bps"`
	Description string `json:"description"`
}

// NewTax creates a new tax rate within a workspace.
func NewTax(workspaceID uuid.UUID, title string, rateBps int64, description string) (*Tax, error) {
	if err := validateTax(title, rateBps); err != nil {
		return nil, err
	}

	return &Tax{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		Title:                  title,
		RateBps:                rateBps,
		Description:            description,
	}, nil
}

// Update changes the tax title, rate and description.
func (t *Tax) Update(title string, rateBps int64, description string) error {
	if err := validateTax(title, rateBps); err != nil {
		return err
	}
	t.Title = title
	t.RateBps = rateBps
	t.Description = description
	t.Touch()
	t.IncrementVersion()
	return nil
}

// RatePercent returns the rate as a human-readable percentage string.
func (t *Tax) RatePercent() string {
	return fmt.Sprintf("%d.%02d%%", t.RateBps/100, t.RateBps%100)
}

func validateTax(title string, rateBps int64) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}
	// Rates above 100% are legal; negatives are not.
	if rateBps < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Tax rate cannot be negative")
	}
	return nil
}
