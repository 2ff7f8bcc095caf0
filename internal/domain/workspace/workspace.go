// Package workspace holds the account domain: workspaces, their members and
// user accounts. A workspace is the unit of bookkeeping isolation; its
// default currency drives every amount conversion in the accounting domain.
package workspace

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// Workspace represents a bookkeeping workspace aggregate root.
type Workspace struct {
	shared.BaseAggregateRoot
	Name            string               `json:"name"`
	DefaultCurrency valueobject.Currency `json:"default_currency"`
	OwnerID         uuid.UUID            `json:"owner_id"`
}

// WorkspaceMember represents a user's membership in a workspace.
type WorkspaceMember struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewWorkspace creates a new workspace owned by the given user.
func NewWorkspace(name string, defaultCurrency valueobject.Currency, catalog valueobject.CurrencyCatalog, ownerID uuid.UUID) (*Workspace, error) {
	if err := validateWorkspaceName(name); err != nil {
		return nil, err
	}
	if _, err := catalog.Precision(defaultCurrency); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner user ID cannot be empty")
	}

	ws := &Workspace{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		DefaultCurrency:   defaultCurrency,
		OwnerID:           ownerID,
	}

	ws.AddDomainEvent(NewWorkspaceCreatedEvent(ws))

	return ws, nil
}

// Rename changes the workspace name.
func (w *Workspace) Rename(name string) error {
	if err := validateWorkspaceName(name); err != nil {
		return err
	}
	w.Name = strings.TrimSpace(name)
	w.Touch()
	w.IncrementVersion()
	return nil
}

// ChangeDefaultCurrency switches the workspace default currency. Existing
// records keep their previously derived amounts until their next update
// recomputes against the new default.
func (w *Workspace) ChangeDefaultCurrency(currency valueobject.Currency, catalog valueobject.CurrencyCatalog) error {
	if _, err := catalog.Precision(currency); err != nil {
		return err
	}
	if currency == w.DefaultCurrency {
		return nil
	}

	previous := w.DefaultCurrency
	w.DefaultCurrency = currency
	w.Touch()
	w.IncrementVersion()

	w.AddDomainEvent(NewWorkspaceDefaultCurrencyChangedEvent(w, previous))

	return nil
}

// IsOwnedBy returns true if the given user owns the workspace.
func (w *Workspace) IsOwnedBy(userID uuid.UUID) bool {
	return w.OwnerID == userID
}

func validateWorkspaceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Workspace name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Workspace name cannot exceed 255 characters")
	}
	return nil
}
