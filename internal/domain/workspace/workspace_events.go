package workspace

import (
	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
)

// WorkspaceCreatedEvent is raised when a new workspace is created
type WorkspaceCreatedEvent struct {
	shared.BaseDomainEvent
	Name            string               `json:"name"`
	DefaultCurrency valueobject.Currency `json:"default_currency"`
	OwnerID         uuid.UUID            `json:"owner_id"`
}

// EventType returns the event type name
func (e *WorkspaceCreatedEvent) EventType() string {
	return "WorkspaceCreated"
}

// NewWorkspaceCreatedEvent creates a new WorkspaceCreatedEvent
func NewWorkspaceCreatedEvent(ws *Workspace) *WorkspaceCreatedEvent {
	return &WorkspaceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("WorkspaceCreated", "Workspace", ws.ID, ws.ID),
		Name:            ws.Name,
		DefaultCurrency: ws.DefaultCurrency,
		OwnerID:         ws.OwnerID,
	}
}

// WorkspaceDefaultCurrencyChangedEvent is raised when the default currency
// changes. Consumers use it to invalidate cached workspace settings.
type WorkspaceDefaultCurrencyChangedEvent struct {
	shared.BaseDomainEvent
	PreviousCurrency valueobject.Currency `json:"previous_currency"`
	NewCurrency      valueobject.Currency `json:"new_currency"`
}

// EventType returns the event type name
func (e *WorkspaceDefaultCurrencyChangedEvent) EventType() string {
	return "WorkspaceDefaultCurrencyChanged"
}

// NewWorkspaceDefaultCurrencyChangedEvent creates a new WorkspaceDefaultCurrencyChangedEvent
func NewWorkspaceDefaultCurrencyChangedEvent(ws *Workspace, previous valueobject.Currency) *WorkspaceDefaultCurrencyChangedEvent {
	return &WorkspaceDefaultCurrencyChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("WorkspaceDefaultCurrencyChanged", "Workspace", ws.ID, ws.ID),
		PreviousCurrency: previous,
		NewCurrency:      ws.DefaultCurrency,
	}
}
