package workspace

import (
	"testing"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace(t *testing.T) {
	catalog := valueobject.NewISOCurrencyCatalog()
	ownerID := uuid.New()

	ws, err := NewWorkspace("Acme Books", valueobject.CurrencyUSD, catalog, ownerID)
	require.NoError(t, err)

	assert.Equal(t, "Acme Books", ws.Name)
	assert.Equal(t, valueobject.CurrencyUSD, ws.DefaultCurrency)
	assert.Equal(t, ownerID, ws.OwnerID)
	assert.True(t, ws.IsOwnedBy(ownerID))
	assert.False(t, ws.IsOwnedBy(uuid.New()))

	events := ws.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "WorkspaceCreated", events[0].EventType())
}

func TestNewWorkspace_ValidationErrors(t *testing.T) {
	catalog := valueobject.NewISOCurrencyCatalog()
	ownerID := uuid.New()

	tests := []struct {
		name      string
		wsName    string
		currency  valueobject.Currency
		ownerID   uuid.UUID
	}{
		{"empty name", "", valueobject.CurrencyUSD, ownerID},
		{"blank name", "   ", valueobject.CurrencyUSD, ownerID},
		{"unknown currency", "Acme", "ZZZ", ownerID},
		{"missing owner", "Acme", valueobject.CurrencyUSD, uuid.Nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWorkspace(tc.wsName, tc.currency, catalog, tc.ownerID)
			assert.Error(t, err)
		})
	}
}

func TestWorkspace_ChangeDefaultCurrency(t *testing.T) {
	catalog := valueobject.NewISOCurrencyCatalog()

	ws, err := NewWorkspace("Acme Books", valueobject.CurrencyUSD, catalog, uuid.New())
	require.NoError(t, err)
	ws.ClearDomainEvents()

	require.NoError(t, ws.ChangeDefaultCurrency(valueobject.CurrencyEUR, catalog))
	assert.Equal(t, valueobject.CurrencyEUR, ws.DefaultCurrency)

	events := ws.GetDomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*WorkspaceDefaultCurrencyChangedEvent)
	require.True(t, ok)
	assert.Equal(t, valueobject.CurrencyUSD, changed.PreviousCurrency)
	assert.Equal(t, valueobject.CurrencyEUR, changed.NewCurrency)
}

func TestWorkspace_ChangeDefaultCurrency_NoOpWhenSame(t *testing.T) {
	catalog := valueobject.NewISOCurrencyCatalog()

	ws, err := NewWorkspace("Acme Books", valueobject.CurrencyUSD, catalog, uuid.New())
	require.NoError(t, err)
	ws.ClearDomainEvents()

	require.NoError(t, ws.ChangeDefaultCurrency(valueobject.CurrencyUSD, catalog))
	assert.Empty(t, ws.GetDomainEvents())
}

func TestWorkspace_ChangeDefaultCurrency_Unknown(t *testing.T) {
	catalog := valueobject.NewISOCurrencyCatalog()

	ws, err := NewWorkspace("Acme Books", valueobject.CurrencyUSD, catalog, uuid.New())
	require.NoError(t, err)

	assert.Error(t, ws.ChangeDefaultCurrency("ZZZ", catalog))
	assert.Equal(t, valueobject.CurrencyUSD, ws.DefaultCurrency)
}

func TestWorkspace_Rename(t *testing.T) {
	catalog := valueobject.NewISOCurrencyCatalog()

	ws, err := NewWorkspace("Acme Books", valueobject.CurrencyUSD, catalog, uuid.New())
	require.NoError(t, err)

	require.NoError(t, ws.Rename("  Acme Accounting  "))
	assert.Equal(t, "Acme Accounting", ws.Name)
	assert.Equal(t, 2, ws.GetVersion())

	assert.Error(t, ws.Rename(""))
	assert.Equal(t, 2, ws.GetVersion())
}
