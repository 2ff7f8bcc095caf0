package workspace

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/simpleaccounting/backend/internal/domain/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWorkspaceService(wsRepo *MockWorkspaceRepository, userRepo *MockUserRepository, cache *MockSettingsInvalidator) *WorkspaceService {
	return NewWorkspaceService(wsRepo, userRepo, valueobject.NewISOCurrencyCatalog(), cache, zap.NewNop())
}

func newOwnedWorkspace(t *testing.T, ownerID uuid.UUID) *workspace.Workspace {
	ws, err := workspace.NewWorkspace("My Business", valueobject.CurrencyUSD, valueobject.NewISOCurrencyCatalog(), ownerID)
	require.NoError(t, err)
	return ws
}

func TestWorkspaceService_CreateWorkspace(t *testing.T) {
	wsRepo := new(MockWorkspaceRepository)
	userRepo := new(MockUserRepository)
	cache := new(MockSettingsInvalidator)
	svc := newTestWorkspaceService(wsRepo, userRepo, cache)

	ownerID := uuid.New()
	wsRepo.On("Save", mock.Anything, mock.AnythingOfType("*workspace.Workspace")).Return(nil)
	wsRepo.On("AddMember", mock.Anything, mock.Anything, ownerID).Return(nil)

	resp, err := svc.CreateWorkspace(context.Background(), ownerID, CreateWorkspaceRequest{
		Name:            "Side Project",
		DefaultCurrency: "EUR",
	})

	require.NoError(t, err)
	assert.Equal(t, "Side Project", resp.Name)
	assert.Equal(t, "EUR", resp.DefaultCurrency)
	assert.Equal(t, ownerID, resp.OwnerID)
	wsRepo.AssertExpectations(t)
}

func TestWorkspaceService_UpdateWorkspace(t *testing.T) {
	t.Run("invalidates settings cache when default currency changes", func(t *testing.T) {
		wsRepo := new(MockWorkspaceRepository)
		userRepo := new(MockUserRepository)
		cache := new(MockSettingsInvalidator)
		svc := newTestWorkspaceService(wsRepo, userRepo, cache)

		ownerID := uuid.New()
		ws := newOwnedWorkspace(t, ownerID)

		wsRepo.On("FindByID", mock.Anything, ws.ID).Return(ws, nil)
		wsRepo.On("IsMember", mock.Anything, ws.ID, ownerID).Return(true, nil)
		wsRepo.On("SaveWithLock", mock.Anything, ws).Return(nil)
		cache.On("Invalidate", mock.Anything, ws.ID).Return(nil)

		resp, err := svc.UpdateWorkspace(context.Background(), ws.ID, ownerID, UpdateWorkspaceRequest{
			Name:            "My Business",
			DefaultCurrency: "EUR",
		})

		require.NoError(t, err)
		assert.Equal(t, "EUR", resp.DefaultCurrency)
		cache.AssertExpectations(t)
	})

	t.Run("keeps cache when currency is unchanged", func(t *testing.T) {
		wsRepo := new(MockWorkspaceRepository)
		userRepo := new(MockUserRepository)
		cache := new(MockSettingsInvalidator)
		svc := newTestWorkspaceService(wsRepo, userRepo, cache)

		ownerID := uuid.New()
		ws := newOwnedWorkspace(t, ownerID)

		wsRepo.On("FindByID", mock.Anything, ws.ID).Return(ws, nil)
		wsRepo.On("IsMember", mock.Anything, ws.ID, ownerID).Return(true, nil)
		wsRepo.On("SaveWithLock", mock.Anything, ws).Return(nil)

		_, err := svc.UpdateWorkspace(context.Background(), ws.ID, ownerID, UpdateWorkspaceRequest{
			Name:            "Renamed Business",
			DefaultCurrency: "USD",
		})

		require.NoError(t, err)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		wsRepo := new(MockWorkspaceRepository)
		userRepo := new(MockUserRepository)
		cache := new(MockSettingsInvalidator)
		svc := newTestWorkspaceService(wsRepo, userRepo, cache)

		ws := newOwnedWorkspace(t, uuid.New())
		memberID := uuid.New()

		wsRepo.On("FindByID", mock.Anything, ws.ID).Return(ws, nil)
		wsRepo.On("IsMember", mock.Anything, ws.ID, memberID).Return(true, nil)

		_, err := svc.UpdateWorkspace(context.Background(), ws.ID, memberID, UpdateWorkspaceRequest{
			Name:            "Hijacked",
			DefaultCurrency: "USD",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("rejects non-member", func(t *testing.T) {
		wsRepo := new(MockWorkspaceRepository)
		userRepo := new(MockUserRepository)
		cache := new(MockSettingsInvalidator)
		svc := newTestWorkspaceService(wsRepo, userRepo, cache)

		ws := newOwnedWorkspace(t, uuid.New())
		outsiderID := uuid.New()

		wsRepo.On("FindByID", mock.Anything, ws.ID).Return(ws, nil)
		wsRepo.On("IsMember", mock.Anything, ws.ID, outsiderID).Return(false, nil)

		_, err := svc.GetWorkspace(context.Background(), ws.ID, outsiderID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestWorkspaceService_RemoveMember(t *testing.T) {
	t.Run("owner cannot be removed", func(t *testing.T) {
		wsRepo := new(MockWorkspaceRepository)
		userRepo := new(MockUserRepository)
		cache := new(MockSettingsInvalidator)
		svc := newTestWorkspaceService(wsRepo, userRepo, cache)

		ownerID := uuid.New()
		ws := newOwnedWorkspace(t, ownerID)

		wsRepo.On("FindByID", mock.Anything, ws.ID).Return(ws, nil)
		wsRepo.On("IsMember", mock.Anything, ws.ID, ownerID).Return(true, nil)

		err := svc.RemoveMember(context.Background(), ws.ID, ownerID, ownerID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("owner removes a member", func(t *testing.T) {
		wsRepo := new(MockWorkspaceRepository)
		userRepo := new(MockUserRepository)
		cache := new(MockSettingsInvalidator)
		svc := newTestWorkspaceService(wsRepo, userRepo, cache)

		ownerID := uuid.New()
		memberID := uuid.New()
		ws := newOwnedWorkspace(t, ownerID)

		wsRepo.On("FindByID", mock.Anything, ws.ID).Return(ws, nil)
		wsRepo.On("IsMember", mock.Anything, ws.ID, ownerID).Return(true, nil)
		wsRepo.On("RemoveMember", mock.Anything, ws.ID, memberID).Return(nil)

		err := svc.RemoveMember(context.Background(), ws.ID, ownerID, memberID)

		require.NoError(t, err)
		wsRepo.AssertExpectations(t)
	})
}
