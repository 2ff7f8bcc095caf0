package workspace

import (
	"context"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/simpleaccounting/backend/internal/domain/workspace"
	"go.uber.org/zap"
)

// SettingsInvalidator drops cached workspace settings after they change.
// Implemented by the Redis settings cache.
type SettingsInvalidator interface {
	Invalidate(ctx context.Context, workspaceID uuid.UUID) error
}

// WorkspaceService handles workspace management operations
type WorkspaceService struct {
	workspaceRepo workspace.WorkspaceRepository
	userRepo      workspace.UserRepository
	catalog       valueobject.CurrencyCatalog
	settingsCache SettingsInvalidator
	logger        *zap.Logger
}

// NewWorkspaceService creates a new WorkspaceService
func NewWorkspaceService(
	workspaceRepo workspace.WorkspaceRepository,
	userRepo workspace.UserRepository,
	catalog valueobject.CurrencyCatalog,
	settingsCache SettingsInvalidator,
	logger *zap.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		catalog:       catalog,
		settingsCache: settingsCache,
		logger:        logger,
	}
}

// CreateWorkspace creates an additional workspace owned by the user
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, ownerID uuid.UUID, req CreateWorkspaceRequest) (*WorkspaceResponse, error) {
	ws, err := workspace.NewWorkspace(req.Name, valueobject.Currency(req.DefaultCurrency), s.catalog, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.Save(ctx, ws); err != nil {
		return nil, err
	}
	if err := s.workspaceRepo.AddMember(ctx, ws.ID, ownerID); err != nil {
		return nil, err
	}

	s.logger.Info("Workspace created",
		zap.String("workspace_id", ws.ID.String()),
		zap.String("owner_id", ownerID.String()))

	return toWorkspaceResponse(ws), nil
}

// GetWorkspace gets a workspace the user belongs to
func (s *WorkspaceService) GetWorkspace(ctx context.Context, id, userID uuid.UUID) (*WorkspaceResponse, error) {
	ws, err := s.findForMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return toWorkspaceResponse(ws), nil
}

// ListWorkspaces lists the workspaces a user owns or is a member of
func (s *WorkspaceService) ListWorkspaces(ctx context.Context, userID uuid.UUID) ([]WorkspaceResponse, error) {
	workspaces, err := s.workspaceRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		items = append(items, *toWorkspaceResponse(&workspaces[i]))
	}
	return items, nil
}

// UpdateWorkspace renames a workspace and/or changes its default currency.
// Changing the default currency does not rewrite existing records; their
// derived amounts stay denominated in the currency they were computed with.
func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, id, userID uuid.UUID, req UpdateWorkspaceRequest) (*WorkspaceResponse, error) {
	ws, err := s.findForMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !ws.IsOwnedBy(userID) {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the workspace owner can update it")
	}

	currencyChanged := ws.DefaultCurrency != valueobject.Currency(req.DefaultCurrency)

	if err := ws.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := ws.ChangeDefaultCurrency(valueobject.Currency(req.DefaultCurrency), s.catalog); err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.SaveWithLock(ctx, ws); err != nil {
		return nil, err
	}

	if currencyChanged {
		if err := s.settingsCache.Invalidate(ctx, ws.ID); err != nil {
			// Cache entries expire on their own; a failed invalidation only
			// delays visibility of the new currency.
			s.logger.Warn("Failed to invalidate workspace settings cache",
				zap.String("workspace_id", ws.ID.String()), zap.Error(err))
		}
	}

	return toWorkspaceResponse(ws), nil
}

// DeleteWorkspace deletes a workspace; owner only
func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, id, userID uuid.UUID) error {
	ws, err := s.findForMember(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ws.IsOwnedBy(userID) {
		return shared.NewDomainError("FORBIDDEN", "Only the workspace owner can delete it")
	}

	if err := s.workspaceRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.settingsCache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("Failed to invalidate workspace settings cache",
			zap.String("workspace_id", id.String()), zap.Error(err))
	}

	s.logger.Info("Workspace deleted", zap.String("workspace_id", id.String()))
	return nil
}

// AddMember adds a user to a workspace; owner only
func (s *WorkspaceService) AddMember(ctx context.Context, id, ownerID uuid.UUID, req MemberRequest) error {
	ws, err := s.findForMember(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !ws.IsOwnedBy(ownerID) {
		return shared.NewDomainError("FORBIDDEN", "Only the workspace owner can manage members")
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return shared.NewDomainError("NOT_FOUND", "User not found")
	}

	return s.workspaceRepo.AddMember(ctx, id, req.UserID)
}

// RemoveMember removes a user from a workspace; owner only, and the owner
// cannot be removed
func (s *WorkspaceService) RemoveMember(ctx context.Context, id, ownerID, userID uuid.UUID) error {
	ws, err := s.findForMember(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !ws.IsOwnedBy(ownerID) {
		return shared.NewDomainError("FORBIDDEN", "Only the workspace owner can manage members")
	}
	if ws.IsOwnedBy(userID) {
		return shared.NewDomainError("INVALID_STATE", "The workspace owner cannot be removed")
	}

	return s.workspaceRepo.RemoveMember(ctx, id, userID)
}

func (s *WorkspaceService) findForMember(ctx context.Context, id, userID uuid.UUID) (*workspace.Workspace, error) {
	ws, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Workspace not found")
	}

	member, err := s.workspaceRepo.IsMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, shared.NewDomainError("FORBIDDEN", "Not a member of this workspace")
	}
	return ws, nil
}

func toWorkspaceResponse(ws *workspace.Workspace) *WorkspaceResponse {
	return &WorkspaceResponse{
		ID:              ws.ID,
		Name:            ws.Name,
		DefaultCurrency: string(ws.DefaultCurrency),
		OwnerID:         ws.OwnerID,
		CreatedAt:       ws.CreatedAt,
		UpdatedAt:       ws.UpdatedAt,
		Version:         ws.Version,
	}
}
