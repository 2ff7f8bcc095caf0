package workspace

import (
	"context"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/simpleaccounting/backend/internal/domain/workspace"
	"github.com/simpleaccounting/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo      workspace.UserRepository
	workspaceRepo workspace.WorkspaceRepository
	jwtService    *auth.JWTService
	catalog       valueobject.CurrencyCatalog
	logger        *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo workspace.UserRepository,
	workspaceRepo workspace.WorkspaceRepository,
	jwtService *auth.JWTService,
	catalog valueobject.CurrencyCatalog,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		workspaceRepo: workspaceRepo,
		jwtService:    jwtService,
		catalog:       catalog,
		logger:        logger,
	}
}

// Register creates a user account together with its first workspace and
// returns a token pair for the new session
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := workspace.NewUser(req.Email, req.Password, req.DisplayName)
	if err != nil {
		return nil, err
	}

	ws, err := workspace.NewWorkspace(req.WorkspaceName, valueobject.Currency(req.DefaultCurrency), s.catalog, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.workspaceRepo.Save(ctx, ws); err != nil {
		return nil, err
	}
	if err := s.workspaceRepo.AddMember(ctx, ws.ID, user.ID); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("workspace_id", ws.ID.String()))

	return s.issueTokens(user, ws.ID)
}

// Login authenticates a user and returns tokens scoped to their workspace
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.VerifyPassword(req.Password) {
		s.logger.Warn("Failed login attempt", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	workspaces, err := s.workspaceRepo.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, shared.NewDomainError("NO_WORKSPACE", "Account has no workspace")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.issueTokens(user, workspaces[0].ID)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Email)
	if err != nil {
		return nil, mapTokenError(err)
	}

	return &RefreshResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// ChangePassword changes the password of the given user
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return shared.NewDomainError("NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// GetCurrentUser returns the profile of the authenticated user
func (s *AuthService) GetCurrentUser(ctx context.Context, workspaceID, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	return &UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		WorkspaceID: workspaceID,
	}, nil
}

func (s *AuthService) issueTokens(user *workspace.User, workspaceID uuid.UUID) (*AuthResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		Email:       user.Email,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User: UserInfo{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			WorkspaceID: workspaceID,
		},
	}, nil
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
