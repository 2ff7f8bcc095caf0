package workspace

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest contains the input for account registration. A workspace is
// created together with the account so the user can start recording
// immediately.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	DisplayName     string `json:"display_name" binding:"max=255"`
	WorkspaceName   string `json:"workspace_name" binding:"required,max=255"`
	DefaultCurrency string `json:"default_currency" binding:"required,len=3"`
}

// LoginRequest contains the input for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse contains the result of a successful login or registration
type AuthResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
}

// RefreshRequest contains the input for token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResponse contains the result of a token refresh
type RefreshResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ChangePasswordRequest contains the input for a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// CreateWorkspaceRequest contains the input for creating an extra workspace
type CreateWorkspaceRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	DefaultCurrency string `json:"default_currency" binding:"required,len=3"`
}

// UpdateWorkspaceRequest contains the input for renaming a workspace or
// changing its default currency
type UpdateWorkspaceRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	DefaultCurrency string `json:"default_currency" binding:"required,len=3"`
}

// WorkspaceResponse represents a workspace in API responses
type WorkspaceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DefaultCurrency string    `json:"default_currency"`
	OwnerID         uuid.UUID `json:"owner_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `json:"version"`
}

// MemberRequest contains the input for workspace membership changes
type MemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}
