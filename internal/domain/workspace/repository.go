package workspace

import (
	"context"

	"github.com/google/uuid"
)

// WorkspaceRepository defines the interface for workspace persistence
type WorkspaceRepository interface {
	// FindByID finds a workspace by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Workspace, error)

	// FindByUser finds all workspaces a user owns or is a member of
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Workspace, error)

	// Save creates or updates a workspace
	Save(ctx context.Context, ws *Workspace) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, ws *Workspace) error

	// Delete deletes a workspace
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember adds a user to a workspace
	AddMember(ctx context.Context, workspaceID, userID uuid.UUID) error

	// RemoveMember removes a user from a workspace
	RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error

	// IsMember checks whether a user owns or belongs to a workspace
	IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
}

// UserRepository defines the interface for user account persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an account with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}
