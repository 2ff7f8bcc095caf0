package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/simpleaccounting/backend/internal/domain/workspace"
)

// WorkspaceModel is the persistence model for the Workspace aggregate root.
type WorkspaceModel struct {
	AggregateModel
	Name            string               `gorm:"type:varchar(255);not null"`
	DefaultCurrency valueobject.Currency `gorm:"type:varchar(3);not null"`
	OwnerID         uuid.UUID            `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (WorkspaceModel) TableName() string {
	return "workspaces"
}

// ToDomain converts the persistence model to a domain Workspace entity.
func (m *WorkspaceModel) ToDomain() *workspace.Workspace {
	ws := &workspace.Workspace{
		Name:            m.Name,
		DefaultCurrency: m.DefaultCurrency,
		OwnerID:         m.OwnerID,
	}
	m.PopulateAggregateRoot(&ws.BaseAggregateRoot)
	return ws
}

// FromDomain populates the persistence model from a domain Workspace entity.
func (m *WorkspaceModel) FromDomain(ws *workspace.Workspace) {
	m.FromDomainAggregateRoot(ws.BaseAggregateRoot)
	m.Name = ws.Name
	m.DefaultCurrency = ws.DefaultCurrency
	m.OwnerID = ws.OwnerID
}

// WorkspaceModelFromDomain creates a new persistence model from a domain Workspace.
func WorkspaceModelFromDomain(ws *workspace.Workspace) *WorkspaceModel {
	m := &WorkspaceModel{}
	m.FromDomain(ws)
	return m
}

// WorkspaceMemberModel is the persistence model for workspace membership.
// The composite primary key makes duplicate memberships impossible.
type WorkspaceMemberModel struct {
	WorkspaceID uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;primary_key;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WorkspaceMemberModel) TableName() string {
	return "workspace_members"
}

// ToDomain converts the persistence model to a domain WorkspaceMember.
func (m *WorkspaceMemberModel) ToDomain() workspace.WorkspaceMember {
	return workspace.WorkspaceMember{
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	AggregateModel
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	DisplayName  string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *workspace.User {
	user := &workspace.User{
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *workspace.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *workspace.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
