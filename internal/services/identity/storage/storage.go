// Package storage defines persistence contracts for marketplace identities.
package storage

import (
	"context"
	"errors"
	"time"
)

// Storage sentinel errors.
var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("user already exists")
)

// Role is a marketplace role assigned to a user.
type Role string

// Known roles.
const (
	RolePlayer Role = "player"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

// Known reports whether the role is one of the marketplace roles.
func (r Role) Known() bool {
	switch r {
	case RolePlayer, RoleAgent, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is one marketplace account.
type User struct {
	ID          string
	Email       string
	DisplayName string
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserPage is one keyset page of users ordered by id.
type UserPage struct {
	Users         []User
	NextPageToken string
}

// UserStore persists marketplace accounts and role assignments.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrConflict when the id or
	// email is already taken.
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, userID string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	// SetRole reassigns a user's role. Returns ErrNotFound for unknown users.
	SetRole(ctx context.Context, userID string, role Role, updatedAt time.Time) error
	ListUsers(ctx context.Context, pageSize int, pageToken string) (UserPage, error)
	CountByRole(ctx context.Context) (map[Role]int, error)
}
