// Package identity manages marketplace accounts, role assignments, and
// session tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/id"
	"github.com/pitchsideapp/pitchside/internal/services/identity/storage"
)

// Sentinel errors returned by identity operations. ErrNotFound aliases the
// storage sentinel so callers can match either.
var (
	ErrNotFound   = storage.ErrNotFound
	ErrConflict   = errors.New("email is already registered")
	ErrValidation = errors.New("invalid identity input")
)

// Service coordinates account management over a UserStore and Signer.
type Service struct {
	store  storage.UserStore
	signer *Signer
	clock  func() time.Time
	newID  func() (string, error)
}

// NewService wires an identity service over its store and token signer.
func NewService(store storage.UserStore, signer *Signer) *Service {
	return &Service{
		store:  store,
		signer: signer,
		clock:  time.Now,
		newID:  id.NewID,
	}
}

// RegisterParams carries the fields needed to create an account.
type RegisterParams struct {
	Email       string
	DisplayName string
	Role        storage.Role
}

// Register creates an account and returns it with a fresh session token.
func (s *Service) Register(ctx context.Context, params RegisterParams) (storage.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return storage.User{}, "", fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if !params.Role.Known() {
		return storage.User{}, "", fmt.Errorf("%w: unknown role %q", ErrValidation, params.Role)
	}
	if params.Role == storage.RoleAdmin {
		return storage.User{}, "", fmt.Errorf("%w: admin accounts cannot self-register", ErrValidation)
	}

	userID, err := s.newID()
	if err != nil {
		return storage.User{}, "", fmt.Errorf("generate user id: %w", err)
	}
	now := s.clock().UTC()
	user := storage.User{
		ID:          userID,
		Email:       email,
		DisplayName: strings.TrimSpace(params.DisplayName),
		Role:        params.Role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return storage.User{}, "", ErrConflict
		}
		return storage.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.signer.Mint(user.ID, user.Role)
	if err != nil {
		return storage.User{}, "", fmt.Errorf("mint session token: %w", err)
	}
	return user, token, nil
}

// SessionToken mints a fresh session token for an existing user.
func (s *Service) SessionToken(ctx context.Context, userID string) (string, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	token, err := s.signer.Mint(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("mint session token: %w", err)
	}
	return token, nil
}

// VerifyToken validates a session token and returns its claims.
func (s *Service) VerifyToken(token string) (SessionClaims, error) {
	return s.signer.Verify(token)
}

// GetUser returns one account by id.
func (s *Service) GetUser(ctx context.Context, userID string) (storage.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.User{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.User{}, ErrNotFound
		}
		return storage.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail returns one account by email.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (storage.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return storage.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.User{}, ErrNotFound
		}
		return storage.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// SetRole reassigns a user's role.
func (s *Service) SetRole(ctx context.Context, userID string, role storage.Role) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if !role.Known() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if err := s.store.SetRole(ctx, userID, role, s.clock().UTC()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// ListUsers returns one page of accounts, keyset-paged by id.
func (s *Service) ListUsers(ctx context.Context, pageSize int, pageToken string) (storage.UserPage, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	page, err := s.store.ListUsers(ctx, pageSize, strings.TrimSpace(pageToken))
	if err != nil {
		return storage.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	return page, nil
}

// CountByRole returns the number of accounts per role.
func (s *Service) CountByRole(ctx context.Context) (map[storage.Role]int, error) {
	counts, err := s.store.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return counts, nil
}
