// Package admin exposes operator-only views over the marketplace: account
// listing, role reassignment, and the platform overview.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	identitystorage "github.com/pitchsideapp/pitchside/internal/services/identity/storage"
	requeststorage "github.com/pitchsideapp/pitchside/internal/services/requests/storage"
)

// Sentinel errors returned by admin operations.
var (
	ErrForbidden  = errors.New("admin role required")
	ErrNotFound   = errors.New("user not found")
	ErrValidation = errors.New("invalid admin input")
)

// IdentityGateway is the slice of the identity service admin needs.
type IdentityGateway interface {
	ListUsers(ctx context.Context, pageSize int, pageToken string) (identitystorage.UserPage, error)
	GetUser(ctx context.Context, userID string) (identitystorage.User, error)
	SetRole(ctx context.Context, userID string, role identitystorage.Role) error
	CountByRole(ctx context.Context) (map[identitystorage.Role]int, error)
}

// RequestsGateway reports contact request lifecycle counts.
type RequestsGateway interface {
	StatusCounts(ctx context.Context) (map[requeststorage.Status]int, error)
}

// DirectoryGateway reports aggregate player statistics.
type DirectoryGateway interface {
	AverageLatestRating(ctx context.Context) (float64, error)
}

// Service composes admin operations over the marketplace services.
type Service struct {
	identity  IdentityGateway
	requests  RequestsGateway
	directory DirectoryGateway
}

// NewService wires the admin service over its gateways.
func NewService(identity IdentityGateway, requests RequestsGateway, directory DirectoryGateway) *Service {
	return &Service{
		identity:  identity,
		requests:  requests,
		directory: directory,
	}
}

func requireAdmin(actor requestctx.Actor) error {
	if actor.UserID == "" || actor.Role != requestctx.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// ListUsers returns one page of marketplace accounts. Admin only.
func (s *Service) ListUsers(ctx context.Context, actor requestctx.Actor, pageSize int, pageToken string) (identitystorage.UserPage, error) {
	if err := requireAdmin(actor); err != nil {
		return identitystorage.UserPage{}, err
	}
	page, err := s.identity.ListUsers(ctx, pageSize, pageToken)
	if err != nil {
		return identitystorage.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	return page, nil
}

// ChangeRole reassigns a user's marketplace role. Admin only; admins cannot
// change their own role.
func (s *Service) ChangeRole(ctx context.Context, actor requestctx.Actor, userID string, role identitystorage.Role) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if !role.Known() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if userID == actor.UserID {
		return fmt.Errorf("%w: admins cannot change their own role", ErrValidation)
	}

	if _, err := s.identity.GetUser(ctx, userID); err != nil {
		if errors.Is(err, identitystorage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.identity.SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, identitystorage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// Stats is the platform overview shown on the admin dashboard.
type Stats struct {
	TotalUsers       int
	Players          int
	Agents           int
	Admins           int
	TotalRequests    int
	PendingRequests  int
	AcceptedRequests int
	DeclinedRequests int
	AverageRating    float64
}

// PlatformStats aggregates counts across the marketplace. Admin only.
func (s *Service) PlatformStats(ctx context.Context, actor requestctx.Actor) (Stats, error) {
	if err := requireAdmin(actor); err != nil {
		return Stats{}, err
	}

	roleCounts, err := s.identity.CountByRole(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	statusCounts, err := s.requests.StatusCounts(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count requests: %w", err)
	}
	averageRating, err := s.directory.AverageLatestRating(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("average rating: %w", err)
	}

	stats := Stats{
		Players:          roleCounts[identitystorage.RolePlayer],
		Agents:           roleCounts[identitystorage.RoleAgent],
		Admins:           roleCounts[identitystorage.RoleAdmin],
		PendingRequests:  statusCounts[requeststorage.StatusPending],
		AcceptedRequests: statusCounts[requeststorage.StatusAccepted],
		DeclinedRequests: statusCounts[requeststorage.StatusDeclined],
		AverageRating:    averageRating,
	}
	stats.TotalUsers = stats.Players + stats.Agents + stats.Admins
	stats.TotalRequests = stats.PendingRequests + stats.AcceptedRequests + stats.DeclinedRequests
	return stats, nil
}
