// Package storage defines persistence contracts for contact request state.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested contact request record is missing.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a conditional transition found the record in a
// non-pending state at write time.
var ErrConflict = errors.New("request is not pending")

// Status is the lifecycle state of a contact request.
type Status string

// Lifecycle states. Pending is initial; the other two are terminal.
const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// RequestType categorizes the agent's intent.
type RequestType string

const (
	TypeTrial          RequestType = "trial"
	TypeRepresentation RequestType = "representation"
)

// KnownType reports whether the request type is a recognized category.
func KnownType(t RequestType) bool {
	switch t {
	case TypeTrial, TypeRepresentation:
		return true
	default:
		return false
	}
}

// ContactRequest stores one agent's interest in one player.
type ContactRequest struct {
	ID        string
	PlayerID  string
	AgentID   string
	Type      RequestType
	Message   string
	Status    Status
	CreatedAt time.Time
	DecidedAt time.Time
}

// RequestStore persists contact requests and their lifecycle transitions.
type RequestStore interface {
	PutRequest(ctx context.Context, request ContactRequest) error
	GetRequest(ctx context.Context, id string) (ContactRequest, error)
	// ResolveRequest moves one request from pending to the given terminal
	// status. The write is conditional on the stored status still being
	// pending; a lost race or an already-resolved record yields ErrConflict.
	ResolveRequest(ctx context.Context, id string, status Status, decidedAt time.Time) (ContactRequest, error)
	ListPendingForPlayer(ctx context.Context, playerID string) ([]ContactRequest, error)
	ListForAgent(ctx context.Context, agentID string) ([]ContactRequest, error)
	CountPendingForPlayer(ctx context.Context, playerID string) (int, error)
	HasPendingPair(ctx context.Context, agentID string, playerID string) (bool, error)
	HasAcceptedPair(ctx context.Context, agentID string, playerID string) (bool, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
