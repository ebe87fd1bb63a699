// Package requests owns the contact request lifecycle between agents and
// players: creation, the single pending→accepted/declined transition, and
// the visibility gate that acceptance opens.
package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitchsideapp/pitchside/internal/platform/id"
	"github.com/pitchsideapp/pitchside/internal/services/requests/storage"
)

// Lifecycle error taxonomy. Every engine operation fails with one of these
// (possibly wrapped with detail) or a storage error.
var (
	// ErrNotFound indicates the request id does not exist.
	ErrNotFound = errors.New("contact request not found")
	// ErrForbidden indicates the acting user is not allowed to perform the
	// transition or read the record.
	ErrForbidden = errors.New("actor is not permitted")
	// ErrInvalidTransition indicates the record was not pending at write
	// time: already resolved, or the caller lost a concurrent race.
	ErrInvalidTransition = errors.New("request is not pending")
	// ErrValidation indicates malformed creation input.
	ErrValidation = errors.New("invalid request input")
	// ErrAlreadyRequested indicates the agent already has a pending request
	// for the same player. Deliberate strengthening over the observed
	// behavior; see DESIGN.md.
	ErrAlreadyRequested = errors.New("pending request already exists for this player")
)

const messageMaxLength = 2000

// PlayerDirectory resolves whether a player profile exists.
type PlayerDirectory interface {
	PlayerExists(ctx context.Context, playerID string) (bool, error)
}

// Engine enforces the contact request state machine and its authorization
// rules over a request store.
type Engine struct {
	store   storage.RequestStore
	players PlayerDirectory
	clock   func() time.Time
	newID   func() (string, error)
}

// NewEngine creates a lifecycle engine backed by request storage.
func NewEngine(store storage.RequestStore, players PlayerDirectory) *Engine {
	return &Engine{
		store:   store,
		players: players,
		clock:   time.Now,
		newID:   id.NewID,
	}
}

// CreateParams carries agent input for a new contact request.
type CreateParams struct {
	AgentID  string
	PlayerID string
	Type     storage.RequestType
	Message  string
}

// Create records a new pending request from an agent to a player.
func (e *Engine) Create(ctx context.Context, params CreateParams) (storage.ContactRequest, error) {
	if e == nil || e.store == nil {
		return storage.ContactRequest{}, fmt.Errorf("request store is not configured")
	}
	agentID := strings.TrimSpace(params.AgentID)
	playerID := strings.TrimSpace(params.PlayerID)
	if agentID == "" {
		return storage.ContactRequest{}, fmt.Errorf("%w: agent id is required", ErrValidation)
	}
	if playerID == "" {
		return storage.ContactRequest{}, fmt.Errorf("%w: player id is required", ErrValidation)
	}
	if agentID == playerID {
		return storage.ContactRequest{}, fmt.Errorf("%w: agent cannot request contact with themselves", ErrValidation)
	}
	if !storage.KnownType(params.Type) {
		return storage.ContactRequest{}, fmt.Errorf("%w: unrecognized request type %q", ErrValidation, params.Type)
	}
	message := strings.TrimSpace(params.Message)
	if len(message) > messageMaxLength {
		return storage.ContactRequest{}, fmt.Errorf("%w: message exceeds %d characters", ErrValidation, messageMaxLength)
	}

	if e.players != nil {
		exists, err := e.players.PlayerExists(ctx, playerID)
		if err != nil {
			return storage.ContactRequest{}, fmt.Errorf("check player: %w", err)
		}
		if !exists {
			return storage.ContactRequest{}, fmt.Errorf("%w: player %s does not exist", ErrValidation, playerID)
		}
	}

	pending, err := e.store.HasPendingPair(ctx, agentID, playerID)
	if err != nil {
		return storage.ContactRequest{}, fmt.Errorf("check pending pair: %w", err)
	}
	if pending {
		return storage.ContactRequest{}, ErrAlreadyRequested
	}

	requestID, err := e.newID()
	if err != nil {
		return storage.ContactRequest{}, fmt.Errorf("generate request id: %w", err)
	}
	request := storage.ContactRequest{
		ID:        requestID,
		PlayerID:  playerID,
		AgentID:   agentID,
		Type:      params.Type,
		Message:   message,
		Status:    storage.StatusPending,
		CreatedAt: e.now(),
	}
	if err := e.store.PutRequest(ctx, request); err != nil {
		return storage.ContactRequest{}, fmt.Errorf("create request: %w", err)
	}
	return request, nil
}

// Accept moves a pending request to accepted. Only the named player may call
// it, and only while the record is still pending.
func (e *Engine) Accept(ctx context.Context, requestID string, actingPlayerID string) (storage.ContactRequest, error) {
	return e.resolve(ctx, requestID, actingPlayerID, storage.StatusAccepted)
}

// Decline moves a pending request to declined under the same preconditions
// as Accept.
func (e *Engine) Decline(ctx context.Context, requestID string, actingPlayerID string) (storage.ContactRequest, error) {
	return e.resolve(ctx, requestID, actingPlayerID, storage.StatusDeclined)
}

func (e *Engine) resolve(ctx context.Context, requestID string, actingPlayerID string, status storage.Status) (storage.ContactRequest, error) {
	if e == nil || e.store == nil {
		return storage.ContactRequest{}, fmt.Errorf("request store is not configured")
	}
	requestID = strings.TrimSpace(requestID)
	actingPlayerID = strings.TrimSpace(actingPlayerID)
	if requestID == "" {
		return storage.ContactRequest{}, fmt.Errorf("%w: request id is required", ErrValidation)
	}
	if actingPlayerID == "" {
		return storage.ContactRequest{}, ErrForbidden
	}

	request, err := e.store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ContactRequest{}, ErrNotFound
		}
		return storage.ContactRequest{}, fmt.Errorf("load request: %w", err)
	}
	// PlayerID is immutable, so checking the snapshot is race-free even
	// though the status transition itself is decided at write time.
	if request.PlayerID != actingPlayerID {
		return storage.ContactRequest{}, ErrForbidden
	}

	resolved, err := e.store.ResolveRequest(ctx, requestID, status, e.now())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			return storage.ContactRequest{}, ErrInvalidTransition
		case errors.Is(err, storage.ErrNotFound):
			return storage.ContactRequest{}, ErrNotFound
		default:
			return storage.ContactRequest{}, fmt.Errorf("resolve request: %w", err)
		}
	}
	return resolved, nil
}

// Get returns one request. Visibility is restricted to the named player and
// the originating agent.
func (e *Engine) Get(ctx context.Context, requestID string, actorID string) (storage.ContactRequest, error) {
	if e == nil || e.store == nil {
		return storage.ContactRequest{}, fmt.Errorf("request store is not configured")
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return storage.ContactRequest{}, fmt.Errorf("%w: request id is required", ErrValidation)
	}
	request, err := e.store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ContactRequest{}, ErrNotFound
		}
		return storage.ContactRequest{}, fmt.Errorf("load request: %w", err)
	}
	actorID = strings.TrimSpace(actorID)
	if actorID != request.PlayerID && actorID != request.AgentID {
		return storage.ContactRequest{}, ErrForbidden
	}
	return request, nil
}

// ListPendingForPlayer returns the player's inbox, newest first.
func (e *Engine) ListPendingForPlayer(ctx context.Context, playerID string) ([]storage.ContactRequest, error) {
	if e == nil || e.store == nil {
		return nil, fmt.Errorf("request store is not configured")
	}
	return e.store.ListPendingForPlayer(ctx, playerID)
}

// PendingCountForPlayer returns the player's inbox badge count.
func (e *Engine) PendingCountForPlayer(ctx context.Context, playerID string) (int, error) {
	if e == nil || e.store == nil {
		return 0, fmt.Errorf("request store is not configured")
	}
	return e.store.CountPendingForPlayer(ctx, playerID)
}

// ListForAgent returns every request the agent created, any status.
func (e *Engine) ListForAgent(ctx context.Context, agentID string) ([]storage.ContactRequest, error) {
	if e == nil || e.store == nil {
		return nil, fmt.Errorf("request store is not configured")
	}
	return e.store.ListForAgent(ctx, agentID)
}

// AllowContact is the single source of truth for the contact-detail
// visibility gate: the agent may view the player's gated detail iff an
// accepted request exists for the pair.
func (e *Engine) AllowContact(ctx context.Context, agentID string, playerID string) (bool, error) {
	if e == nil || e.store == nil {
		return false, fmt.Errorf("request store is not configured")
	}
	return e.store.HasAcceptedPair(ctx, agentID, playerID)
}

// StatusCounts returns the number of requests per lifecycle state. It backs
// the admin platform overview.
func (e *Engine) StatusCounts(ctx context.Context) (map[storage.Status]int, error) {
	if e == nil || e.store == nil {
		return nil, fmt.Errorf("request store is not configured")
	}
	return e.store.CountByStatus(ctx)
}

func (e *Engine) now() time.Time {
	if e.clock != nil {
		return e.clock()
	}
	return time.Now()
}
