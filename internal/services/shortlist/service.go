// Package shortlist tracks the players an agent is keeping an eye on.
package shortlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitchsideapp/pitchside/internal/services/shortlist/storage"
)

// ErrValidation indicates invalid shortlist input.
var ErrValidation = errors.New("invalid shortlist input")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PlayerCatalog resolves playing positions for shortlisted players.
type PlayerCatalog interface {
	PlayerPositions(ctx context.Context, playerIDs []string) (map[string]string, error)
}

// Service coordinates shortlist operations for agents.
type Service struct {
	store   storage.ShortlistStore
	catalog PlayerCatalog
	clock   func() time.Time
}

// NewService wires a shortlist service over its store and player catalog.
func NewService(store storage.ShortlistStore, catalog PlayerCatalog) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		clock:   time.Now,
	}
}

func pair(agentID string, playerID string) (string, string, error) {
	agentID = strings.TrimSpace(agentID)
	playerID = strings.TrimSpace(playerID)
	if agentID == "" {
		return "", "", fmt.Errorf("%w: agent id is required", ErrValidation)
	}
	if playerID == "" {
		return "", "", fmt.Errorf("%w: player id is required", ErrValidation)
	}
	return agentID, playerID, nil
}

// Add shortlists a player for the agent. Idempotent.
func (s *Service) Add(ctx context.Context, agentID string, playerID string) error {
	agentID, playerID, err := pair(agentID, playerID)
	if err != nil {
		return err
	}
	entry := storage.Entry{AgentID: agentID, PlayerID: playerID, CreatedAt: s.clock().UTC()}
	if err := s.store.Add(ctx, entry); err != nil {
		return fmt.Errorf("add shortlist entry: %w", err)
	}
	return nil
}

// Remove drops a player from the agent's shortlist. Idempotent.
func (s *Service) Remove(ctx context.Context, agentID string, playerID string) error {
	agentID, playerID, err := pair(agentID, playerID)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, agentID, playerID); err != nil {
		return fmt.Errorf("remove shortlist entry: %w", err)
	}
	return nil
}

// Toggle flips shortlist membership and reports the resulting state.
func (s *Service) Toggle(ctx context.Context, agentID string, playerID string) (bool, error) {
	agentID, playerID, err := pair(agentID, playerID)
	if err != nil {
		return false, err
	}
	shortlisted, err := s.store.Has(ctx, agentID, playerID)
	if err != nil {
		return false, fmt.Errorf("check shortlist entry: %w", err)
	}
	if shortlisted {
		if err := s.store.Remove(ctx, agentID, playerID); err != nil {
			return false, fmt.Errorf("remove shortlist entry: %w", err)
		}
		return false, nil
	}
	entry := storage.Entry{AgentID: agentID, PlayerID: playerID, CreatedAt: s.clock().UTC()}
	if err := s.store.Add(ctx, entry); err != nil {
		return false, fmt.Errorf("add shortlist entry: %w", err)
	}
	return true, nil
}

// Has reports whether the agent has shortlisted the player.
func (s *Service) Has(ctx context.Context, agentID string, playerID string) (bool, error) {
	agentID, playerID, err := pair(agentID, playerID)
	if err != nil {
		return false, err
	}
	return s.store.Has(ctx, agentID, playerID)
}

// Clear empties the agent's shortlist.
func (s *Service) Clear(ctx context.Context, agentID string) error {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return fmt.Errorf("%w: agent id is required", ErrValidation)
	}
	if err := s.store.Clear(ctx, agentID); err != nil {
		return fmt.Errorf("clear shortlist: %w", err)
	}
	return nil
}

// List returns one page of the agent's shortlist, ordered by player id.
func (s *Service) List(ctx context.Context, agentID string, pageSize int, pageToken string) (storage.Page, error) {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return storage.Page{}, fmt.Errorf("%w: agent id is required", ErrValidation)
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	page, err := s.store.List(ctx, agentID, pageSize, strings.TrimSpace(pageToken))
	if err != nil {
		return storage.Page{}, fmt.Errorf("list shortlist: %w", err)
	}
	return page, nil
}

// Summary totals an agent's shortlist, broken down by playing position.
type Summary struct {
	Total        int
	ByPosition   map[string]int
	Unpositioned int
}

// Summarize reports the shortlist total and per-position breakdown.
func (s *Service) Summarize(ctx context.Context, agentID string) (Summary, error) {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return Summary{}, fmt.Errorf("%w: agent id is required", ErrValidation)
	}

	entries, err := s.store.ListAll(ctx, agentID)
	if err != nil {
		return Summary{}, fmt.Errorf("list shortlist: %w", err)
	}
	playerIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		playerIDs = append(playerIDs, entry.PlayerID)
	}
	positions, err := s.catalog.PlayerPositions(ctx, playerIDs)
	if err != nil {
		return Summary{}, fmt.Errorf("resolve positions: %w", err)
	}

	summary := Summary{Total: len(entries), ByPosition: make(map[string]int)}
	for _, entry := range entries {
		position, ok := positions[entry.PlayerID]
		if !ok || position == "" {
			summary.Unpositioned++
			continue
		}
		summary.ByPosition[position]++
	}
	return summary, nil
}
