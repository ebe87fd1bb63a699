// Package storage defines persistence contracts for agent shortlists.
package storage

import (
	"context"
	"time"
)

// Entry is one shortlisted player, scoped to the owning agent.
type Entry struct {
	AgentID   string
	PlayerID  string
	CreatedAt time.Time
}

// Page is one keyset page of shortlist entries ordered by player id.
type Page struct {
	Entries       []Entry
	NextPageToken string
}

// ShortlistStore persists agent shortlists.
type ShortlistStore interface {
	// Add records a shortlist entry. Adding an existing pair is a no-op.
	Add(ctx context.Context, entry Entry) error
	// Remove deletes a shortlist entry. Removing a missing pair is a no-op.
	Remove(ctx context.Context, agentID string, playerID string) error
	// Has reports whether the agent has shortlisted the player.
	Has(ctx context.Context, agentID string, playerID string) (bool, error)
	// Clear removes every entry owned by the agent.
	Clear(ctx context.Context, agentID string) error
	// List returns one page of the agent's entries, ordered by player id.
	List(ctx context.Context, agentID string, pageSize int, pageToken string) (Page, error)
	// ListAll returns every entry owned by the agent.
	ListAll(ctx context.Context, agentID string) ([]Entry, error)
	// Count returns the number of entries owned by the agent.
	Count(ctx context.Context, agentID string) (int, error)
}
