package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/pitchsideapp/pitchside/internal/services/shortlist/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir() + "/shortlist.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func addEntry(t *testing.T, store *Store, agentID string, playerID string) {
	t.Helper()
	entry := storage.Entry{
		AgentID:   agentID,
		PlayerID:  playerID,
		CreatedAt: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := store.Add(context.Background(), entry); err != nil {
		t.Fatalf("add %s/%s: %v", agentID, playerID, err)
	}
}

func TestAddHasRemove(t *testing.T) {
	store := openTestStore(t)
	addEntry(t, store, "agent-1", "player-1")

	has, err := store.Has(context.Background(), "agent-1", "player-1")
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if !has {
		t.Fatal("expected entry")
	}

	// Duplicate add stays a single row.
	addEntry(t, store, "agent-1", "player-1")
	count, err := store.Count(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	if err := store.Remove(context.Background(), "agent-1", "player-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	has, err = store.Has(context.Background(), "agent-1", "player-1")
	if err != nil {
		t.Fatalf("has after remove: %v", err)
	}
	if has {
		t.Fatal("entry should be gone")
	}

	// Removing again is a no-op.
	if err := store.Remove(context.Background(), "agent-1", "player-1"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestClearScopedToAgent(t *testing.T) {
	store := openTestStore(t)
	addEntry(t, store, "agent-1", "player-1")
	addEntry(t, store, "agent-1", "player-2")
	addEntry(t, store, "agent-2", "player-1")

	if err := store.Clear(context.Background(), "agent-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	count, err := store.Count(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("count agent-1: %v", err)
	}
	if count != 0 {
		t.Fatalf("agent-1 count = %d, want 0", count)
	}
	count, err = store.Count(context.Background(), "agent-2")
	if err != nil {
		t.Fatalf("count agent-2: %v", err)
	}
	if count != 1 {
		t.Fatalf("agent-2 count = %d, want 1", count)
	}
}

func TestListKeysetPagination(t *testing.T) {
	store := openTestStore(t)
	for _, playerID := range []string{"player-a", "player-b", "player-c"} {
		addEntry(t, store, "agent-1", playerID)
	}

	first, err := store.List(context.Background(), "agent-1", 2, "")
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Entries) != 2 {
		t.Fatalf("first page len = %d, want 2", len(first.Entries))
	}
	if first.Entries[0].PlayerID != "player-a" || first.NextPageToken != "player-b" {
		t.Fatalf("first page = %+v", first)
	}

	second, err := store.List(context.Background(), "agent-1", 2, first.NextPageToken)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Entries) != 1 || second.NextPageToken != "" {
		t.Fatalf("second page = %+v", second)
	}
}

func TestListAll(t *testing.T) {
	store := openTestStore(t)
	for _, playerID := range []string{"player-c", "player-a", "player-b"} {
		addEntry(t, store, "agent-1", playerID)
	}

	entries, err := store.ListAll(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].PlayerID != "player-a" || entries[2].PlayerID != "player-c" {
		t.Fatalf("order = %+v", entries)
	}
}

func TestValidationErrors(t *testing.T) {
	store := openTestStore(t)

	if err := store.Add(context.Background(), storage.Entry{AgentID: "", PlayerID: "player-1"}); err == nil {
		t.Fatal("expected error for missing agent id")
	}
	if _, err := store.List(context.Background(), "agent-1", 0, ""); err == nil {
		t.Fatal("expected error for zero page size")
	}
}
