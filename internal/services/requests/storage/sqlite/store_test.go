package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchsideapp/pitchside/internal/services/requests/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir() + "/requests.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func pendingRequest(id string, playerID string, agentID string, createdAt time.Time) storage.ContactRequest {
	return storage.ContactRequest{
		ID:        id,
		PlayerID:  playerID,
		AgentID:   agentID,
		Type:      storage.TypeTrial,
		Message:   "Open to a trial next month?",
		Status:    storage.StatusPending,
		CreatedAt: createdAt,
	}
}

func TestRequestRoundTrip(t *testing.T) {
	store := openTestStore(t)
	createdAt := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)

	want := pendingRequest("req-1", "player-1", "agent-1", createdAt)
	if err := store.PutRequest(context.Background(), want); err != nil {
		t.Fatalf("put request: %v", err)
	}

	got, err := store.GetRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if got.PlayerID != "player-1" || got.AgentID != "agent-1" {
		t.Fatalf("participants = %q/%q", got.PlayerID, got.AgentID)
	}
	if got.Type != storage.TypeTrial {
		t.Fatalf("type = %q, want trial", got.Type)
	}
	if got.Status != storage.StatusPending {
		t.Fatalf("status = %q, want pending", got.Status)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, createdAt)
	}
	if !got.DecidedAt.IsZero() {
		t.Fatalf("decided_at = %v, want zero", got.DecidedAt)
	}
}

func TestGetRequestNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetRequest(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveRequestTransitions(t *testing.T) {
	store := openTestStore(t)
	createdAt := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	decidedAt := createdAt.Add(time.Hour)

	if err := store.PutRequest(context.Background(), pendingRequest("req-1", "player-1", "agent-1", createdAt)); err != nil {
		t.Fatalf("put request: %v", err)
	}

	resolved, err := store.ResolveRequest(context.Background(), "req-1", storage.StatusAccepted, decidedAt)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != storage.StatusAccepted {
		t.Fatalf("status = %q, want accepted", resolved.Status)
	}
	if !resolved.DecidedAt.Equal(decidedAt) {
		t.Fatalf("decided_at = %v, want %v", resolved.DecidedAt, decidedAt)
	}

	// Terminal states admit no further transition.
	_, err = store.ResolveRequest(context.Background(), "req-1", storage.StatusDeclined, decidedAt.Add(time.Minute))
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	got, err := store.GetRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if got.Status != storage.StatusAccepted {
		t.Fatalf("status = %q, want accepted after failed decline", got.Status)
	}
}

func TestResolveRequestMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.ResolveRequest(context.Background(), "missing", storage.StatusAccepted, time.Now())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveRequestRejectsPendingTarget(t *testing.T) {
	store := openTestStore(t)

	_, err := store.ResolveRequest(context.Background(), "req-1", storage.StatusPending, time.Now())
	if err == nil {
		t.Fatal("expected error for non-terminal target status")
	}
}

func TestListPendingForPlayerNewestFirst(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"req-a", "req-b", "req-c"} {
		request := pendingRequest(id, "player-1", "agent-"+id, base.Add(time.Duration(i)*time.Minute))
		if err := store.PutRequest(context.Background(), request); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	// A resolved request must never show up in the pending view.
	if _, err := store.ResolveRequest(context.Background(), "req-b", storage.StatusDeclined, base.Add(time.Hour)); err != nil {
		t.Fatalf("resolve req-b: %v", err)
	}

	pending, err := store.ListPendingForPlayer(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending len = %d, want 2", len(pending))
	}
	if pending[0].ID != "req-c" || pending[1].ID != "req-a" {
		t.Fatalf("order = %s,%s, want req-c,req-a", pending[0].ID, pending[1].ID)
	}

	count, err := store.CountPendingForPlayer(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("count pending: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestListForAgentAllStatuses(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	if err := store.PutRequest(context.Background(), pendingRequest("req-1", "player-1", "agent-1", base)); err != nil {
		t.Fatalf("put req-1: %v", err)
	}
	if err := store.PutRequest(context.Background(), pendingRequest("req-2", "player-2", "agent-1", base.Add(time.Minute))); err != nil {
		t.Fatalf("put req-2: %v", err)
	}
	if err := store.PutRequest(context.Background(), pendingRequest("req-3", "player-1", "agent-2", base.Add(2*time.Minute))); err != nil {
		t.Fatalf("put req-3: %v", err)
	}
	if _, err := store.ResolveRequest(context.Background(), "req-1", storage.StatusAccepted, base.Add(time.Hour)); err != nil {
		t.Fatalf("resolve req-1: %v", err)
	}

	outbox, err := store.ListForAgent(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("list for agent: %v", err)
	}
	if len(outbox) != 2 {
		t.Fatalf("outbox len = %d, want 2", len(outbox))
	}
	if outbox[0].ID != "req-2" {
		t.Fatalf("first outbox id = %s, want req-2", outbox[0].ID)
	}
}

func TestPairChecks(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	if err := store.PutRequest(context.Background(), pendingRequest("req-1", "player-1", "agent-1", base)); err != nil {
		t.Fatalf("put request: %v", err)
	}

	pending, err := store.HasPendingPair(context.Background(), "agent-1", "player-1")
	if err != nil {
		t.Fatalf("has pending: %v", err)
	}
	if !pending {
		t.Fatal("expected pending pair")
	}
	accepted, err := store.HasAcceptedPair(context.Background(), "agent-1", "player-1")
	if err != nil {
		t.Fatalf("has accepted: %v", err)
	}
	if accepted {
		t.Fatal("expected no accepted pair yet")
	}

	if _, err := store.ResolveRequest(context.Background(), "req-1", storage.StatusAccepted, base.Add(time.Hour)); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	pending, err = store.HasPendingPair(context.Background(), "agent-1", "player-1")
	if err != nil {
		t.Fatalf("has pending: %v", err)
	}
	if pending {
		t.Fatal("expected no pending pair after acceptance")
	}
	accepted, err = store.HasAcceptedPair(context.Background(), "agent-1", "player-1")
	if err != nil {
		t.Fatalf("has accepted: %v", err)
	}
	if !accepted {
		t.Fatal("expected accepted pair")
	}
}

func TestDuplicatePendingPairRejectedBySchema(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	if err := store.PutRequest(context.Background(), pendingRequest("req-1", "player-1", "agent-1", base)); err != nil {
		t.Fatalf("put first: %v", err)
	}
	err := store.PutRequest(context.Background(), pendingRequest("req-2", "player-1", "agent-1", base.Add(time.Minute)))
	if err == nil {
		t.Fatal("expected unique index violation for duplicate pending pair")
	}
}

func TestConcurrentResolveExactlyOneSucceeds(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	if err := store.PutRequest(context.Background(), pendingRequest("req-1", "player-1", "agent-1", base)); err != nil {
		t.Fatalf("put request: %v", err)
	}

	start := make(chan struct{})
	results := make(chan error, 2)
	resolve := func(status storage.Status) {
		<-start
		_, err := store.ResolveRequest(context.Background(), "req-1", status, base.Add(time.Hour))
		results <- err
	}
	go resolve(storage.StatusAccepted)
	go resolve(storage.StatusDeclined)
	close(start)

	var wins, conflicts int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			wins++
		case errors.Is(err, storage.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("wins = %d conflicts = %d, want exactly one of each", wins, conflicts)
	}

	final, err := store.GetRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if final.Status != storage.StatusAccepted && final.Status != storage.StatusDeclined {
		t.Fatalf("status = %q, want terminal", final.Status)
	}
}

func TestCanceledContextRejected(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.PutRequest(ctx, pendingRequest("req-1", "player-1", "agent-1", time.Now())); err == nil {
		t.Fatal("expected context error")
	}
}
