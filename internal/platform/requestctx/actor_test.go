package requestctx

import (
	"context"
	"testing"
)

func TestActorRoundTrip(t *testing.T) {
	ctx := WithActor(context.Background(), Actor{UserID: "user-42", Role: "player"})
	got := ActorFromContext(ctx)
	if got.UserID != "user-42" {
		t.Fatalf("UserID = %q, want %q", got.UserID, "user-42")
	}
	if got.Role != "player" {
		t.Fatalf("Role = %q, want %q", got.Role, "player")
	}
	if id := UserIDFromContext(ctx); id != "user-42" {
		t.Fatalf("UserIDFromContext = %q, want %q", id, "user-42")
	}
}

func TestActorFromContextEmpty(t *testing.T) {
	got := ActorFromContext(context.Background())
	if got.UserID != "" || got.Role != "" {
		t.Fatalf("expected zero actor, got %+v", got)
	}
}

func TestActorFromNilContext(t *testing.T) {
	got := ActorFromContext(nil)
	if got != (Actor{}) {
		t.Fatalf("expected zero actor for nil context, got %+v", got)
	}
}

func TestWithActorNilContext(t *testing.T) {
	ctx := WithActor(nil, Actor{UserID: "user-99", Role: "agent"})
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if got := ActorFromContext(ctx); got.UserID != "user-99" {
		t.Fatalf("UserID = %q, want %q", got.UserID, "user-99")
	}
}
