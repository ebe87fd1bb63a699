package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchsideapp/pitchside/internal/services/identity/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir() + "/identity.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testUser(id string, email string, role storage.Role) storage.User {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	return storage.User{
		ID:          id,
		Email:       email,
		DisplayName: "User " + id,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateAndGetUser(t *testing.T) {
	store := openTestStore(t)

	want := testUser("user-1", "ana@example.com", storage.RolePlayer)
	if err := store.CreateUser(context.Background(), want); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "ana@example.com" || got.Role != storage.RolePlayer {
		t.Fatalf("user = %+v", got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}

	byEmail, err := store.GetUserByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != "user-1" {
		t.Fatalf("id = %q, want user-1", byEmail.ID)
	}

	_, err = store.GetUser(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateUserConflicts(t *testing.T) {
	store := openTestStore(t)

	if err := store.CreateUser(context.Background(), testUser("user-1", "ana@example.com", storage.RolePlayer)); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := store.CreateUser(context.Background(), testUser("user-1", "other@example.com", storage.RolePlayer))
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("duplicate id err = %v, want ErrConflict", err)
	}
	err = store.CreateUser(context.Background(), testUser("user-2", "ana@example.com", storage.RoleAgent))
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("duplicate email err = %v, want ErrConflict", err)
	}
}

func TestSetRole(t *testing.T) {
	store := openTestStore(t)
	if err := store.CreateUser(context.Background(), testUser("user-1", "ana@example.com", storage.RolePlayer)); err != nil {
		t.Fatalf("create: %v", err)
	}

	updatedAt := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	if err := store.SetRole(context.Background(), "user-1", storage.RoleAdmin, updatedAt); err != nil {
		t.Fatalf("set role: %v", err)
	}
	got, err := store.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Role != storage.RoleAdmin {
		t.Fatalf("role = %q, want admin", got.Role)
	}
	if !got.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, updatedAt)
	}

	err = store.SetRole(context.Background(), "missing", storage.RoleAgent, updatedAt)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListUsersPagination(t *testing.T) {
	store := openTestStore(t)
	for _, id := range []string{"user-a", "user-b", "user-c"} {
		if err := store.CreateUser(context.Background(), testUser(id, id+"@example.com", storage.RolePlayer)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	first, err := store.ListUsers(context.Background(), 2, "")
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Users) != 2 || first.NextPageToken != "user-b" {
		t.Fatalf("first page = %d users, token %q", len(first.Users), first.NextPageToken)
	}

	second, err := store.ListUsers(context.Background(), 2, first.NextPageToken)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Users) != 1 || second.NextPageToken != "" {
		t.Fatalf("second page = %d users, token %q", len(second.Users), second.NextPageToken)
	}
}

func TestCountByRole(t *testing.T) {
	store := openTestStore(t)
	users := []storage.User{
		testUser("user-1", "a@example.com", storage.RolePlayer),
		testUser("user-2", "b@example.com", storage.RolePlayer),
		testUser("user-3", "c@example.com", storage.RoleAgent),
		testUser("user-4", "d@example.com", storage.RoleAdmin),
	}
	for _, user := range users {
		if err := store.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("create %s: %v", user.ID, err)
		}
	}

	counts, err := store.CountByRole(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[storage.RolePlayer] != 2 || counts[storage.RoleAgent] != 1 || counts[storage.RoleAdmin] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestUnknownRoleRejected(t *testing.T) {
	store := openTestStore(t)

	user := testUser("user-1", "a@example.com", storage.Role("coach"))
	if err := store.CreateUser(context.Background(), user); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
