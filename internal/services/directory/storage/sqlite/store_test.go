package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchsideapp/pitchside/internal/services/directory/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir() + "/directory.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testPlayer(userID string, position string, country string, dob time.Time) storage.PlayerProfile {
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	return storage.PlayerProfile{
		UserID:      userID,
		FullName:    "Player " + userID,
		DateOfBirth: dob,
		Position:    position,
		Country:     country,
		Email:       userID + "@example.com",
		Phone:       "+33 1 00 00 00",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestPlayerProfileRoundTrip(t *testing.T) {
	store := openTestStore(t)
	dob := time.Date(2004, time.June, 15, 0, 0, 0, 0, time.UTC)

	want := testPlayer("player-1", "Striker", "France", dob)
	want.HeightCM = 182
	want.PreferredFoot = "left"
	if err := store.UpsertPlayerProfile(context.Background(), want); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.GetPlayerProfile(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName != "Player player-1" || got.Position != "Striker" {
		t.Fatalf("profile = %+v", got)
	}
	if !got.DateOfBirth.Equal(dob) {
		t.Fatalf("date of birth = %v, want %v", got.DateOfBirth, dob)
	}
	if got.HeightCM != 182 || got.PreferredFoot != "left" {
		t.Fatalf("attributes = %d/%q", got.HeightCM, got.PreferredFoot)
	}
	if got.Email != "player-1@example.com" {
		t.Fatalf("email = %q", got.Email)
	}

	// Upsert replaces existing fields in place.
	want.Position = "Winger"
	if err := store.UpsertPlayerProfile(context.Background(), want); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = store.GetPlayerProfile(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Position != "Winger" {
		t.Fatalf("position = %q, want Winger", got.Position)
	}
}

func TestGetPlayerProfileNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetPlayerProfile(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPlayerExists(t *testing.T) {
	store := openTestStore(t)

	exists, err := store.PlayerExists(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("expected no player yet")
	}

	if err := store.UpsertPlayerProfile(context.Background(), testPlayer("player-1", "Striker", "France", time.Time{})); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	exists, err = store.PlayerExists(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("expected player to exist")
	}
}

func TestListPlayersFilters(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	seed := []storage.PlayerProfile{
		testPlayer("player-a", "Striker", "France", now.AddDate(-17, 0, 0)),
		testPlayer("player-b", "Striker", "Spain", now.AddDate(-20, 0, 0)),
		testPlayer("player-c", "Goalkeeper", "France", now.AddDate(-24, 0, 0)),
		testPlayer("player-d", "Striker", "France", now.AddDate(-28, 0, 0)),
	}
	for _, profile := range seed {
		if err := store.UpsertPlayerProfile(context.Background(), profile); err != nil {
			t.Fatalf("upsert %s: %v", profile.UserID, err)
		}
	}

	tests := []struct {
		name   string
		filter storage.PlayerFilter
		want   []string
	}{
		{
			name:   "by position",
			filter: storage.PlayerFilter{Position: "Striker", Now: now, PageSize: 10},
			want:   []string{"player-a", "player-b", "player-d"},
		},
		{
			name:   "by country",
			filter: storage.PlayerFilter{Country: "France", Now: now, PageSize: 10},
			want:   []string{"player-a", "player-c", "player-d"},
		},
		{
			name:   "age bracket 16-18",
			filter: storage.PlayerFilter{MinAge: 16, MaxAge: 18, Now: now, PageSize: 10},
			want:   []string{"player-a"},
		},
		{
			name:   "age bracket 19-21",
			filter: storage.PlayerFilter{MinAge: 19, MaxAge: 21, Now: now, PageSize: 10},
			want:   []string{"player-b"},
		},
		{
			name:   "age 26 and over",
			filter: storage.PlayerFilter{MinAge: 26, Now: now, PageSize: 10},
			want:   []string{"player-d"},
		},
		{
			name:   "position and country",
			filter: storage.PlayerFilter{Position: "Striker", Country: "Spain", Now: now, PageSize: 10},
			want:   []string{"player-b"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := store.ListPlayers(context.Background(), tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			var got []string
			for _, profile := range page.Players {
				got = append(got, profile.UserID)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("players = %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("players = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestListPlayersPagination(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"player-a", "player-b", "player-c"} {
		if err := store.UpsertPlayerProfile(context.Background(), testPlayer(id, "Striker", "France", now.AddDate(-20, 0, 0))); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	first, err := store.ListPlayers(context.Background(), storage.PlayerFilter{Now: now, PageSize: 2})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Players) != 2 {
		t.Fatalf("first page len = %d, want 2", len(first.Players))
	}
	if first.NextPageToken == "" {
		t.Fatal("expected next page token")
	}

	second, err := store.ListPlayers(context.Background(), storage.PlayerFilter{Now: now, PageSize: 2, PageToken: first.NextPageToken})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Players) != 1 {
		t.Fatalf("second page len = %d, want 1", len(second.Players))
	}
	if second.Players[0].UserID != "player-c" {
		t.Fatalf("second page id = %s, want player-c", second.Players[0].UserID)
	}
	if second.NextPageToken != "" {
		t.Fatalf("next token = %q, want empty", second.NextPageToken)
	}
}

func TestAgentProfileRoundTrip(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	want := storage.AgentProfile{
		UserID:    "agent-1",
		FullName:  "Marta Vieira",
		Agency:    "North Star Sports",
		Country:   "Portugal",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.UpsertAgentProfile(context.Background(), want); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.GetAgentProfile(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Agency != "North Star Sports" || got.Country != "Portugal" {
		t.Fatalf("agent = %+v", got)
	}

	_, err = store.GetAgentProfile(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSeasonStats(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	seasons := []storage.SeasonStats{
		{UserID: "player-1", Season: "2024/25", Goals: 8, Assists: 4, Matches: 20, UpdatedAt: now},
		{UserID: "player-1", Season: "2025/26", Goals: 12, Assists: 7, Matches: 24, UpdatedAt: now},
		{UserID: "player-2", Season: "2025/26", Goals: 1, Assists: 2, Matches: 9, UpdatedAt: now},
	}
	for _, stats := range seasons {
		if err := store.UpsertSeasonStats(context.Background(), stats); err != nil {
			t.Fatalf("upsert %s/%s: %v", stats.UserID, stats.Season, err)
		}
	}

	latest, err := store.LatestSeasonStats(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Season != "2025/26" || latest.Goals != 12 {
		t.Fatalf("latest = %+v, want 2025/26 with 12 goals", latest)
	}

	// Upsert overwrites an existing season line.
	if err := store.UpsertSeasonStats(context.Background(), storage.SeasonStats{UserID: "player-1", Season: "2025/26", Goals: 13, Assists: 7, Matches: 25, UpdatedAt: now}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	latest, err = store.LatestSeasonStats(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("latest after overwrite: %v", err)
	}
	if latest.Goals != 13 || latest.Matches != 25 {
		t.Fatalf("latest = %+v, want overwritten line", latest)
	}

	all, err := store.ListAllSeasonStats(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all len = %d, want 3", len(all))
	}

	_, err = store.LatestSeasonStats(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCareerEntries(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	entries := []storage.CareerEntry{
		{ID: "entry-1", UserID: "player-1", Club: "FC Horizon", Season: "2023/24", CreatedAt: base},
		{ID: "entry-2", UserID: "player-1", Club: "Real Norte", Season: "2024/25", CreatedAt: base.Add(time.Minute)},
	}
	for _, entry := range entries {
		if err := store.AddCareerEntry(context.Background(), entry); err != nil {
			t.Fatalf("add %s: %v", entry.ID, err)
		}
	}

	got, err := store.ListCareerEntries(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "entry-2" {
		t.Fatalf("first = %s, want entry-2 (newest first)", got[0].ID)
	}
}

func TestEndorsements(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	if err := store.AddEndorsement(context.Background(), storage.Endorsement{
		ID:        "end-1",
		PlayerID:  "player-1",
		CoachName: "Luis Costa",
		Academy:   "Costa Academy",
		Quote:     "Best finisher of his age group.",
		CreatedAt: base,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := store.ListEndorsements(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].CoachName != "Luis Costa" {
		t.Fatalf("endorsements = %+v", got)
	}

	endorsed, err := store.EndorsedPlayerIDs(context.Background(), []string{"player-1", "player-2"})
	if err != nil {
		t.Fatalf("endorsed ids: %v", err)
	}
	if !endorsed["player-1"] || endorsed["player-2"] {
		t.Fatalf("endorsed = %v", endorsed)
	}

	empty, err := store.EndorsedPlayerIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("endorsed ids empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty map, got %v", empty)
	}
}

func TestVideos(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	videos := []storage.Video{
		{ID: "vid-1", UserID: "player-1", YouTubeURL: "https://youtu.be/abc", Title: "Season highlights", CreatedAt: base},
		{ID: "vid-2", UserID: "player-1", YouTubeURL: "https://youtu.be/def", Title: "Free kicks", CreatedAt: base.Add(time.Minute)},
	}
	for _, video := range videos {
		if err := store.AddVideo(context.Background(), video); err != nil {
			t.Fatalf("add %s: %v", video.ID, err)
		}
	}

	got, err := store.ListVideos(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "vid-2" {
		t.Fatalf("videos = %+v, want vid-2 first", got)
	}

	video, err := store.GetVideo(context.Background(), "vid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if video.UserID != "player-1" {
		t.Fatalf("owner = %q", video.UserID)
	}

	if err := store.DeleteVideo(context.Background(), "vid-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = store.GetVideo(context.Background(), "vid-1")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
