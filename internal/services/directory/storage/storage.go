// Package storage defines persistence contracts for marketplace directory state.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested directory record is missing.
var ErrNotFound = errors.New("record not found")

// PlayerProfile stores one player's public profile and gated contact detail.
// Email and Phone are only exposed to agents through the contact gate.
type PlayerProfile struct {
	UserID        string
	FullName      string
	DateOfBirth   time.Time
	Position      string
	Country       string
	City          string
	HeightCM      int
	WeightKG      int
	PreferredFoot string
	Availability  string
	Bio           string
	AvatarURL     string
	Email         string
	Phone         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AgentProfile stores one agent's public profile.
type AgentProfile struct {
	UserID    string
	FullName  string
	Agency    string
	Country   string
	Bio       string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SeasonStats stores one player's raw statistics for one season.
type SeasonStats struct {
	UserID        string
	Season        string
	Goals         int
	Assists       int
	Matches       int
	MinutesPlayed int
	PassAccuracy  float64
	ShotsOnTarget int
	UpdatedAt     time.Time
}

// CareerEntry stores one club spell in a player's career history.
type CareerEntry struct {
	ID        string
	UserID    string
	Club      string
	Season    string
	Division  string
	Note      string
	CreatedAt time.Time
}

// Endorsement stores one coach endorsement for a player.
type Endorsement struct {
	ID        string
	PlayerID  string
	CoachName string
	Academy   string
	Quote     string
	CreatedAt time.Time
}

// Video stores one highlight video reference owned by a player.
type Video struct {
	ID         string
	UserID     string
	YouTubeURL string
	Title      string
	CreatedAt  time.Time
}

// PlayerFilter narrows a player listing.
type PlayerFilter struct {
	Position string
	Country  string
	// Age bounds are inclusive; zero means unbounded.
	MinAge int
	MaxAge int
	// Now anchors age computation from date of birth.
	Now       time.Time
	PageSize  int
	PageToken string
}

// PlayerPage stores one page of player profiles.
type PlayerPage struct {
	Players       []PlayerProfile
	NextPageToken string
}

// DirectoryStore persists profiles, stats, and supporting player records.
type DirectoryStore interface {
	UpsertPlayerProfile(ctx context.Context, profile PlayerProfile) error
	GetPlayerProfile(ctx context.Context, userID string) (PlayerProfile, error)
	PlayerExists(ctx context.Context, userID string) (bool, error)
	ListPlayers(ctx context.Context, filter PlayerFilter) (PlayerPage, error)

	UpsertAgentProfile(ctx context.Context, profile AgentProfile) error
	GetAgentProfile(ctx context.Context, userID string) (AgentProfile, error)

	UpsertSeasonStats(ctx context.Context, stats SeasonStats) error
	LatestSeasonStats(ctx context.Context, userID string) (SeasonStats, error)
	ListSeasonStats(ctx context.Context, userID string) ([]SeasonStats, error)
	ListAllSeasonStats(ctx context.Context) ([]SeasonStats, error)

	AddCareerEntry(ctx context.Context, entry CareerEntry) error
	ListCareerEntries(ctx context.Context, userID string) ([]CareerEntry, error)

	AddEndorsement(ctx context.Context, endorsement Endorsement) error
	ListEndorsements(ctx context.Context, playerID string) ([]Endorsement, error)
	EndorsedPlayerIDs(ctx context.Context, playerIDs []string) (map[string]bool, error)

	AddVideo(ctx context.Context, video Video) error
	GetVideo(ctx context.Context, videoID string) (Video, error)
	DeleteVideo(ctx context.Context, videoID string) error
	ListVideos(ctx context.Context, userID string) ([]Video, error)
}
