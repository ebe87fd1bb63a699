// Package sqlite provides a SQLite-backed directory storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/pitchsideapp/pitchside/internal/platform/storage/sqlitemigrate"
	"github.com/pitchsideapp/pitchside/internal/services/directory/storage"
	"github.com/pitchsideapp/pitchside/internal/services/directory/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists directory state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite directory store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// UpsertPlayerProfile inserts or updates one player profile keyed by user id.
func (s *Store) UpsertPlayerProfile(ctx context.Context, profile storage.PlayerProfile) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	userID := strings.TrimSpace(profile.UserID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(profile.FullName) == "" {
		return fmt.Errorf("full name is required")
	}

	var dob any
	if !profile.DateOfBirth.IsZero() {
		dob = toMillis(profile.DateOfBirth)
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO player_profiles (user_id, full_name, date_of_birth, position, country, city,
		   height_cm, weight_kg, preferred_foot, availability, bio, avatar_url, email, phone,
		   created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   full_name = excluded.full_name,
		   date_of_birth = excluded.date_of_birth,
		   position = excluded.position,
		   country = excluded.country,
		   city = excluded.city,
		   height_cm = excluded.height_cm,
		   weight_kg = excluded.weight_kg,
		   preferred_foot = excluded.preferred_foot,
		   availability = excluded.availability,
		   bio = excluded.bio,
		   avatar_url = excluded.avatar_url,
		   email = excluded.email,
		   phone = excluded.phone,
		   updated_at = excluded.updated_at`,
		userID,
		profile.FullName,
		dob,
		profile.Position,
		profile.Country,
		profile.City,
		profile.HeightCM,
		profile.WeightKG,
		profile.PreferredFoot,
		profile.Availability,
		profile.Bio,
		profile.AvatarURL,
		profile.Email,
		profile.Phone,
		toMillis(profile.CreatedAt),
		toMillis(profile.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert player profile: %w", err)
	}
	return nil
}

const playerProfileColumns = `user_id, full_name, date_of_birth, position, country, city,
	height_cm, weight_kg, preferred_foot, availability, bio, avatar_url, email, phone,
	created_at, updated_at`

// GetPlayerProfile returns one player profile by user id.
func (s *Store) GetPlayerProfile(ctx context.Context, userID string) (storage.PlayerProfile, error) {
	if err := s.ready(ctx); err != nil {
		return storage.PlayerProfile{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.PlayerProfile{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+playerProfileColumns+` FROM player_profiles WHERE user_id = ?`,
		userID,
	)
	return scanPlayerProfile(row)
}

// PlayerExists reports whether a player profile exists for the user id.
func (s *Store) PlayerExists(ctx context.Context, userID string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, fmt.Errorf("user id is required")
	}

	var found int
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT 1 FROM player_profiles WHERE user_id = ? LIMIT 1`,
		userID,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check player: %w", err)
	}
	return true, nil
}

// ListPlayers returns one filtered page of player profiles, keyset-paged by user id.
func (s *Store) ListPlayers(ctx context.Context, filter storage.PlayerFilter) (storage.PlayerPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.PlayerPage{}, err
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		return storage.PlayerPage{}, fmt.Errorf("page size must be greater than zero")
	}
	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}

	where := []string{"1 = 1"}
	args := []any{}
	if position := strings.TrimSpace(filter.Position); position != "" {
		where = append(where, "position = ?")
		args = append(args, position)
	}
	if country := strings.TrimSpace(filter.Country); country != "" {
		where = append(where, "country = ?")
		args = append(args, country)
	}
	// Age bounds translate to a date-of-birth window; rows without a date of
	// birth are excluded whenever an age bound applies.
	if filter.MinAge > 0 {
		where = append(where, "date_of_birth IS NOT NULL AND date_of_birth <= ?")
		args = append(args, toMillis(now.AddDate(-filter.MinAge, 0, 0)))
	}
	if filter.MaxAge > 0 {
		where = append(where, "date_of_birth IS NOT NULL AND date_of_birth > ?")
		args = append(args, toMillis(now.AddDate(-(filter.MaxAge+1), 0, 0)))
	}
	if token := strings.TrimSpace(filter.PageToken); token != "" {
		where = append(where, "user_id > ?")
		args = append(args, token)
	}
	args = append(args, pageSize+1)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+playerProfileColumns+`
		 FROM player_profiles
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY user_id ASC
		 LIMIT ?`,
		args...,
	)
	if err != nil {
		return storage.PlayerPage{}, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	page := storage.PlayerPage{Players: make([]storage.PlayerProfile, 0, pageSize)}
	for rows.Next() {
		profile, err := scanPlayerProfile(rows)
		if err != nil {
			return storage.PlayerPage{}, fmt.Errorf("list players: %w", err)
		}
		page.Players = append(page.Players, profile)
	}
	if err := rows.Err(); err != nil {
		return storage.PlayerPage{}, fmt.Errorf("list players: %w", err)
	}
	if len(page.Players) > pageSize {
		page.NextPageToken = page.Players[pageSize-1].UserID
		page.Players = page.Players[:pageSize]
	}
	return page, nil
}

// UpsertAgentProfile inserts or updates one agent profile keyed by user id.
func (s *Store) UpsertAgentProfile(ctx context.Context, profile storage.AgentProfile) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	userID := strings.TrimSpace(profile.UserID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(profile.FullName) == "" {
		return fmt.Errorf("full name is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO agent_profiles (user_id, full_name, agency, country, bio, avatar_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   full_name = excluded.full_name,
		   agency = excluded.agency,
		   country = excluded.country,
		   bio = excluded.bio,
		   avatar_url = excluded.avatar_url,
		   updated_at = excluded.updated_at`,
		userID,
		profile.FullName,
		profile.Agency,
		profile.Country,
		profile.Bio,
		profile.AvatarURL,
		toMillis(profile.CreatedAt),
		toMillis(profile.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert agent profile: %w", err)
	}
	return nil
}

// GetAgentProfile returns one agent profile by user id.
func (s *Store) GetAgentProfile(ctx context.Context, userID string) (storage.AgentProfile, error) {
	if err := s.ready(ctx); err != nil {
		return storage.AgentProfile{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.AgentProfile{}, fmt.Errorf("user id is required")
	}

	var (
		profile   storage.AgentProfile
		createdAt int64
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT user_id, full_name, agency, country, bio, avatar_url, created_at, updated_at
		 FROM agent_profiles WHERE user_id = ?`,
		userID,
	).Scan(
		&profile.UserID,
		&profile.FullName,
		&profile.Agency,
		&profile.Country,
		&profile.Bio,
		&profile.AvatarURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.AgentProfile{}, storage.ErrNotFound
		}
		return storage.AgentProfile{}, fmt.Errorf("get agent profile: %w", err)
	}
	profile.CreatedAt = fromMillis(createdAt)
	profile.UpdatedAt = fromMillis(updatedAt)
	return profile, nil
}

// UpsertSeasonStats inserts or updates one (player, season) stat line.
func (s *Store) UpsertSeasonStats(ctx context.Context, stats storage.SeasonStats) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	userID := strings.TrimSpace(stats.UserID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	season := strings.TrimSpace(stats.Season)
	if season == "" {
		return fmt.Errorf("season is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO season_stats (user_id, season, goals, assists, matches, minutes_played,
		   pass_accuracy, shots_on_target, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, season) DO UPDATE SET
		   goals = excluded.goals,
		   assists = excluded.assists,
		   matches = excluded.matches,
		   minutes_played = excluded.minutes_played,
		   pass_accuracy = excluded.pass_accuracy,
		   shots_on_target = excluded.shots_on_target,
		   updated_at = excluded.updated_at`,
		userID,
		season,
		stats.Goals,
		stats.Assists,
		stats.Matches,
		stats.MinutesPlayed,
		stats.PassAccuracy,
		stats.ShotsOnTarget,
		toMillis(stats.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert season stats: %w", err)
	}
	return nil
}

// LatestSeasonStats returns the most recent stat line for a player.
func (s *Store) LatestSeasonStats(ctx context.Context, userID string) (storage.SeasonStats, error) {
	if err := s.ready(ctx); err != nil {
		return storage.SeasonStats{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.SeasonStats{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT user_id, season, goals, assists, matches, minutes_played, pass_accuracy, shots_on_target, updated_at
		 FROM season_stats
		 WHERE user_id = ?
		 ORDER BY season DESC
		 LIMIT 1`,
		userID,
	)
	stats, err := scanSeasonStats(row)
	if err != nil {
		return storage.SeasonStats{}, err
	}
	return stats, nil
}

// ListSeasonStats returns a player's stat lines, newest season first.
func (s *Store) ListSeasonStats(ctx context.Context, userID string) ([]storage.SeasonStats, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT user_id, season, goals, assists, matches, minutes_played, pass_accuracy, shots_on_target, updated_at
		 FROM season_stats
		 WHERE user_id = ?
		 ORDER BY season DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}
	defer rows.Close()

	var all []storage.SeasonStats
	for rows.Next() {
		stats, err := scanSeasonStats(rows)
		if err != nil {
			return nil, fmt.Errorf("list season stats: %w", err)
		}
		all = append(all, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}
	return all, nil
}

// ListAllSeasonStats returns every stat line, newest season first per player.
func (s *Store) ListAllSeasonStats(ctx context.Context) ([]storage.SeasonStats, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT user_id, season, goals, assists, matches, minutes_played, pass_accuracy, shots_on_target, updated_at
		 FROM season_stats
		 ORDER BY user_id ASC, season DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}
	defer rows.Close()

	var all []storage.SeasonStats
	for rows.Next() {
		stats, err := scanSeasonStats(rows)
		if err != nil {
			return nil, fmt.Errorf("list season stats: %w", err)
		}
		all = append(all, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}
	return all, nil
}

// AddCareerEntry appends one career history record.
func (s *Store) AddCareerEntry(ctx context.Context, entry storage.CareerEntry) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	if strings.TrimSpace(entry.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(entry.Club) == "" {
		return fmt.Errorf("club is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO career_history (id, user_id, club, season, division, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.Club,
		entry.Season,
		entry.Division,
		entry.Note,
		toMillis(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("add career entry: %w", err)
	}
	return nil
}

// ListCareerEntries returns a player's career history, newest first.
func (s *Store) ListCareerEntries(ctx context.Context, userID string) ([]storage.CareerEntry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, user_id, club, season, division, note, created_at
		 FROM career_history
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list career entries: %w", err)
	}
	defer rows.Close()

	var entries []storage.CareerEntry
	for rows.Next() {
		var (
			entry     storage.CareerEntry
			createdAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Club, &entry.Season, &entry.Division, &entry.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("list career entries: %w", err)
		}
		entry.CreatedAt = fromMillis(createdAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list career entries: %w", err)
	}
	return entries, nil
}

// AddEndorsement appends one coach endorsement.
func (s *Store) AddEndorsement(ctx context.Context, endorsement storage.Endorsement) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(endorsement.ID) == "" {
		return fmt.Errorf("endorsement id is required")
	}
	if strings.TrimSpace(endorsement.PlayerID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(endorsement.CoachName) == "" {
		return fmt.Errorf("coach name is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO coach_endorsements (id, player_id, coach_name, academy, quote, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		endorsement.ID,
		endorsement.PlayerID,
		endorsement.CoachName,
		endorsement.Academy,
		endorsement.Quote,
		toMillis(endorsement.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("add endorsement: %w", err)
	}
	return nil
}

// ListEndorsements returns a player's endorsements, newest first.
func (s *Store) ListEndorsements(ctx context.Context, playerID string) ([]storage.Endorsement, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("player id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, player_id, coach_name, academy, quote, created_at
		 FROM coach_endorsements
		 WHERE player_id = ?
		 ORDER BY created_at DESC, id DESC`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list endorsements: %w", err)
	}
	defer rows.Close()

	var endorsements []storage.Endorsement
	for rows.Next() {
		var (
			endorsement storage.Endorsement
			createdAt   int64
		)
		if err := rows.Scan(&endorsement.ID, &endorsement.PlayerID, &endorsement.CoachName, &endorsement.Academy, &endorsement.Quote, &createdAt); err != nil {
			return nil, fmt.Errorf("list endorsements: %w", err)
		}
		endorsement.CreatedAt = fromMillis(createdAt)
		endorsements = append(endorsements, endorsement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list endorsements: %w", err)
	}
	return endorsements, nil
}

// EndorsedPlayerIDs reports which of the given players have at least one endorsement.
func (s *Store) EndorsedPlayerIDs(ctx context.Context, playerIDs []string) (map[string]bool, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	endorsed := make(map[string]bool, len(playerIDs))
	if len(playerIDs) == 0 {
		return endorsed, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(playerIDs)), ",")
	args := make([]any, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		args = append(args, playerID)
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT DISTINCT player_id FROM coach_endorsements WHERE player_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list endorsed players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var playerID string
		if err := rows.Scan(&playerID); err != nil {
			return nil, fmt.Errorf("list endorsed players: %w", err)
		}
		endorsed[playerID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list endorsed players: %w", err)
	}
	return endorsed, nil
}

// AddVideo appends one highlight video record.
func (s *Store) AddVideo(ctx context.Context, video storage.Video) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(video.ID) == "" {
		return fmt.Errorf("video id is required")
	}
	if strings.TrimSpace(video.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(video.YouTubeURL) == "" {
		return fmt.Errorf("youtube url is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO player_videos (id, user_id, youtube_url, title, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		video.ID,
		video.UserID,
		video.YouTubeURL,
		video.Title,
		toMillis(video.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("add video: %w", err)
	}
	return nil
}

// GetVideo returns one video by id.
func (s *Store) GetVideo(ctx context.Context, videoID string) (storage.Video, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Video{}, err
	}
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return storage.Video{}, fmt.Errorf("video id is required")
	}

	var (
		video     storage.Video
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, user_id, youtube_url, title, created_at FROM player_videos WHERE id = ?`,
		videoID,
	).Scan(&video.ID, &video.UserID, &video.YouTubeURL, &video.Title, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Video{}, storage.ErrNotFound
		}
		return storage.Video{}, fmt.Errorf("get video: %w", err)
	}
	video.CreatedAt = fromMillis(createdAt)
	return video, nil
}

// DeleteVideo removes one video by id.
func (s *Store) DeleteVideo(ctx context.Context, videoID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return fmt.Errorf("video id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `DELETE FROM player_videos WHERE id = ?`, videoID)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}

// ListVideos returns a player's videos, newest first.
func (s *Store) ListVideos(ctx context.Context, userID string) ([]storage.Video, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, user_id, youtube_url, title, created_at
		 FROM player_videos
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []storage.Video
	for rows.Next() {
		var (
			video     storage.Video
			createdAt int64
		)
		if err := rows.Scan(&video.ID, &video.UserID, &video.YouTubeURL, &video.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("list videos: %w", err)
		}
		video.CreatedAt = fromMillis(createdAt)
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayerProfile(row rowScanner) (storage.PlayerProfile, error) {
	var (
		profile   storage.PlayerProfile
		dob       sql.NullInt64
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&profile.UserID,
		&profile.FullName,
		&dob,
		&profile.Position,
		&profile.Country,
		&profile.City,
		&profile.HeightCM,
		&profile.WeightKG,
		&profile.PreferredFoot,
		&profile.Availability,
		&profile.Bio,
		&profile.AvatarURL,
		&profile.Email,
		&profile.Phone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PlayerProfile{}, storage.ErrNotFound
		}
		return storage.PlayerProfile{}, fmt.Errorf("scan player profile: %w", err)
	}
	if dob.Valid {
		profile.DateOfBirth = fromMillis(dob.Int64)
	}
	profile.CreatedAt = fromMillis(createdAt)
	profile.UpdatedAt = fromMillis(updatedAt)
	return profile, nil
}

func scanSeasonStats(row rowScanner) (storage.SeasonStats, error) {
	var (
		stats     storage.SeasonStats
		updatedAt int64
	)
	err := row.Scan(
		&stats.UserID,
		&stats.Season,
		&stats.Goals,
		&stats.Assists,
		&stats.Matches,
		&stats.MinutesPlayed,
		&stats.PassAccuracy,
		&stats.ShotsOnTarget,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SeasonStats{}, storage.ErrNotFound
		}
		return storage.SeasonStats{}, fmt.Errorf("scan season stats: %w", err)
	}
	stats.UpdatedAt = fromMillis(updatedAt)
	return stats, nil
}

var _ storage.DirectoryStore = (*Store)(nil)
