// Package sqlite provides a SQLite-backed shortlist storage implementation.
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
	"github.com/pitchsideapp/pitchside/internal/services/shortlist/storage"
	"github.com/pitchsideapp/pitchside/internal/services/shortlist/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists shortlist entries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite shortlist store and applies embedded migrations.
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

func pairArgs(agentID string, playerID string) (string, string, error) {
	agentID = strings.TrimSpace(agentID)
	playerID = strings.TrimSpace(playerID)
	if agentID == "" {
		return "", "", fmt.Errorf("agent id is required")
	}
	if playerID == "" {
		return "", "", fmt.Errorf("player id is required")
	}
	return agentID, playerID, nil
}

// Add records a shortlist entry. Adding an existing pair is a no-op.
func (s *Store) Add(ctx context.Context, entry storage.Entry) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	agentID, playerID, err := pairArgs(entry.AgentID, entry.PlayerID)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO shortlist_entries (agent_id, player_id, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(agent_id, player_id) DO NOTHING`,
		agentID,
		playerID,
		toMillis(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("add shortlist entry: %w", err)
	}
	return nil
}

// Remove deletes a shortlist entry. Removing a missing pair is a no-op.
func (s *Store) Remove(ctx context.Context, agentID string, playerID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	agentID, playerID, err := pairArgs(agentID, playerID)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM shortlist_entries WHERE agent_id = ? AND player_id = ?`,
		agentID,
		playerID,
	)
	if err != nil {
		return fmt.Errorf("remove shortlist entry: %w", err)
	}
	return nil
}

// Has reports whether the agent has shortlisted the player.
func (s *Store) Has(ctx context.Context, agentID string, playerID string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	agentID, playerID, err := pairArgs(agentID, playerID)
	if err != nil {
		return false, err
	}

	var found int
	err = s.sqlDB.QueryRowContext(
		ctx,
		`SELECT 1 FROM shortlist_entries WHERE agent_id = ? AND player_id = ? LIMIT 1`,
		agentID,
		playerID,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check shortlist entry: %w", err)
	}
	return true, nil
}

// Clear removes every entry owned by the agent.
func (s *Store) Clear(ctx context.Context, agentID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return fmt.Errorf("agent id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `DELETE FROM shortlist_entries WHERE agent_id = ?`, agentID)
	if err != nil {
		return fmt.Errorf("clear shortlist: %w", err)
	}
	return nil
}

// List returns one page of the agent's entries, ordered by player id.
func (s *Store) List(ctx context.Context, agentID string, pageSize int, pageToken string) (storage.Page, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Page{}, err
	}
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return storage.Page{}, fmt.Errorf("agent id is required")
	}
	if pageSize <= 0 {
		return storage.Page{}, fmt.Errorf("page size must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT agent_id, player_id, created_at
		 FROM shortlist_entries
		 WHERE agent_id = ? AND player_id > ?
		 ORDER BY player_id ASC
		 LIMIT ?`,
		agentID,
		strings.TrimSpace(pageToken),
		pageSize+1,
	)
	if err != nil {
		return storage.Page{}, fmt.Errorf("list shortlist: %w", err)
	}
	defer rows.Close()

	page := storage.Page{Entries: make([]storage.Entry, 0, pageSize)}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return storage.Page{}, fmt.Errorf("list shortlist: %w", err)
		}
		page.Entries = append(page.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return storage.Page{}, fmt.Errorf("list shortlist: %w", err)
	}
	if len(page.Entries) > pageSize {
		page.NextPageToken = page.Entries[pageSize-1].PlayerID
		page.Entries = page.Entries[:pageSize]
	}
	return page, nil
}

// ListAll returns every entry owned by the agent.
func (s *Store) ListAll(ctx context.Context, agentID string) ([]storage.Entry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return nil, fmt.Errorf("agent id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT agent_id, player_id, created_at
		 FROM shortlist_entries
		 WHERE agent_id = ?
		 ORDER BY player_id ASC`,
		agentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list shortlist: %w", err)
	}
	defer rows.Close()

	var entries []storage.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list shortlist: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shortlist: %w", err)
	}
	return entries, nil
}

// Count returns the number of entries owned by the agent.
func (s *Store) Count(ctx context.Context, agentID string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return 0, fmt.Errorf("agent id is required")
	}

	var count int
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM shortlist_entries WHERE agent_id = ?`,
		agentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count shortlist: %w", err)
	}
	return count, nil
}

func scanEntry(rows *sql.Rows) (storage.Entry, error) {
	var (
		entry     storage.Entry
		createdAt int64
	)
	if err := rows.Scan(&entry.AgentID, &entry.PlayerID, &createdAt); err != nil {
		return storage.Entry{}, err
	}
	entry.CreatedAt = fromMillis(createdAt)
	return entry, nil
}

var _ storage.ShortlistStore = (*Store)(nil)
