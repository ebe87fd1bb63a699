// Package sqlite provides a SQLite-backed contact request storage implementation.
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
	"github.com/pitchsideapp/pitchside/internal/services/requests/storage"
	"github.com/pitchsideapp/pitchside/internal/services/requests/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists contact request state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite request store and applies embedded migrations.
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

// PutRequest inserts one new contact request record.
func (s *Store) PutRequest(ctx context.Context, request storage.ContactRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(request.ID) == "" {
		return fmt.Errorf("request id is required")
	}
	if strings.TrimSpace(request.PlayerID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(request.AgentID) == "" {
		return fmt.Errorf("agent id is required")
	}

	var decidedAt any
	if !request.DecidedAt.IsZero() {
		decidedAt = toMillis(request.DecidedAt)
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO contact_requests (id, player_id, agent_id, request_type, message, status, created_at, decided_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		request.ID,
		request.PlayerID,
		request.AgentID,
		string(request.Type),
		request.Message,
		string(request.Status),
		toMillis(request.CreatedAt),
		decidedAt,
	)
	if err != nil {
		return fmt.Errorf("put request: %w", err)
	}
	return nil
}

// GetRequest returns one contact request by id.
func (s *Store) GetRequest(ctx context.Context, id string) (storage.ContactRequest, error) {
	if err := ctx.Err(); err != nil {
		return storage.ContactRequest{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ContactRequest{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.ContactRequest{}, fmt.Errorf("request id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, player_id, agent_id, request_type, message, status, created_at, decided_at
		 FROM contact_requests
		 WHERE id = ?`,
		id,
	)
	return scanRequest(row)
}

// ResolveRequest conditionally moves one pending request to a terminal status.
// The WHERE clause on the stored status is the optimistic-concurrency guard:
// of two concurrent resolutions exactly one observes RowsAffected == 1.
func (s *Store) ResolveRequest(ctx context.Context, id string, status storage.Status, decidedAt time.Time) (storage.ContactRequest, error) {
	if err := ctx.Err(); err != nil {
		return storage.ContactRequest{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ContactRequest{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.ContactRequest{}, fmt.Errorf("request id is required")
	}
	if status != storage.StatusAccepted && status != storage.StatusDeclined {
		return storage.ContactRequest{}, fmt.Errorf("status %q is not terminal", status)
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE contact_requests
		 SET status = ?, decided_at = ?
		 WHERE id = ? AND status = 'pending'`,
		string(status),
		toMillis(decidedAt),
		id,
	)
	if err != nil {
		return storage.ContactRequest{}, fmt.Errorf("resolve request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.ContactRequest{}, fmt.Errorf("resolve request: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing record from a lost race.
		if _, getErr := s.GetRequest(ctx, id); getErr != nil {
			return storage.ContactRequest{}, getErr
		}
		return storage.ContactRequest{}, storage.ErrConflict
	}
	return s.GetRequest(ctx, id)
}

// ListPendingForPlayer returns the player's pending requests, newest first.
func (s *Store) ListPendingForPlayer(ctx context.Context, playerID string) ([]storage.ContactRequest, error) {
	return s.list(ctx, playerID,
		`SELECT id, player_id, agent_id, request_type, message, status, created_at, decided_at
		 FROM contact_requests
		 WHERE player_id = ? AND status = 'pending'
		 ORDER BY created_at DESC, id DESC`)
}

// ListForAgent returns every request the agent created, newest first.
func (s *Store) ListForAgent(ctx context.Context, agentID string) ([]storage.ContactRequest, error) {
	return s.list(ctx, agentID,
		`SELECT id, player_id, agent_id, request_type, message, status, created_at, decided_at
		 FROM contact_requests
		 WHERE agent_id = ?
		 ORDER BY created_at DESC, id DESC`)
}

func (s *Store) list(ctx context.Context, key string, query string) ([]storage.ContactRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("list key is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var requests []storage.ContactRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("list requests: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

// CountPendingForPlayer returns the player's pending request count.
func (s *Store) CountPendingForPlayer(ctx context.Context, playerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return 0, fmt.Errorf("player id is required")
	}

	var count int
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM contact_requests WHERE player_id = ? AND status = 'pending'`,
		playerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending requests: %w", err)
	}
	return count, nil
}

// HasPendingPair reports whether the agent already has a pending request for the player.
func (s *Store) HasPendingPair(ctx context.Context, agentID string, playerID string) (bool, error) {
	return s.hasPair(ctx, agentID, playerID, storage.StatusPending)
}

// HasAcceptedPair reports whether the player has accepted a request from the agent.
func (s *Store) HasAcceptedPair(ctx context.Context, agentID string, playerID string) (bool, error) {
	return s.hasPair(ctx, agentID, playerID, storage.StatusAccepted)
}

func (s *Store) hasPair(ctx context.Context, agentID string, playerID string, status storage.Status) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	agentID = strings.TrimSpace(agentID)
	playerID = strings.TrimSpace(playerID)
	if agentID == "" {
		return false, fmt.Errorf("agent id is required")
	}
	if playerID == "" {
		return false, fmt.Errorf("player id is required")
	}

	var found int
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT 1 FROM contact_requests
		 WHERE agent_id = ? AND player_id = ? AND status = ?
		 LIMIT 1`,
		agentID,
		playerID,
		string(status),
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check request pair: %w", err)
	}
	return true, nil
}

// CountByStatus returns the number of requests per lifecycle state.
func (s *Store) CountByStatus(ctx context.Context) (map[storage.Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT status, COUNT(*) FROM contact_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[storage.Status]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("count requests: %w", err)
		}
		counts[storage.Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (storage.ContactRequest, error) {
	var (
		request   storage.ContactRequest
		reqType   string
		status    string
		createdAt int64
		decidedAt sql.NullInt64
	)
	err := row.Scan(
		&request.ID,
		&request.PlayerID,
		&request.AgentID,
		&reqType,
		&request.Message,
		&status,
		&createdAt,
		&decidedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ContactRequest{}, storage.ErrNotFound
		}
		return storage.ContactRequest{}, fmt.Errorf("scan request: %w", err)
	}
	request.Type = storage.RequestType(reqType)
	request.Status = storage.Status(status)
	request.CreatedAt = fromMillis(createdAt)
	if decidedAt.Valid {
		request.DecidedAt = fromMillis(decidedAt.Int64)
	}
	return request, nil
}

var _ storage.RequestStore = (*Store)(nil)
