// Package sqlite provides a SQLite-backed identity storage implementation.
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
	"github.com/pitchsideapp/pitchside/internal/services/identity/storage"
	"github.com/pitchsideapp/pitchside/internal/services/identity/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists marketplace accounts in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite identity store and applies embedded migrations.
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

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user storage.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(user.ID)
	if id == "" {
		return fmt.Errorf("user id is required")
	}
	email := strings.TrimSpace(user.Email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !user.Role.Known() {
		return fmt.Errorf("unknown role %q", user.Role)
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (id, email, display_name, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		email,
		user.DisplayName,
		string(user.Role),
		toMillis(user.CreatedAt),
		toMillis(user.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

const userColumns = `id, email, display_name, role, created_at, updated_at`

// GetUser returns one user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.User{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
	return scanUser(row)
}

// GetUserByEmail returns one user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return storage.User{}, fmt.Errorf("email is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// SetRole reassigns a user's role.
func (s *Store) SetRole(ctx context.Context, userID string, role storage.Role, updatedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if !role.Known() {
		return fmt.Errorf("unknown role %q", role)
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role),
		toMillis(updatedAt),
		userID,
	)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set role rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListUsers returns one page of users, keyset-paged by id.
func (s *Store) ListUsers(ctx context.Context, pageSize int, pageToken string) (storage.UserPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.UserPage{}, err
	}
	if pageSize <= 0 {
		return storage.UserPage{}, fmt.Errorf("page size must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id > ? ORDER BY id ASC LIMIT ?`,
		strings.TrimSpace(pageToken),
		pageSize+1,
	)
	if err != nil {
		return storage.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	page := storage.UserPage{Users: make([]storage.User, 0, pageSize)}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return storage.UserPage{}, fmt.Errorf("list users: %w", err)
		}
		page.Users = append(page.Users, user)
	}
	if err := rows.Err(); err != nil {
		return storage.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	if len(page.Users) > pageSize {
		page.NextPageToken = page.Users[pageSize-1].ID
		page.Users = page.Users[:pageSize]
	}
	return page, nil
}

// CountByRole returns the number of users per role.
func (s *Store) CountByRole(ctx context.Context) (map[storage.Role]int, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	defer rows.Close()

	counts := make(map[storage.Role]int)
	for rows.Next() {
		var (
			role  string
			count int
		)
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}
		counts[storage.Role(role)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (storage.User, error) {
	var (
		user      storage.User
		role      string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &role, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.Role = storage.Role(role)
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return user, nil
}

var _ storage.UserStore = (*Store)(nil)
