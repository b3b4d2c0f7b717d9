package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_session_store.go -package=mocks policyqa/internal/storage SessionStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// SessionStore defines the interface for session storage operations.
type SessionStore interface {
	// Create creates a new session with a generated UUID.
	Create(ctx context.Context) (*Session, error)
	// Get returns a session by ID. Returns nil and ErrNotFound if not found.
	Get(ctx context.Context, id string) (*Session, error)
	// Touch updates the session's last_active timestamp.
	Touch(ctx context.Context, id string) error
}

// SessionRepo provides methods for session operations.
// It implements the SessionStore interface.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new SessionRepo.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session with a generated UUID.
func (r *SessionRepo) Create(ctx context.Context) (*Session, error) {
	id := uuid.New().String()

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (id) VALUES (?)",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return r.Get(ctx, id)
}

// Get returns a session by ID. Returns nil and ErrNotFound if not found.
func (r *SessionRepo) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	var createdAtStr, lastActiveStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, created_at, last_active FROM sessions WHERE id = ?",
		id,
	).Scan(&session.ID, &createdAtStr, &lastActiveStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	session.LastActive, err = parseTimestamp(lastActiveStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last_active timestamp: %w", err)
	}

	return &session, nil
}

// Touch updates the session's last_active timestamp.
func (r *SessionRepo) Touch(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET last_active = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check touched rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
