package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS poll_state (
	id     INTEGER PRIMARY KEY CHECK (id = 1),
	next_offset INTEGER NOT NULL
);
`

// Store implements store.OffsetStore on SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadOffset returns the persisted offset, or zero when none was saved yet.
func (s *Store) LoadOffset(ctx context.Context) (int, error) {
	var offset int
	err := s.db.QueryRowContext(ctx, `SELECT next_offset FROM poll_state WHERE id = 1`).Scan(&offset)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load offset: %w", err)
	}
	return offset, nil
}

// SaveOffset upserts the single poll_state row.
func (s *Store) SaveOffset(ctx context.Context, offset int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO poll_state (id, next_offset) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET next_offset = excluded.next_offset
	`, offset)
	if err != nil {
		return fmt.Errorf("save offset: %w", err)
	}
	return nil
}
