package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
)

const (
	sqliteSelect = `SELECT document FROM farm_states WHERE profile = ?`
	sqliteUpsert = `INSERT INTO farm_states (profile, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (profile) DO UPDATE SET document = excluded.document, updated_at = CURRENT_TIMESTAMP`
)

// SQLiteStore keeps documents in a single SQLite table
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// applies migrations
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpen, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpen, err)
	}
	// Serialize writers on one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to enable WAL mode: %w", ErrMsgFailedToOpen, err)
	}

	if err := migrate(ctx, goose.DialectSQLite3, db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads the profile's document
func (s *SQLiteStore) Load(ctx context.Context, profile string) (doc string, err error) {
	defer func() { record(DriverSQLite, OperationLoad, err) }()

	err = s.db.QueryRowContext(ctx, sqliteSelect, profile).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profile)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToLoad, err)
	}
	return doc, nil
}

// Save upserts the profile's document
func (s *SQLiteStore) Save(ctx context.Context, profile, document string) (err error) {
	defer func() { record(DriverSQLite, OperationSave, err) }()

	if _, err = s.db.ExecContext(ctx, sqliteUpsert, profile, document); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSave, err)
	}
	return nil
}

// Ping checks the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
