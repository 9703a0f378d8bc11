package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
)

const (
	postgresSelect = `SELECT document FROM farm_states WHERE profile = $1`
	postgresUpsert = `INSERT INTO farm_states (profile, document, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (profile) DO UPDATE SET document = EXCLUDED.document, updated_at = CURRENT_TIMESTAMP`
)

// PostgresStore keeps documents in Postgres through a pgx pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPool creates a new PostgreSQL connection pool
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}
	config.MinConns = DefaultMinConnections
	config.MaxConns = DefaultMaxConnections

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	logger.FromContext(ctx).Info(LogMsgConnectedToDB)
	return pool, nil
}

// NewPostgresStore connects and applies migrations
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := NewPool(ctx, connString)
	if err != nil {
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrate(ctx, goose.DialectPostgres, db); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Load reads the profile's document
func (s *PostgresStore) Load(ctx context.Context, profile string) (doc string, err error) {
	defer func() { record(DriverPostgres, OperationLoad, err) }()

	err = s.pool.QueryRow(ctx, postgresSelect, profile).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profile)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToLoad, err)
	}
	return doc, nil
}

// Save upserts the profile's document
func (s *PostgresStore) Save(ctx context.Context, profile, document string) (err error) {
	defer func() { record(DriverPostgres, OperationSave, err) }()

	if _, err = s.pool.Exec(ctx, postgresUpsert, profile, document); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSave, err)
	}
	return nil
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
