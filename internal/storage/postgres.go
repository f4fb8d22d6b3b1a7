package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLExecutor is the slice of pgx needed by the Postgres store. Tests stub
// it; production passes a *pgxpool.Pool.
type SQLExecutor interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

const (
	qCreateEntries = `CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	qSelectEntry = `SELECT value FROM kv_entries WHERE key = $1`
	qUpsertEntry = `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// PostgresStore keeps key-value entries in a single Postgres table. It
// satisfies the same two-call contract as the file store, so history can
// be pointed at either without caring which.
type PostgresStore struct {
	sql     SQLExecutor
	timeout time.Duration
}

func NewPostgresStore(sql SQLExecutor) *PostgresStore {
	return &PostgresStore{sql: sql, timeout: 10 * time.Second}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.sql.Exec(ctx, qCreateEntries); err != nil {
		return fmt.Errorf("storage: ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetItem(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var value string
	if err := s.sql.QueryRow(ctx, qSelectEntry, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("storage: select %q: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) SetItem(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.sql.Exec(ctx, qUpsertEntry, key, value); err != nil {
		return fmt.Errorf("storage: upsert %q: %w", key, err)
	}
	return nil
}
