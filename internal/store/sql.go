package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mapatag/internal/dbx"
)

type sqlQueries struct {
	get    string
	upsert string
	delete string
}

var sqliteQueries = sqlQueries{
	get: `SELECT value FROM kv_store WHERE key = ?`,
	upsert: `
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`,
	delete: `DELETE FROM kv_store WHERE key = ?`,
}

var postgresQueries = sqlQueries{
	get: `SELECT value FROM kv_store WHERE key = $1`,
	upsert: `
		INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`,
	delete: `DELETE FROM kv_store WHERE key = $1`,
}

// SQLBackend keeps values in the kv_store table of a SQLite or PostgreSQL
// database.
type SQLBackend struct {
	db *sql.DB
	q  sqlQueries
}

// NewSQLiteBackend wraps a SQLite handle. The schema must already exist
// (see RunMigrations).
func NewSQLiteBackend(db *sql.DB) *SQLBackend {
	return &SQLBackend{db: db, q: sqliteQueries}
}

// NewPostgresBackend wraps a PostgreSQL handle opened with the pgx driver.
func NewPostgresBackend(db *sql.DB) *SQLBackend {
	return &SQLBackend{db: db, q: postgresQueries}
}

func (b *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, b.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (b *SQLBackend) Set(ctx context.Context, key string, value []byte) error {
	return b.set(ctx, b.db, key, value)
}

func (b *SQLBackend) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	if _, err := db.ExecContext(ctx, b.q.upsert, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// SetMany upserts every value inside one transaction.
func (b *SQLBackend) SetMany(ctx context.Context, values map[string][]byte) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range sortedKeys(values) {
			if err := b.set(ctx, tx, key, values[key]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *SQLBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, b.q.delete, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}
