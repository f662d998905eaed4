package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const upsert = `INSERT INTO kv_store (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dbx.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv_store (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(upsert, "mapatag_seniors", []byte(`[]`))
	require.NoError(t, err)
	return db
}

func value(t *testing.T, db *sql.DB, key string) string {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ""
	}
	require.NoError(t, err)
	return string(v)
}

func putBoth(ctx context.Context, tx DBTX) error {
	if _, err := tx.ExecContext(ctx, upsert, "mapatag_seniors", []byte(`[{"id":"1"}]`)); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, upsert, "mapatag_scid_sequence", []byte(`1`))
	return err
}

func TestWithTx_CommitsAllKeys(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, putBoth)
	require.NoError(t, err)

	require.Equal(t, `[{"id":"1"}]`, value(t, db, "mapatag_seniors"), "existing key must be overwritten")
	require.Equal(t, "1", value(t, db, "mapatag_scid_sequence"), "new key must be inserted")
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, putBoth(ctx, tx))
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	require.Equal(t, `[]`, value(t, db, "mapatag_seniors"), "must rollback when fn returns error")
	require.Empty(t, value(t, db, "mapatag_scid_sequence"))
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, `[]`, value(t, db, "mapatag_seniors"), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, putBoth(ctx, tx))
		panic("kaput")
	})
}

func TestWithTx_ReadsOwnWrites(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := putBoth(ctx, tx); err != nil {
			return err
		}
		var v []byte
		if err := tx.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, "mapatag_scid_sequence").Scan(&v); err != nil {
			return err
		}
		require.Equal(t, "1", string(v))
		return nil
	})
	require.NoError(t, err)
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}
