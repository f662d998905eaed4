package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempSQLite(t *testing.T) *SQLBackend {
	t.Helper()
	b, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "mapatag.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSQLite_SetAndGet(t *testing.T) {
	b := openTempSQLite(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "k1", []byte(`[1,2]`)))

	v, err := b.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), v)
}

func TestSQLite_Get_Absent_ReturnsNilNil(t *testing.T) {
	b := openTempSQLite(t)

	v, err := b.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLite_Set_Upserts(t *testing.T) {
	b := openTempSQLite(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "k", []byte("old")))
	require.NoError(t, b.Set(ctx, "k", []byte("new")))

	v, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestSQLite_SetMany_And_Delete(t *testing.T) {
	b := openTempSQLite(t)
	ctx := context.Background()

	require.NoError(t, b.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))

	v, err := b.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	require.NoError(t, b.Delete(ctx, "a"))
	require.NoError(t, b.Delete(ctx, "a"))

	v, err = b.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	b, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, KeySeniors, []byte(`[]`)))
	require.NoError(t, b.Close())

	b, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer b.Close()

	v, err := b.Get(ctx, KeySeniors)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
}

func newPostgresWithMock(t *testing.T) (*SQLBackend, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresBackend(db), mock
}

const (
	pgGetQ    = `(?s)^SELECT\s+value\s+FROM\s+kv_store\s+WHERE\s+key\s*=\s*\$1\s*$`
	pgUpsertQ = `(?s)^\s*INSERT\s+INTO\s+kv_store\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE\s+SET\s+value\s*=\s*EXCLUDED\.value,\s*updated_at\s*=\s*now\(\)\s*$`
	pgDeleteQ = `(?s)^DELETE\s+FROM\s+kv_store\s+WHERE\s+key\s*=\s*\$1\s*$`
)

func TestPostgres_Get_Found(t *testing.T) {
	b, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgGetQ).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("v")))

	v, err := b.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get_NoRows(t *testing.T) {
	b, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgGetQ).WithArgs("k").WillReturnError(sql.ErrNoRows)

	v, err := b.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPostgres_Get_DBError(t *testing.T) {
	b, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgGetQ).WithArgs("k").WillReturnError(errors.New("db down"))

	_, err := b.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get k")
	assert.Contains(t, err.Error(), "db down")
}

func TestPostgres_Set(t *testing.T) {
	b, mock := newPostgresWithMock(t)

	mock.ExpectExec(pgUpsertQ).WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, b.Set(context.Background(), "k", []byte("v")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetMany_CommitsInKeyOrder(t *testing.T) {
	b, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(pgUpsertQ).WithArgs("a", []byte("1")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(pgUpsertQ).WithArgs("b", []byte("2")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := b.SetMany(context.Background(), map[string][]byte{"b": []byte("2"), "a": []byte("1")})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetMany_RollsBackOnError(t *testing.T) {
	b, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(pgUpsertQ).WithArgs("a", []byte("1")).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := b.SetMany(context.Background(), map[string][]byte{"a": []byte("1")})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Delete(t *testing.T) {
	b, mock := newPostgresWithMock(t)

	mock.ExpectExec(pgDeleteQ).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, b.Delete(context.Background(), "k"))

	mock.ExpectExec(pgDeleteQ).WithArgs("k").WillReturnError(errors.New("nope"))
	err := b.Delete(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete k")
}
