package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKV(t *testing.T) (*SQLiteKV, *sql.DB) {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteKV(db), db
}

func TestKV_SetManyAndGet(t *testing.T) {
	kv, _ := setupKV(t)
	ctx := context.Background()

	require.NoError(t, kv.SetMany(ctx, map[string]string{"token": "tok1", "user": `{"email":"a@b.com"}`}))

	v, ok, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok1", v)

	require.NoError(t, kv.SetMany(ctx, map[string]string{"token": "tok2"}))
	v, _, err = kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "tok2", v)
}

func TestKV_GetMissing(t *testing.T) {
	kv, _ := setupKV(t)

	v, ok, err := kv.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestKV_DeleteMany(t *testing.T) {
	kv, _ := setupKV(t)
	ctx := context.Background()

	require.NoError(t, kv.SetMany(ctx, map[string]string{"a": "1", "b": "2", "c": "3"}))
	require.NoError(t, kv.DeleteMany(ctx, "a", "b", "missing"))

	for _, k := range []string{"a", "b"} {
		_, ok, err := kv.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
	v, ok, err := kv.Get(ctx, "c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestKV_SetManyFailsWhenClosed(t *testing.T) {
	kv, db := setupKV(t)
	require.NoError(t, db.Close())

	err := kv.SetMany(context.Background(), map[string]string{"k": "v"})
	require.Error(t, err)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	kv, db := setupKV(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES ('x', 'y')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok, err := kv.Get(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	kv, db := setupKV(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = WithTx(ctx, db, func(ctx context.Context, tx DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES ('p', 'q')`)
			panic("kaboom")
		})
	})

	_, ok, err := kv.Get(ctx, "p")
	require.NoError(t, err)
	assert.False(t, ok)
}
