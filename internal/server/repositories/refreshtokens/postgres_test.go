package refreshtokens

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/daybook-app/daybook/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:rtrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS refresh_tokens (
  token      TEXT PRIMARY KEY,
  user_id    TEXT NOT NULL,
  expires_at TIMESTAMP NOT NULL
);
DELETE FROM refresh_tokens;
`)
	require.NoError(t, err)
	return db
}

func TestCreateAndGet(t *testing.T) {
	r := NewPostgresRepository(setupDB(t))

	require.NoError(t, r.Create(context.Background(), "u1", "tok-1", time.Hour))

	rt, err := r.Get(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", rt.UserID)
	assert.True(t, rt.ExpiresAt.After(time.Now()), "expiry in the future")
}

func TestGet_Unknown(t *testing.T) {
	r := NewPostgresRepository(setupDB(t))

	_, err := r.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_Idempotent(t *testing.T) {
	r := NewPostgresRepository(setupDB(t))
	require.NoError(t, r.Create(context.Background(), "u1", "tok-1", time.Hour))

	require.NoError(t, r.Delete(context.Background(), "tok-1"))
	_, err := r.Get(context.Background(), "tok-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// deleting again is not an error
	require.NoError(t, r.Delete(context.Background(), "tok-1"))
}
