package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/dbx"
	"github.com/daybook-app/daybook/internal/server/auth"
	"github.com/daybook-app/daybook/internal/server/config"
	"github.com/daybook-app/daybook/internal/server/repositories/entries"
	"github.com/daybook-app/daybook/internal/server/repositories/refreshtokens"
	"github.com/daybook-app/daybook/internal/server/repositories/users"
)

// sqliteRepoManager vends the real repositories over an in-memory database,
// so the token rotation runs through real transactions.
type sqliteRepoManager struct {
	db *sql.DB
}

func (m *sqliteRepoManager) Conn() *sql.DB { return m.db }

func (m *sqliteRepoManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *sqliteRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *sqliteRepoManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewPostgresRepository(db)
}

func (m *sqliteRepoManager) RunMigrations(_ context.Context) error { return nil }
func (m *sqliteRepoManager) Close() error                          { return m.db.Close() }

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:userssvc?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS users (
  id            TEXT PRIMARY KEY,
  username      TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS refresh_tokens (
  token      TEXT PRIMARY KEY,
  user_id    TEXT NOT NULL,
  expires_at TIMESTAMP NOT NULL
);
DELETE FROM users;
DELETE FROM refresh_tokens;
`)
	require.NoError(t, err)
	return db
}

func testUserService(t *testing.T) (*UserService, *sqliteRepoManager) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test_secret"
	rm := &sqliteRepoManager{db: setupDB(t)}
	return NewUserService(rm.Conn(), rm, cfg), rm
}

func tokenExists(t *testing.T, rm *sqliteRepoManager, token string) bool {
	t.Helper()
	_, err := rm.RefreshTokens(rm.Conn()).Get(context.Background(), token)
	if err == nil {
		return true
	}
	require.ErrorIs(t, err, common.ErrorNotFound)
	return false
}

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := testUserService(t)

	user, err := svc.Register(ctx, "alice", []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret", user.PasswordHash)

	_, err = svc.Register(ctx, "alice", []byte("other"))
	assert.ErrorIs(t, err, common.ErrorUserAlreadyExists)

	_, err = svc.Register(ctx, "  ", []byte("secret"))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc, rm := testUserService(t)

	_, err := svc.Register(ctx, "alice", []byte("secret"))
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "alice", []byte("secret"))
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	userID, err := auth.GetUserIDFromToken(pair.AccessToken, []byte("test_secret"))
	require.NoError(t, err)
	assert.Equal(t, pair.UserID, userID)

	assert.True(t, tokenExists(t, rm, pair.RefreshToken))

	_, err = svc.Login(ctx, "alice", []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = svc.Login(ctx, "nobody", []byte("secret"))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserServiceRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	svc, rm := testUserService(t)

	_, err := svc.Register(ctx, "alice", []byte("secret"))
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", []byte("secret"))
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)
	assert.Equal(t, pair.UserID, fresh.UserID)

	// old token is revoked, a second refresh with it must fail
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	assert.True(t, tokenExists(t, rm, fresh.RefreshToken))
}

func TestUserServiceRefreshFailureKeepsOldToken(t *testing.T) {
	ctx := context.Background()
	svc, rm := testUserService(t)

	_, err := svc.Register(ctx, "alice", []byte("secret"))
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", []byte("secret"))
	require.NoError(t, err)

	// occupy the token the next issuance will pick, so its INSERT fails
	// after the old token's DELETE already ran inside the transaction
	require.NoError(t, rm.RefreshTokens(rm.Conn()).Create(ctx, pair.UserID, "blocker", time.Hour))
	orig := makeRefreshToken
	makeRefreshToken = func(int) (string, error) { return "blocker", nil }
	t.Cleanup(func() { makeRefreshToken = orig })

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)

	// the failed rotation rolled back: the old token still works
	assert.True(t, tokenExists(t, rm, pair.RefreshToken))

	makeRefreshToken = orig
	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, tokenExists(t, rm, fresh.RefreshToken))
}

func TestUserServiceRefreshExpired(t *testing.T) {
	ctx := context.Background()
	svc, rm := testUserService(t)

	require.NoError(t, rm.RefreshTokens(rm.Conn()).Create(ctx, "u-1", "stale", -time.Minute))

	_, err := svc.Refresh(ctx, "stale")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)

	// expired token was revoked on the way out
	assert.False(t, tokenExists(t, rm, "stale"))
}

func TestUserServiceLogout(t *testing.T) {
	ctx := context.Background()
	svc, rm := testUserService(t)

	_, err := svc.Register(ctx, "alice", []byte("secret"))
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", []byte("secret"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	assert.False(t, tokenExists(t, rm, pair.RefreshToken))

	// revoking an unknown token is fine
	assert.NoError(t, svc.Logout(ctx, "unknown"))
}
