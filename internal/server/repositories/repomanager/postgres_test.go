package repomanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresRepositoryManager_NoConnectionAtConstruction(t *testing.T) {
	// sql.Open is lazy; constructing the manager must not touch the database
	// (migrations run later, from App.Run), so an unreachable DSN still works.
	m, err := NewPostgresRepositoryManager("postgres://nobody@127.0.0.1:1/nope")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	assert.NotNil(t, m.Conn())
	assert.NotNil(t, m.Users(m.Conn()))
	assert.NotNil(t, m.RefreshTokens(m.Conn()))
	assert.NotNil(t, m.Entries(m.Conn()))
}
