package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword([]byte("correct horse battery staple"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword([]byte("correct horse battery staple"), hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword([]byte("wrong password"), hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	a, err := HashPassword([]byte("pw"))
	require.NoError(t, err)
	b, err := HashPassword([]byte("pw"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "same password must hash differently per salt")
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, h := range []string{"", "plainhash", "$bcrypt$x$y$z$w", "$argon2id$v=19$m=65536,t=1,p=4$only-one-part"} {
		_, err := VerifyPassword([]byte("pw"), h)
		assert.Error(t, err, "hash %q", h)
	}
}
