package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := HashPassword("secret123")
	require.NoError(t, err)
	h2, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ")
	assert.True(t, CheckPassword("secret123", h1))
	assert.True(t, CheckPassword("secret123", h2))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	require.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword("correct-horse", hash))
	assert.False(t, CheckPassword("wrong-horse", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("anything", ""))
}

func TestRandomCredential(t *testing.T) {
	c1, err := RandomCredential()
	require.NoError(t, err)
	c2, err := RandomCredential()
	require.NoError(t, err)

	assert.NotEqual(t, c1, c2)
	// Nobody knows the plaintext, so nothing obvious should verify.
	assert.False(t, CheckPassword("", c1))
	assert.False(t, CheckPassword(":P", c1))
}
