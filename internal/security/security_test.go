package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	ok, err := VerifyPassword("admin123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPassword_MismatchIsNotAnError(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	ok, err := VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	ok, err := VerifyPassword("admin123", []byte("not a bcrypt hash"))
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestGenerateCSRFToken_Unique(t *testing.T) {
	first, err := GenerateCSRFToken()
	require.NoError(t, err)
	second, err := GenerateCSRFToken()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestValidCSRFToken(t *testing.T) {
	token, err := GenerateCSRFToken()
	require.NoError(t, err)

	assert.True(t, ValidCSRFToken(token, token))
	assert.False(t, ValidCSRFToken(token, "forged"))
	assert.False(t, ValidCSRFToken(token, ""))

	// An empty session token must never match, even an empty submission.
	assert.False(t, ValidCSRFToken("", ""))
	assert.False(t, ValidCSRFToken("", "anything"))
}
