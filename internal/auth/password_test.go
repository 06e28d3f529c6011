package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.NoError(t, ComparePassword(hash, "secret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("secret", 4)
	require.NoError(t, err)
	second, err := HashPassword("secret", 4)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestComparePasswordGarbageHash(t *testing.T) {
	assert.Error(t, ComparePassword("not-a-bcrypt-hash", "secret"))
}
