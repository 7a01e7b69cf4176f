package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAPIKey(t *testing.T) {
	hash, err := HashAPIKey("ops-key-123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "ops-key-123", hash)
	assert.Equal(t, "$2a$", hash[:4])
}

func TestCheckAPIKey(t *testing.T) {
	hash, err := HashAPIKey("ops-key-123")
	require.NoError(t, err)

	assert.True(t, CheckAPIKey("ops-key-123", hash))
	assert.False(t, CheckAPIKey("wrong-key", hash))
	assert.False(t, CheckAPIKey("", hash))
}
