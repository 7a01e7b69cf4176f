package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialLengthAndAlphabet(t *testing.T) {
	cred, err := NewCredential()
	require.NoError(t, err)
	assert.Len(t, cred, CredentialLength)

	for _, c := range cred {
		assert.True(t, strings.ContainsRune(credentialAlphabet, c),
			"character %q outside the credential alphabet", c)
	}
}

func TestCredentialAlphabetCoversFourClasses(t *testing.T) {
	assert.Contains(t, credentialAlphabet, "A")
	assert.Contains(t, credentialAlphabet, "a")
	assert.Contains(t, credentialAlphabet, "0")
	assert.Contains(t, credentialAlphabet, "!")
	// 70 symbols keeps the birthday bound comfortable at length 12.
	assert.GreaterOrEqual(t, len(credentialAlphabet), 70)
}

func TestNewCredentialNoDuplicates(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		cred, err := NewCredential()
		require.NoError(t, err)
		_, dup := seen[cred]
		require.False(t, dup, "duplicate credential after %d generations", i)
		seen[cred] = struct{}{}
	}
}
