package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("lab-42", "lab", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, role, err := ExtractClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "lab-42", subject)
	assert.Equal(t, "lab", role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("doc-1", "dentist", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashToken("other-token"))
	assert.Len(t, a, 64)
}
