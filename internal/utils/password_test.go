package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter200")
	require.NoError(t, err)
	require.NotEqual(t, "hunter200", hash)

	require.True(t, CheckPasswordHash("hunter200", hash))
	require.False(t, CheckPasswordHash("wrong", hash))
	require.False(t, CheckPasswordHash("hunter200", "not-a-hash"))
}

func TestHashPasswordSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
