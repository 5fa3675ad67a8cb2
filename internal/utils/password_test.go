package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"meets policy", "Strong1!", true},
		{"long with symbol and digit", "another#pass9", true},
		{"too short", "Weak1!", false},
		{"no digit", "Password!", false},
		{"no symbol", "Password1", false},
		{"common weak password", "abc12345", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidPassword(tc.password))
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Strong1!")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "Strong1!"))
	assert.False(t, CheckPassword(hash, "Strong1?"))
	assert.False(t, CheckPassword(hash, ""))
}
