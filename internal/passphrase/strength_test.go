package passphrase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idelchi/veil/internal/passphrase"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		score    int
		level    passphrase.Level
	}{
		{"", 0, passphrase.Weak},
		{"abc", 0, passphrase.Weak},
		{"abcdef", 1, passphrase.Weak},
		{"abcdef1", 2, passphrase.Fair},
		{"abcdefghij", 2, passphrase.Fair},
		{"Abcdefghij", 3, passphrase.Good},
		{"Abcdefghi1", 4, passphrase.Strong},
		{"Abcdefgh1!", 5, passphrase.Strong},
		{"correct-horse-battery", 3, passphrase.Good},
		{"ÄÖÜäöü", 2, passphrase.Fair},
	}

	for _, tc := range tests {
		t.Run(tc.password, func(t *testing.T) {
			t.Parallel()

			got := passphrase.Evaluate([]byte(tc.password))

			assert.Equal(t, tc.score, got.Score)
			assert.Equal(t, tc.level, got.Level)
		})
	}
}

func TestEvaluateSuggestions(t *testing.T) {
	t.Parallel()

	got := passphrase.Evaluate([]byte("abcdef"))
	assert.Equal(t, []string{
		"use at least 10 characters",
		"mix uppercase and lowercase letters",
		"add a number",
		"add a symbol",
	}, got.Suggestions)

	assert.Empty(t, passphrase.Evaluate([]byte("Abcdefgh1!")).Suggestions)
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Weak", passphrase.Weak.String())
	assert.Equal(t, "Fair", passphrase.Fair.String())
	assert.Equal(t, "Good", passphrase.Good.String())
	assert.Equal(t, "Strong", passphrase.Strong.String())
	assert.Equal(t, "Unknown", passphrase.Level(42).String())
}
