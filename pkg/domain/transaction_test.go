package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLedgerDate(t *testing.T) {
	parsed, err := ParseLedgerDate("10-01-2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseLedgerDate("2025-01-10")
	require.Error(t, err)
}

func TestSanitizeDescription(t *testing.T) {
	assert.Equal(t, "Coffee", SanitizeDescription("  Coffee  "))

	long := strings.Repeat("x", 300)
	assert.Len(t, SanitizeDescription(long), MaxDescriptionLen)

	multibyte := strings.Repeat("é", 300)
	got := SanitizeDescription(multibyte)
	assert.Len(t, []rune(got), MaxDescriptionLen, "truncation counts runes, not bytes")
}
