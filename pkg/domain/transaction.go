// Package domain holds the ledger's field invariants and error taxonomy.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// LedgerDateLayout is the textual form dates are submitted and stored in.
const LedgerDateLayout = "02-01-2006"

// MaxDescriptionLen caps the free-text label.
const MaxDescriptionLen = 255

// ParseLedgerDate parses a dd-mm-yyyy string into its calendar form.
func ParseLedgerDate(raw string) (time.Time, error) {
	t, err := time.Parse(LedgerDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ledger date %q: %w", raw, err)
	}
	return t, nil
}

// SanitizeDescription trims surrounding whitespace and truncates to the
// column limit. The limit counts characters, not bytes. Used on ingest,
// where over-length descriptions are accepted silently; direct edits reject
// instead.
func SanitizeDescription(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > MaxDescriptionLen {
		s = string(runes[:MaxDescriptionLen])
	}
	return s
}
