package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDuplicates(t *testing.T) {
	rows := []Row{
		{Date: "10-01-2025", Description: "Coffee"},
		{Date: "10-01-2025", Description: "Lunch"},
		{Date: "10-01-2025", Description: "Coffee"},
		{Date: "11-01-2025", Description: "Coffee"},
		{Date: "10-01-2025", Description: "Coffee"},
	}

	reports, dupSet := DetectDuplicates(rows)

	require.Len(t, reports, 2)
	assert.Equal(t, DuplicateError{
		Index:   3,
		Message: "Record at 3 is a duplicate of record at 1",
	}, reports[0])
	assert.Equal(t, DuplicateError{
		Index:   5,
		Message: "Record at 5 is a duplicate of record at 1",
	}, reports[1])

	assert.Equal(t, map[int]bool{3: true, 5: true}, dupSet,
		"first occurrence is never flagged; differing date is a different key")
}

func TestDetectDuplicatesNone(t *testing.T) {
	rows := []Row{
		{Date: "10-01-2025", Description: "Coffee"},
		{Date: "10-01-2025", Description: "coffee"},
	}
	reports, dupSet := DetectDuplicates(rows)
	assert.Empty(t, reports, "keys are case-sensitive")
	assert.Empty(t, dupSet)
}

func TestDetectDuplicatesIgnoresAmountAndCurrency(t *testing.T) {
	rows := []Row{
		{Date: "10-01-2025", Description: "Coffee", Amount: 3.5, Currency: "USD"},
		{Date: "10-01-2025", Description: "Coffee", Amount: 99, Currency: "EUR"},
	}
	reports, _ := DetectDuplicates(rows)
	require.Len(t, reports, 1)
	assert.Equal(t, 2, reports[0].Index)
}

func TestDetectDuplicatesEmpty(t *testing.T) {
	reports, dupSet := DetectDuplicates(nil)
	assert.Empty(t, reports)
	assert.Empty(t, dupSet)
}

func TestRowKey(t *testing.T) {
	r := Row{Date: "10-01-2025", Description: "Coffee"}
	assert.Equal(t, "Coffee-10-01-2025", r.Key())
}
