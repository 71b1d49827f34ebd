package ingest

import "fmt"

// DuplicateError reports one row that collides with an earlier row. Index
// is 1-based, matching how rows are reported back to the caller.
type DuplicateError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// DetectDuplicates walks rows in order and flags every row whose key was
// already seen earlier in the batch. The first occurrence of a key is never
// flagged. Returns the reports and the set of flagged 1-based indices.
//
// Duplicate detection is independent of field validity: invalid rows still
// participate.
func DetectDuplicates(rows []Row) ([]DuplicateError, map[int]bool) {
	var reports []DuplicateError
	duplicates := make(map[int]bool)
	firstSeen := make(map[string]int, len(rows))

	for i, row := range rows {
		key := row.Key()
		if first, seen := firstSeen[key]; seen {
			reports = append(reports, DuplicateError{
				Index:   i + 1,
				Message: fmt.Sprintf("Record at %d is a duplicate of record at %d", i+1, first+1),
			})
			duplicates[i+1] = true
			continue
		}
		firstSeen[key] = i
	}
	return reports, duplicates
}
