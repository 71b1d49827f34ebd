// Package ingest turns raw CSV uploads into candidate ledger rows and
// detects duplicates within a batch.
package ingest

// Row is one parsed CSV record, trimmed but not yet validated.
//
// Amount carries the numeric coercion of AmountRaw: 0 when the cell was
// empty, NaN when it could not be parsed. AmountRaw keeps the original
// cell so error messages can echo the offending value.
type Row struct {
	ID          string
	Date        string
	Description string
	Amount      float64
	AmountRaw   string
	Currency    string
}

// Key is the identity used for duplicate detection: description and date
// joined, trimmed as parsed, case-sensitive. Amount and currency are
// deliberately not part of the identity.
func (r Row) Key() string {
	return r.Description + "-" + r.Date
}
