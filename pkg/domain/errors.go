package domain

import "errors"

// ErrNotFound is returned when a transaction cannot be found among
// non-deleted rows.
var ErrNotFound = errors.New("transaction not found")

// ErrDuplicateTransaction is returned when a write collides with an
// existing non-deleted transaction on (date, description). This covers both
// the pre-check and the storage-level unique constraint racing in.
var ErrDuplicateTransaction = errors.New("a transaction with the same date and description already exists")
