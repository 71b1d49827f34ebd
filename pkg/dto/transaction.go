// Package dto defines the data-transfer shapes crossing the repository
// boundary, keeping persistence models out of services.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionCreate carries everything needed to persist a new entry.
type TransactionCreate struct {
	ID             uuid.UUID
	RawDate        string
	ParsedDate     time.Time
	Description    string
	AmountMinor    int64
	AmountRefMinor int64
	Currency       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TransactionUpdate is a partial update; nil fields are untouched.
// UpdatedAt is always stamped by the caller.
type TransactionUpdate struct {
	RawDate        *string
	ParsedDate     *time.Time
	Description    *string
	AmountMinor    *int64
	AmountRefMinor *int64
	Currency       *string
	Deleted        *bool
	UpdatedAt      time.Time
}

// TransactionRead is the read-side projection of a ledger entry.
type TransactionRead struct {
	ID             uuid.UUID `json:"id"`
	RawDate        string    `json:"date"`
	ParsedDate     time.Time `json:"parsed_date"`
	Description    string    `json:"description"`
	AmountMinor    int64     `json:"amount_minor"`
	AmountRefMinor int64     `json:"amount_ref_minor"`
	Currency       string    `json:"currency"`
	Deleted        bool      `json:"deleted"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
