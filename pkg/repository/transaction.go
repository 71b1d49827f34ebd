// Package repository defines the persistence contracts consumed by the
// services. Implementations live under infra/repository.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/skarim/finledger/pkg/dto"
)

// DateDescription is the natural identity of a ledger entry among
// non-deleted rows.
type DateDescription struct {
	RawDate     string
	Description string
}

// ListParams shapes the paginated list query. Search is a case-insensitive
// substring match over the description.
type ListParams struct {
	Search string
	Limit  int
	Offset int
}

// Transaction is the ledger store.
//
// All read methods except Get exclude soft-deleted rows. Implementations
// must surface unique-constraint violations as domain.ErrDuplicateTransaction
// so the race between two identical concurrent submissions reaches the
// caller as a duplicate, not a generic failure.
type Transaction interface {
	// Get looks up by id regardless of the deleted flag.
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)
	// GetActive looks up a non-deleted entry by id.
	GetActive(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)
	// FindExisting returns the non-deleted entries matching any of the
	// given (date, description) pairs, in one round trip.
	FindExisting(ctx context.Context, pairs []DateDescription) ([]*dto.TransactionRead, error)
	Create(ctx context.Context, create dto.TransactionCreate) error
	// CreateMany persists the batch as one bulk write.
	CreateMany(ctx context.Context, creates []dto.TransactionCreate) error
	Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error
	// SoftDelete marks the given entries deleted and returns the affected
	// count. A nil or empty id list targets every non-deleted entry.
	SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	// HardDelete removes an entry permanently. Administrative escape
	// hatch; the HTTP surface never calls it.
	HardDelete(ctx context.Context, id uuid.UUID) error
	// ListActive returns one page ordered by parsed_date descending, plus
	// the total count of non-deleted entries matching the filter.
	ListActive(ctx context.Context, params ListParams) ([]*dto.TransactionRead, int64, error)
}
