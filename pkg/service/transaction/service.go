// Package transaction implements the single-entry use cases: add, edit,
// soft-delete and paginated listing.
package transaction

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skarim/finledger/pkg/domain"
	"github.com/skarim/finledger/pkg/dto"
	"github.com/skarim/finledger/pkg/ingest"
	"github.com/skarim/finledger/pkg/money"
	"github.com/skarim/finledger/pkg/provider"
	"github.com/skarim/finledger/pkg/repository"
	"github.com/skarim/finledger/pkg/validation"
)

// Service provides the single-transaction operations. The configured rate
// source is expected to be fallback-wrapped and therefore non-failing for
// rate lookups.
type Service struct {
	repo        repository.Transaction
	rates       provider.RateSource
	validator   *validation.Validator
	refCurrency string
	logger      *slog.Logger
}

// New creates a transaction service.
func New(
	repo repository.Transaction,
	rates provider.RateSource,
	validator *validation.Validator,
	refCurrency string,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		rates:       rates,
		validator:   validator,
		refCurrency: refCurrency,
		logger:      logger,
	}
}

// CreateInput is a single submitted transaction.
type CreateInput struct {
	Date        string
	Description string
	Amount      float64
	Currency    string
}

// UpdateInput is a partial edit; nil fields are left untouched.
type UpdateInput struct {
	Date        *string
	Description *string
	Amount      *float64
	Currency    *string
}

// ListResult is one page of the ledger plus the total match count.
type ListResult struct {
	Transactions []*dto.TransactionRead
	TotalCount   int64
}

// Create validates the submission, checks for an existing non-deleted
// entry with the same (date, description), computes the derived amounts
// and persists. Returns domain.ValidationError for field failures and
// domain.ErrDuplicateTransaction for collisions, including constraint
// races surfaced by the store.
func (s *Service) Create(ctx context.Context, in CreateInput) (*dto.TransactionRead, error) {
	row := ingest.Row{
		Date:        strings.TrimSpace(in.Date),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		AmountRaw:   strconv.FormatFloat(in.Amount, 'f', -1, 64),
		Currency:    strings.TrimSpace(in.Currency),
	}
	if msgs := s.validator.Validate(row); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	existing, err := s.repo.FindExisting(ctx, []repository.DateDescription{
		{RawDate: row.Date, Description: row.Description},
	})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, domain.ErrDuplicateTransaction
	}

	create, err := s.buildCreate(ctx, row)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, create); err != nil {
		return nil, err
	}

	s.logger.Info("transaction created",
		"id", create.ID, "date", create.RawDate, "currency", create.Currency)
	return readFromCreate(create), nil
}

// Update applies a partial edit to a non-deleted entry. Only supplied
// fields are validated and changed; derived fields are recomputed when the
// fields they depend on change. Over-length descriptions are rejected here,
// unlike ingest which truncates.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*dto.TransactionRead, error) {
	current, err := s.repo.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate the merged row: stored fields are known-valid, so any
	// failure points at a supplied field.
	merged := ingest.Row{
		Date:        current.RawDate,
		Description: current.Description,
		Amount:      money.FromMinor(current.AmountMinor),
		Currency:    current.Currency,
	}
	if in.Date != nil {
		merged.Date = strings.TrimSpace(*in.Date)
	}
	if in.Description != nil {
		merged.Description = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		merged.Amount = *in.Amount
	}
	if in.Currency != nil {
		merged.Currency = strings.TrimSpace(*in.Currency)
	}
	merged.AmountRaw = strconv.FormatFloat(merged.Amount, 'f', -1, 64)
	if msgs := s.validator.Validate(merged); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	update := dto.TransactionUpdate{UpdatedAt: time.Now().UTC()}
	if in.Date != nil && merged.Date != current.RawDate {
		parsed, err := domain.ParseLedgerDate(merged.Date)
		if err != nil {
			return nil, &domain.ValidationError{Messages: []string{err.Error()}}
		}
		update.RawDate = &merged.Date
		update.ParsedDate = &parsed
	}
	if in.Description != nil && merged.Description != current.Description {
		update.Description = &merged.Description
	}
	if in.Currency != nil && merged.Currency != current.Currency {
		update.Currency = &merged.Currency
	}

	amountChanged := in.Amount != nil && *in.Amount != money.FromMinor(current.AmountMinor)
	currencyChanged := update.Currency != nil
	if amountChanged || currencyChanged {
		minor := current.AmountMinor
		if amountChanged {
			m, err := money.ToMinor(merged.Amount)
			if err != nil {
				return nil, &domain.ValidationError{Messages: []string{err.Error()}}
			}
			minor = m
			update.AmountMinor = &minor
		}
		refMinor, err := s.convertToReference(ctx, minor, merged.Currency, merged.Date)
		if err != nil {
			return nil, err
		}
		update.AmountRefMinor = &refMinor
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.repo.GetActive(ctx, id)
}

// SoftDelete marks one non-deleted entry deleted.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetActive(ctx, id); err != nil {
		return err
	}
	_, err := s.repo.SoftDelete(ctx, []uuid.UUID{id})
	return err
}

// SoftDeleteBulk marks every entry in ids deleted, or every non-deleted
// entry when ids is empty. An empty target set is reported as zero
// affected, not an error.
func (s *Service) SoftDeleteBulk(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.repo.SoftDelete(ctx, ids)
}

// HardDelete removes an entry permanently. Administrative escape hatch.
func (s *Service) HardDelete(ctx context.Context, id uuid.UUID) error {
	return s.repo.HardDelete(ctx, id)
}

// List returns one page of non-deleted entries ordered by parsed date
// descending. Page and limit are 1-based and must be positive; the caller
// validates raw query input.
func (s *Service) List(ctx context.Context, page, limit int, search string) (*ListResult, error) {
	params := repository.ListParams{
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	txs, total, err := s.repo.ListActive(ctx, params)
	if err != nil {
		return nil, err
	}
	return &ListResult{Transactions: txs, TotalCount: total}, nil
}

func (s *Service) buildCreate(ctx context.Context, row ingest.Row) (dto.TransactionCreate, error) {
	parsed, err := domain.ParseLedgerDate(row.Date)
	if err != nil {
		return dto.TransactionCreate{}, err
	}
	minor, err := money.ToMinor(row.Amount)
	if err != nil {
		return dto.TransactionCreate{}, err
	}
	refMinor, err := s.convertToReference(ctx, minor, row.Currency, row.Date)
	if err != nil {
		return dto.TransactionCreate{}, err
	}

	now := time.Now().UTC()
	return dto.TransactionCreate{
		ID:             uuid.New(),
		RawDate:        row.Date,
		ParsedDate:     parsed,
		Description:    domain.SanitizeDescription(row.Description),
		AmountMinor:    minor,
		AmountRefMinor: refMinor,
		Currency:       row.Currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s *Service) convertToReference(ctx context.Context, minor int64, from, rawDate string) (int64, error) {
	date, err := domain.ParseLedgerDate(rawDate)
	if err != nil {
		return 0, err
	}
	rate, err := s.rates.GetRate(ctx, from, s.refCurrency, date)
	if err != nil {
		return 0, err
	}
	return money.Multiply(minor, rate)
}

func readFromCreate(c dto.TransactionCreate) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:             c.ID,
		RawDate:        c.RawDate,
		ParsedDate:     c.ParsedDate,
		Description:    c.Description,
		AmountMinor:    c.AmountMinor,
		AmountRefMinor: c.AmountRefMinor,
		Currency:       c.Currency,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
