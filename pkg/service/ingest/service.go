// Package ingest orchestrates the CSV batch pipeline: parse, validate,
// deduplicate within the batch and against the store, convert, and
// bulk-insert.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
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

// RowError collects every validation message for one row. Index is
// 1-based.
type RowError struct {
	Index  int      `json:"index"`
	Errors []string `json:"errors"`
}

// Report is the structured outcome of one upload. Validation and
// duplication findings are data, not errors: a blocked batch still returns
// a Report with zero writes.
type Report struct {
	Message          string                  `json:"message"`
	SuccessCount     int                     `json:"success_count"`
	Transactions     []*dto.TransactionRead  `json:"transactions,omitempty"`
	ValidationErrors []RowError              `json:"validation_errors,omitempty"`
	DuplicateErrors  []ingest.DuplicateError `json:"duplicate_errors,omitempty"`
}

// Blocked reports whether the batch was rejected without writing.
func (r *Report) Blocked() bool {
	return len(r.ValidationErrors) > 0 || len(r.DuplicateErrors) > 0
}

// Service runs the ingestion pipeline. The rate source is expected to be
// fallback-wrapped so a rate failure degrades to the default multiplier
// instead of aborting rows.
type Service struct {
	repo        repository.Transaction
	rates       provider.RateSource
	validator   *validation.Validator
	refCurrency string
	logger      *slog.Logger
}

// New creates an ingestion service.
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

// ProcessCSV runs the whole pipeline over one uploaded file.
//
// The batch is all-or-nothing: any validation error, or any intra-batch
// duplicate without skipDuplicateCheck, or any collision with a persisted
// non-deleted entry, blocks every write. With skipDuplicateCheck set,
// later occurrences of a duplicated key are silently dropped and the first
// occurrence is written.
//
// Structural failures (malformed CSV, missing headers) and repository
// failures are returned as errors; everything expected comes back inside
// the Report.
func (s *Service) ProcessCSV(ctx context.Context, data []byte, skipDuplicateCheck bool) (*Report, error) {
	rows, err := ingest.Parse(data)
	if err != nil {
		return nil, err
	}

	var validationErrs []RowError
	for i, row := range rows {
		if msgs := s.validator.Validate(row); len(msgs) > 0 {
			validationErrs = append(validationErrs, RowError{Index: i + 1, Errors: msgs})
		}
	}

	// Duplicate detection runs over every row, valid or not.
	dupReports, dupSet := ingest.DetectDuplicates(rows)

	if len(validationErrs) > 0 || (len(dupReports) > 0 && !skipDuplicateCheck) {
		report := &Report{
			Message:          "CSV batch rejected",
			ValidationErrors: validationErrs,
		}
		if !skipDuplicateCheck {
			report.DuplicateErrors = dupReports
		}
		s.logger.Warn("CSV batch rejected",
			"rows", len(rows),
			"validation_errors", len(validationErrs),
			"duplicate_errors", len(dupReports))
		return report, nil
	}

	// Persisted-duplicate gate covers the full batch, including rows
	// already flagged as intra-batch duplicates. No opt-out.
	dbDups, err := s.findPersistedDuplicates(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(dbDups) > 0 {
		s.logger.Warn("CSV batch collides with persisted entries", "count", len(dbDups))
		return &Report{
			Message:         "CSV batch rejected",
			DuplicateErrors: dbDups,
		}, nil
	}

	creates, err := s.buildEntities(ctx, rows, dupSet)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateMany(ctx, creates); err != nil {
		return nil, err
	}

	reads := make([]*dto.TransactionRead, len(creates))
	for i, c := range creates {
		reads[i] = &dto.TransactionRead{
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

	s.logger.Info("CSV batch written", "rows", len(rows), "written", len(creates))
	return &Report{
		Message:      "Transactions added successfully",
		SuccessCount: len(creates),
		Transactions: reads,
	}, nil
}

// findPersistedDuplicates maps store collisions back to 1-based row
// indices. A repository failure here is pipeline-fatal; it must never be
// read as "no duplicates".
func (s *Service) findPersistedDuplicates(ctx context.Context, rows []ingest.Row) ([]ingest.DuplicateError, error) {
	pairs := make([]repository.DateDescription, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := row.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, repository.DateDescription{
			RawDate:     row.Date,
			Description: row.Description,
		})
	}

	existing, err := s.repo.FindExisting(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("checking persisted duplicates: %w", err)
	}
	if len(existing) == 0 {
		return nil, nil
	}

	persisted := make(map[string]bool, len(existing))
	for _, tx := range existing {
		persisted[tx.Description+"-"+tx.RawDate] = true
	}

	var dups []ingest.DuplicateError
	for i, row := range rows {
		if persisted[row.Key()] {
			dups = append(dups, ingest.DuplicateError{
				Index: i + 1,
				Message: fmt.Sprintf(
					"Record at %d already exists in the ledger: %s-%s",
					i+1, row.Description, row.Date),
			})
		}
	}
	return dups, nil
}

// buildEntities constructs create DTOs for every row except later
// occurrences of a duplicated key. Rate lookups run in input order so
// reported indices stay aligned with the written list.
func (s *Service) buildEntities(ctx context.Context, rows []ingest.Row, dupSet map[int]bool) ([]dto.TransactionCreate, error) {
	now := time.Now().UTC()
	creates := make([]dto.TransactionCreate, 0, len(rows))
	for i, row := range rows {
		if dupSet[i+1] {
			continue
		}

		parsed, err := domain.ParseLedgerDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		minor, err := money.ToMinor(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rate, err := s.rates.GetRate(ctx, row.Currency, s.refCurrency, parsed)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		refMinor, err := money.Multiply(minor, rate)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		id := uuid.New()
		if row.ID != "" {
			id = uuid.MustParse(row.ID)
		}
		creates = append(creates, dto.TransactionCreate{
			ID:             id,
			RawDate:        row.Date,
			ParsedDate:     parsed,
			Description:    domain.SanitizeDescription(row.Description),
			AmountMinor:    minor,
			AmountRefMinor: refMinor,
			Currency:       row.Currency,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return creates, nil
}
