package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/skarim/finledger/pkg/provider"
)

// FallbackRateSource decorates a RateSource so that any lookup failure
// degrades to a fixed default multiplier instead of propagating. This
// keeps the fallback policy explicit and testable in isolation from
// network behavior; a ledger write never fails because the rate provider
// is down.
type FallbackRateSource struct {
	source      provider.RateSource
	defaultRate float64
	logger      *slog.Logger
}

// NewFallbackRateSource wraps source with the given default multiplier.
func NewFallbackRateSource(
	source provider.RateSource,
	defaultRate float64,
	logger *slog.Logger,
) *FallbackRateSource {
	return &FallbackRateSource{
		source:      source,
		defaultRate: defaultRate,
		logger:      logger,
	}
}

// GetRate returns the wrapped source's rate, or the default multiplier
// when the lookup fails. Identical currencies short-circuit to 1.
func (f *FallbackRateSource) GetRate(
	ctx context.Context,
	from, to string,
	date time.Time,
) (float64, error) {
	if from == to {
		return 1, nil
	}
	rate, err := f.source.GetRate(ctx, from, to, date)
	if err != nil {
		f.logger.Warn("rate lookup failed, using default multiplier",
			"from", from, "to", to, "default", f.defaultRate, "error", err)
		return f.defaultRate, nil
	}
	return rate, nil
}

// Ensure FallbackRateSource implements provider.RateSource.
var _ provider.RateSource = (*FallbackRateSource)(nil)
