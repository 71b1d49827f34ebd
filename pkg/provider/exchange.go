// Package provider defines outbound collaborator contracts.
package provider

import (
	"context"
	"time"
)

// RateSource supplies the multiplier from one currency to another on a
// given date. Implementations may fail; callers that must not fail wrap a
// RateSource with the fallback decorator in infra/provider.
type RateSource interface {
	GetRate(ctx context.Context, from, to string, date time.Time) (float64, error)
}
