// Package provider implements the outbound collaborators: the currency
// rate lookup and its fallback policy.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/skarim/finledger/pkg/config"
	"github.com/skarim/finledger/pkg/provider"
)

// ExchangeRateAPISource fetches rates from exchangerate-api.com (v6
// endpoint). It can fail; wrap it with NewFallbackRateSource for the paths
// that must not.
type ExchangeRateAPISource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// exchangeRateAPIResponseV6 is the v6 response shape.
// See: https://www.exchangerate-api.com/docs/standard-requests
type exchangeRateAPIResponseV6 struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	ErrorType       string             `json:"error-type,omitempty"`
}

// NewExchangeRateAPISource creates an exchangerate-api.com rate source
// from config.
func NewExchangeRateAPISource(cfg *config.Exchange, logger *slog.Logger) *ExchangeRateAPISource {
	return &ExchangeRateAPISource{
		apiKey:  cfg.ApiKey,
		baseURL: cfg.ApiUrl,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// GetRate fetches the multiplier for one currency pair. The v6 endpoint
// serves latest rates only, so the requested date is logged but not sent.
func (s *ExchangeRateAPISource) GetRate(
	ctx context.Context,
	from, to string,
	date time.Time,
) (float64, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", s.baseURL, s.apiKey, from)
	s.logger.Debug("fetching exchange rate",
		"from", from, "to", to, "date", date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp exchangeRateAPIResponseV6
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if apiResp.Result != "success" {
		return 0, fmt.Errorf("API returned result=%s error-type=%s", apiResp.Result, apiResp.ErrorType)
	}

	rate, exists := apiResp.ConversionRates[to]
	if !exists {
		return 0, fmt.Errorf("currency %s not found in response", to)
	}
	return rate, nil
}

// Ensure ExchangeRateAPISource implements provider.RateSource.
var _ provider.RateSource = (*ExchangeRateAPISource)(nil)
