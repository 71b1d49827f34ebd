// Package initializer wires configuration into concrete infrastructure:
// logger, database, migrations, repository and rate providers.
package initializer

import (
	"fmt"

	"github.com/skarim/finledger/infra"
	infra_provider "github.com/skarim/finledger/infra/provider"
	transactionrepo "github.com/skarim/finledger/infra/repository/transaction"
	currencyfixtures "github.com/skarim/finledger/internal/fixtures/currency"
	"github.com/skarim/finledger/pkg/app"
	"github.com/skarim/finledger/pkg/config"
	"github.com/skarim/finledger/pkg/currency"
	"github.com/skarim/finledger/pkg/validation"
)

// InitializeDependencies builds every infrastructure dependency the
// services need. The returned deps carry a fallback-wrapped rate source,
// so rate lookups never fail downstream.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("database ready")

	registry := currency.NewRegistry()
	entries, err := currencyfixtures.LoadCurrencyMetaCSV("")
	if err != nil {
		logger.Warn("failed to load currency metadata fixture", "error", err)
	} else {
		for _, e := range entries {
			registry.Register(e.Code, e.Meta)
		}
		logger.Info("currency allowlist loaded", "count", len(entries))
	}

	rates := infra_provider.NewFallbackRateSource(
		infra_provider.NewExchangeRateAPISource(cfg.Exchange, logger),
		cfg.Exchange.FallbackRate,
		logger,
	)

	return &app.Deps{
		Repo:             transactionrepo.New(db),
		RateSource:       rates,
		CurrencyRegistry: registry,
		Validator:        validation.New(registry),
		Logger:           logger,
	}, nil
}
