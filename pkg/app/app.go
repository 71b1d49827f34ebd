// Package app assembles the service layer from its infrastructure
// dependencies.
package app

import (
	"log/slog"

	"github.com/skarim/finledger/pkg/config"
	"github.com/skarim/finledger/pkg/currency"
	"github.com/skarim/finledger/pkg/provider"
	"github.com/skarim/finledger/pkg/repository"
	ingestsvc "github.com/skarim/finledger/pkg/service/ingest"
	transactionsvc "github.com/skarim/finledger/pkg/service/transaction"
	"github.com/skarim/finledger/pkg/validation"
)

// Deps contains the wired infrastructure the services are built on.
type Deps struct {
	Repo             repository.Transaction
	RateSource       provider.RateSource
	CurrencyRegistry *currency.Registry
	Validator        *validation.Validator
	Logger           *slog.Logger
}

type App struct {
	Deps               *Deps
	Config             *config.App
	TransactionService *transactionsvc.Service
	IngestService      *ingestsvc.Service
}

func New(deps *Deps, cfg *config.App) *App {
	ref := cfg.Exchange.ReferenceCurrency
	return &App{
		Deps:   deps,
		Config: cfg,
		TransactionService: transactionsvc.New(
			deps.Repo, deps.RateSource, deps.Validator, ref, deps.Logger),
		IngestService: ingestsvc.New(
			deps.Repo, deps.RateSource, deps.Validator, ref, deps.Logger),
	}
}
