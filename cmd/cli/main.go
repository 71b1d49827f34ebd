package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/skarim/finledger/infra/initializer"
	"github.com/skarim/finledger/pkg/app"
	"github.com/skarim/finledger/pkg/config"
)

func main() {
	argsLen := len(os.Args)
	if argsLen < 2 {
		fmt.Println("Usage: cli <command> [arguments]")
		fmt.Println("Commands: import <file.csv> [--skip-duplicates], purge <id>, list [page] [limit]")
		return
	}
	cmd := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize: %v", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)
	ctx := context.Background()

	switch cmd {
	case "import":
		if argsLen < 3 {
			fmt.Println("Usage: import <file.csv> [--skip-duplicates]")
			return
		}
		data, err := os.ReadFile(os.Args[2])
		if err != nil {
			color.Red("Failed to read %s: %v", os.Args[2], err)
			os.Exit(1)
		}
		skip := argsLen > 3 && os.Args[3] == "--skip-duplicates"

		report, err := a.IngestService.ProcessCSV(ctx, data, skip)
		if err != nil {
			color.Red("Import failed: %v", err)
			os.Exit(1)
		}
		for _, ve := range report.ValidationErrors {
			for _, msg := range ve.Errors {
				color.Yellow("row %d: %s", ve.Index, msg)
			}
		}
		for _, de := range report.DuplicateErrors {
			color.Yellow("%s", de.Message)
		}
		if report.Blocked() {
			color.Red("Batch rejected, nothing written")
			os.Exit(1)
		}
		color.Green("Imported %d transactions", report.SuccessCount)
	case "purge":
		if argsLen < 3 {
			fmt.Println("Usage: purge <id>")
			return
		}
		id, err := uuid.Parse(os.Args[2])
		if err != nil {
			color.Red("Invalid id: %v", err)
			os.Exit(1)
		}
		if err := a.TransactionService.HardDelete(ctx, id); err != nil {
			color.Red("Failed to purge %s: %v", id, err)
			os.Exit(1)
		}
		color.Green("Purged %s", id)
	case "list":
		page, limit := 1, 20
		if argsLen > 2 {
			if v, err := strconv.Atoi(os.Args[2]); err == nil && v > 0 {
				page = v
			}
		}
		if argsLen > 3 {
			if v, err := strconv.Atoi(os.Args[3]); err == nil && v > 0 {
				limit = v
			}
		}
		result, err := a.TransactionService.List(ctx, page, limit, "")
		if err != nil {
			color.Red("Failed to list transactions: %v", err)
			os.Exit(1)
		}
		for _, tx := range result.Transactions {
			fmt.Printf("%s  %s  %-30s  %8.2f %s\n",
				tx.ID, tx.RawDate, tx.Description,
				float64(tx.AmountMinor)/100, tx.Currency)
		}
		color.Green("Page %d of %d total", page, result.TotalCount)
	default:
		fmt.Println("Unknown command:", cmd)
	}
}
