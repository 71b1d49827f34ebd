// Package currency loads the supported-currency allowlist metadata from
// an embedded CSV fixture, so the set can be amended without touching
// registry code.
package currency

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/skarim/finledger/pkg/currency"
)

//go:embed meta.csv
var metaCSV string

// Entry is one allowlist row: a code plus its registry metadata.
type Entry struct {
	Code string
	Name string
	Meta currency.Meta
}

// LoadCurrencyMetaCSV loads currency metadata from a CSV file, or from
// the embedded fixture when path is empty.
func LoadCurrencyMetaCSV(path string) ([]Entry, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	} else {
		r = strings.NewReader(metaCSV)
	}

	return parseCurrencyMetaCSV(r)
}

func parseCurrencyMetaCSV(r io.Reader) ([]Entry, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}

	const expectedColumns = 4
	var entries []Entry
	for i, rec := range records {
		if i == 0 {
			if len(rec) < expectedColumns {
				return nil, fmt.Errorf(
					"invalid CSV format: expected at least %d columns, got %d",
					expectedColumns, len(rec))
			}
			continue // skip header
		}

		// Skip malformed rows
		if len(rec) < expectedColumns {
			continue
		}

		code := strings.TrimSpace(rec[0])
		if !currency.ValidShape(code) {
			continue
		}
		decimals, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			decimals = currency.DefaultDecimals
		}

		entries = append(entries, Entry{
			Code: code,
			Name: strings.TrimSpace(rec[1]),
			Meta: currency.Meta{
				Decimals: decimals,
				Symbol:   strings.TrimSpace(rec[2]),
			},
		})
	}
	return entries, nil
}
