package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedCSV wraps parse failures that invalidate the whole upload.
var ErrMalformedCSV = errors.New("malformed CSV")

// ErrMissingHeaders is returned when the header row lacks required columns.
var ErrMissingHeaders = errors.New("missing required CSV headers")

// requiredHeaders are the columns every upload must carry. Header matching
// is case-insensitive and whitespace-trimmed.
var requiredHeaders = []string{"date", "description", "amount", "currency"}

// Parse decodes raw CSV bytes into ordered rows, using the first record as
// the header. Header names are lowercased and trimmed, and a UTF-8 BOM on
// the first header cell is stripped. Values are trimmed; the amount column
// is additionally coerced to a number.
func Parse(data []byte) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedCSV)
	}

	header := normalizeHeader(records[0])
	if missing := missingHeaders(header); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingHeaders, strings.Join(missing, ", "))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		amountRaw := field("amount")
		row := Row{
			ID:          field("id"),
			Date:        field("date"),
			Description: field("description"),
			AmountRaw:   amountRaw,
			Amount:      coerceAmount(amountRaw),
			Currency:    field("currency"),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func normalizeHeader(record []string) []string {
	header := make([]string, len(record))
	for i, cell := range record {
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\uFEFF")
		}
		header[i] = strings.ToLower(strings.TrimSpace(cell))
	}
	return header
}

func missingHeaders(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	var missing []string
	for _, name := range requiredHeaders {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// coerceAmount mirrors spreadsheet-style numeric coercion: an empty cell is
// zero, an unparseable cell is NaN. The validator turns both into the
// appropriate per-row message.
func coerceAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return amount
}
