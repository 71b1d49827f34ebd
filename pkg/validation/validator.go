// Package validation checks one candidate ledger row at a time. Failures
// are data, not control flow: Validate returns the list of messages and
// never errors. Messages embed the offending value because they are
// surfaced to the caller verbatim, both for single submissions and per CSV
// row.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/skarim/finledger/pkg/currency"
	"github.com/skarim/finledger/pkg/domain"
	"github.com/skarim/finledger/pkg/ingest"
)

var (
	datePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// disallowedDescriptionRunes are characters that indicate encoding
// corruption or copy-paste artifacts from spreadsheet tools.
var disallowedDescriptionRunes = map[rune]string{
	' ': "non-breaking space",
	'​': "zero-width space",
	'‌': "zero-width non-joiner",
	'‍': "zero-width joiner",
	'\uFEFF': "byte order mark",
	'‘': "smart quote",
	'’': "smart quote",
	'“': "smart quote",
	'”': "smart quote",
	'–': "en dash",
	'—': "em dash",
	'−': "minus sign",
	'¨': "diaeresis",
	'�': "replacement character",
	'∗': "asterisk operator",
}

// minYear is the oldest accepted transaction year.
const minYear = 1900

// maxAmount bounds the main-unit amount so the minor-unit (cents) form
// stays inside int64. Anything at or past it cannot be stored.
const maxAmount = float64(math.MaxInt64) / 100

// Validator validates candidate rows against the ledger's field rules.
// The zero value is not usable; construct with New.
type Validator struct {
	registry *currency.Registry
	now      func() time.Time
}

// New creates a Validator backed by the given supported-currency registry.
func New(registry *currency.Registry) *Validator {
	return &Validator{registry: registry, now: time.Now}
}

// NewWithClock creates a Validator with a fixed clock, for tests.
func NewWithClock(registry *currency.Registry, now func() time.Time) *Validator {
	return &Validator{registry: registry, now: now}
}

// Validate applies every field rule to the row and returns the collected
// messages; an empty slice means the row is valid.
//
// If any required field is absent the single combined missing-fields
// message is returned alone and no further rules run. Once the date regex
// passes, every date sub-rule is checked independently.
func (v *Validator) Validate(r ingest.Row) []string {
	if msg := missingFields(r); msg != "" {
		return []string{msg}
	}

	var errs []string

	if r.ID != "" && !uuidPattern.MatchString(r.ID) {
		errs = append(errs, fmt.Sprintf("Invalid 'Id': %s. Must be a valid UUID.", r.ID))
	}

	errs = append(errs, v.validateDate(r.Date)...)

	if math.IsNaN(r.Amount) || r.Amount <= 0 {
		errs = append(errs, fmt.Sprintf("Invalid 'Amount': %s. Must be a positive number.", r.AmountRaw))
	} else if r.Amount >= maxAmount {
		// Catches +Inf too, which ParseFloat accepts from "inf".
		errs = append(errs, fmt.Sprintf("Invalid 'Amount': %s. Exceeds the maximum supported amount.", r.AmountRaw))
	}

	errs = append(errs, validateDescription(r.Description)...)
	errs = append(errs, v.validateCurrency(r.Currency)...)

	return errs
}

// missingFields returns the combined missing-required-fields message, or
// "" when all required fields are present. An amount of exactly zero
// counts as absent, matching spreadsheet-style falsiness.
func missingFields(r ingest.Row) string {
	var missing []string
	if r.Date == "" {
		missing = append(missing, "date")
	}
	if r.Description == "" {
		missing = append(missing, "description")
	}
	if r.AmountRaw == "" || r.Amount == 0 {
		missing = append(missing, "amount")
	}
	if r.Currency == "" {
		missing = append(missing, "currency")
	}
	if len(missing) == 0 {
		return ""
	}
	return fmt.Sprintf("Missing required fields: %s.", strings.Join(missing, ", "))
}

func (v *Validator) validateDate(date string) []string {
	if !datePattern.MatchString(date) {
		return []string{fmt.Sprintf("Invalid 'Date' format: %s. Expected format: dd-mm-yyyy.", date)}
	}

	var errs []string
	day, _ := strconv.Atoi(date[0:2])
	month, _ := strconv.Atoi(date[3:5])
	year, _ := strconv.Atoi(date[6:10])

	currentYear := v.now().Year()
	if year < minYear || year > currentYear {
		errs = append(errs, fmt.Sprintf(
			"Invalid 'Date': year %d must be between %d and %d.", year, minYear, currentYear))
	}
	if month < 1 || month > 12 {
		errs = append(errs, fmt.Sprintf("Invalid 'Date': month %d must be between 1 and 12.", month))
	}

	maxDay := 31
	if month >= 1 && month <= 12 {
		maxDay = daysInMonth(month, year)
	}
	if day < 1 || day > maxDay {
		errs = append(errs, fmt.Sprintf(
			"Invalid 'Date': day %d must be between 1 and %d.", day, maxDay))
	}

	if len(errs) == 0 {
		parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		now := v.now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if parsed.After(today) {
			errs = append(errs, fmt.Sprintf("Invalid 'Date': %s is in the future.", date))
		}
	}
	return errs
}

func validateDescription(description string) []string {
	var errs []string
	if len([]rune(description)) > domain.MaxDescriptionLen {
		errs = append(errs, fmt.Sprintf(
			"Invalid 'Description': exceeds %d characters.", domain.MaxDescriptionLen))
	}
	for _, r := range description {
		if name, bad := disallowedDescriptionRunes[r]; bad {
			errs = append(errs, fmt.Sprintf(
				"Invalid 'Description': contains disallowed character %q (%s).", r, name))
			break
		}
	}
	return errs
}

func (v *Validator) validateCurrency(code string) []string {
	if !currency.ValidShape(code) {
		return []string{fmt.Sprintf("Invalid 'Currency': %s. Must be a 3-letter ISO code.", code)}
	}
	if !v.registry.IsSupported(code) {
		return []string{fmt.Sprintf("Unsupported 'Currency': %s.", code)}
	}
	return nil
}

// daysInMonth is leap-year aware.
func daysInMonth(month, year int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
