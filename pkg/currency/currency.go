// Package currency maintains the supported-currency allowlist and
// per-currency metadata. A code that passes the ISO 4217 shape check is
// still rejected unless it is registered here.
package currency

import (
	"regexp"
	"sort"
	"sync"
)

const (
	// DefaultDecimals is the default number of decimal places for currencies.
	DefaultDecimals = 2
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

// Registry is the supported-currency allowlist.
type Registry struct {
	mu         sync.RWMutex
	currencies map[string]Meta
}

// NewRegistry creates a registry preloaded with the supported currencies:
// the major ISO codes plus the precious-metal and crypto pseudo-codes.
func NewRegistry() *Registry {
	r := &Registry{currencies: make(map[string]Meta)}

	defaults := map[string]Meta{
		"USD": {Decimals: 2, Symbol: "$"},
		"EUR": {Decimals: 2, Symbol: "€"},
		"GBP": {Decimals: 2, Symbol: "£"},
		"JPY": {Decimals: 0, Symbol: "¥"},
		"CHF": {Decimals: 2, Symbol: "CHF"},
		"CAD": {Decimals: 2, Symbol: "C$"},
		"AUD": {Decimals: 2, Symbol: "A$"},
		"NZD": {Decimals: 2, Symbol: "NZ$"},
		"CNY": {Decimals: 2, Symbol: "¥"},
		"INR": {Decimals: 2, Symbol: "₹"},
		"KWD": {Decimals: 3, Symbol: "د.ك"},
		"EGP": {Decimals: 2, Symbol: "£"},
		"SEK": {Decimals: 2, Symbol: "kr"},
		"NOK": {Decimals: 2, Symbol: "kr"},
		"DKK": {Decimals: 2, Symbol: "kr"},
		"SGD": {Decimals: 2, Symbol: "S$"},
		"HKD": {Decimals: 2, Symbol: "HK$"},
		"ZAR": {Decimals: 2, Symbol: "R"},
		"AED": {Decimals: 2, Symbol: "د.إ"},
		"SAR": {Decimals: 2, Symbol: "﷼"},
		"BRL": {Decimals: 2, Symbol: "R$"},
		"MXN": {Decimals: 2, Symbol: "$"},
		"TRY": {Decimals: 2, Symbol: "₺"},
		"KRW": {Decimals: 0, Symbol: "₩"},
		"THB": {Decimals: 2, Symbol: "฿"},
		"PLN": {Decimals: 2, Symbol: "zł"},
		// Precious metals (troy ounce pseudo-codes)
		"XAU": {Decimals: 2, Symbol: "XAU"},
		"XAG": {Decimals: 2, Symbol: "XAG"},
		"XPT": {Decimals: 2, Symbol: "XPT"},
		"XPD": {Decimals: 2, Symbol: "XPD"},
		// Crypto pseudo-codes
		"BTC": {Decimals: 8, Symbol: "₿"},
		"ETH": {Decimals: 8, Symbol: "Ξ"},
	}
	for code, meta := range defaults {
		r.Register(code, meta)
	}
	return r
}

// Register adds or updates a currency in the registry.
func (r *Registry) Register(code string, meta Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[code] = meta
}

// Get returns currency metadata for the given code. Unknown codes get the
// default decimals and the code itself as symbol.
func (r *Registry) Get(code string) Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if meta, ok := r.currencies[code]; ok {
		return meta
	}
	return Meta{Decimals: DefaultDecimals, Symbol: code}
}

// IsSupported checks if a currency code is registered.
func (r *Registry) IsSupported(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.currencies[code]
	return ok
}

// ListSupported returns all registered currency codes, sorted.
func (r *Registry) ListSupported() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.currencies))
	for code := range r.currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Unregister removes a currency from the registry.
func (r *Registry) Unregister(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.currencies[code]; !ok {
		return false
	}
	delete(r.currencies, code)
	return true
}

// ValidShape reports whether the code matches the 3-letter uppercase
// ISO 4217 shape, independent of allowlist membership.
func ValidShape(code string) bool {
	return codePattern.MatchString(code)
}
