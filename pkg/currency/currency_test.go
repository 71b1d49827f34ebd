package currency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegistryDefaults(t *testing.T) {
	r := NewRegistry()

	for _, code := range []string{"USD", "EUR", "INR", "JPY", "XAU", "BTC"} {
		assert.True(t, r.IsSupported(code), code)
	}
	assert.False(t, r.IsSupported("ZZZ"))
	assert.False(t, r.IsSupported("usd"), "lookup is case-sensitive")

	assert.Equal(t, 0, r.Get("JPY").Decimals)
	assert.Equal(t, 8, r.Get("BTC").Decimals)
	assert.Equal(t, "₹", r.Get("INR").Symbol)
}

func TestRegistryGetUnknownCode(t *testing.T) {
	r := NewRegistry()
	meta := r.Get("ZZZ")
	assert.Equal(t, DefaultDecimals, meta.Decimals)
	assert.Equal(t, "ZZZ", meta.Symbol)
}

func TestRegistryRegisterUnregister(t *testing.T) {
	r := NewRegistry()

	r.Register("TST", Meta{Decimals: 4, Symbol: "T"})
	assert.True(t, r.IsSupported("TST"))
	assert.Equal(t, 4, r.Get("TST").Decimals)

	assert.True(t, r.Unregister("TST"))
	assert.False(t, r.IsSupported("TST"))
	assert.False(t, r.Unregister("TST"), "second removal reports absence")
}

func TestRegistryListSupportedSorted(t *testing.T) {
	r := NewRegistry()
	codes := r.ListSupported()
	assert.NotEmpty(t, codes)
	assert.IsIncreasing(t, codes)
}

func TestValidShape(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"USD", true},
		{"XAU", true},
		{"usd", false},
		{"US", false},
		{"USDX", false},
		{"U5D", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidShape(tt.code), tt.code)
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register("TST", Meta{Decimals: 2, Symbol: "T"})
		}()
		go func() {
			defer wg.Done()
			_ = r.IsSupported("TST")
			_ = r.ListSupported()
		}()
	}
	wg.Wait()
}
