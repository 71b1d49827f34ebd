package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinor(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    Amount
		wantErr error
	}{
		{name: "whole amount", amount: 100, want: 10000},
		{name: "two decimals", amount: 12.5, want: 1250},
		{name: "rounds half up", amount: 0.005, want: 1},
		{name: "fractional cent truncated by rounding", amount: 10.004, want: 1000},
		{name: "negative amount", amount: -42.42, want: -4242},
		{name: "zero", amount: 0, want: 0},
		{name: "NaN rejected", amount: math.NaN(), wantErr: ErrInvalidAmount},
		{name: "infinity rejected", amount: math.Inf(1), wantErr: ErrInvalidAmount},
		{name: "overflow rejected", amount: math.MaxFloat64, wantErr: ErrAmountExceedsMaxSafeInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinor(tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromMinor(t *testing.T) {
	assert.InDelta(t, 12.5, FromMinor(1250), 1e-9)
	assert.InDelta(t, -0.01, FromMinor(-1), 1e-9)
	assert.Zero(t, FromMinor(0))
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		name    string
		amount  Amount
		rate    float64
		want    Amount
		wantErr bool
	}{
		{name: "integral rate", amount: 1250, rate: 80, want: 100000},
		{name: "fractional rate rounds", amount: 999, rate: 1.005, want: 1004},
		{name: "identity rate", amount: 1234, rate: 1, want: 1234},
		{name: "zero rate", amount: 1234, rate: 0, want: 0},
		{name: "negative rate rejected", amount: 100, rate: -1, wantErr: true},
		{name: "NaN rate rejected", amount: 100, rate: math.NaN(), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Multiply(tt.amount, tt.rate)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMinorFromMinorRoundTrip(t *testing.T) {
	for _, amount := range []float64{0.01, 1, 19.99, 123456.78} {
		minor, err := ToMinor(amount)
		require.NoError(t, err)
		assert.InDelta(t, amount, FromMinor(minor), 1e-9)
	}
}
