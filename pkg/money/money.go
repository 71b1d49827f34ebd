// Package money provides fixed-point arithmetic for monetary amounts.
//
// Amounts are stored as integers in the smallest currency unit (cents),
// avoiding floating drift. Conversion between the submitted float amount
// and the stored minor units goes through big.Rat with round-half-away
// rounding.
package money

import (
	"fmt"
	"math"
	"math/big"
)

var (
	// ErrInvalidAmount is returned when an invalid amount is provided.
	ErrInvalidAmount = fmt.Errorf("invalid amount float")

	// ErrAmountExceedsMaxSafeInt is returned when an amount exceeds the
	// maximum safe integer value.
	ErrAmountExceedsMaxSafeInt = fmt.Errorf("amount exceeds maximum safe integer value")
)

// Amount represents a monetary amount as an integer in the smallest
// currency unit.
type Amount = int64

// minorDecimals is the fixed-point scale of the ledger: amounts are stored
// multiplied by 100.
const minorDecimals = 2

// ToMinor converts a main-unit float amount to minor units (cents),
// rounded to the nearest integer.
func ToMinor(amount float64) (Amount, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}

	factor := new(big.Rat).SetFloat64(math.Pow10(minorDecimals))
	amountRat := new(big.Rat).SetFloat64(amount)
	result := new(big.Rat).Mul(amountRat, factor)

	resultFloat, _ := result.Float64()
	if resultFloat > float64(math.MaxInt64) || resultFloat < float64(math.MinInt64) {
		return 0, ErrAmountExceedsMaxSafeInt
	}
	return Amount(math.Round(resultFloat)), nil
}

// FromMinor converts minor units back to a main-unit float amount.
func FromMinor(amount Amount) float64 {
	amountRat := new(big.Rat).SetInt64(int64(amount))
	divisor := new(big.Rat).SetFloat64(math.Pow10(minorDecimals))
	result := new(big.Rat).Quo(amountRat, divisor)

	floatResult, _ := result.Float64()
	return floatResult
}

// Multiply multiplies a minor-unit amount by a scalar rate, rounded to the
// nearest integer. Used for reference-currency conversion.
func Multiply(amount Amount, rate float64) (Amount, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return 0, fmt.Errorf("invalid rate: %v", rate)
	}

	amountRat := new(big.Rat).SetInt64(int64(amount))
	rateRat := new(big.Rat).SetFloat64(rate)
	result := new(big.Rat).Mul(amountRat, rateRat)

	resultFloat, _ := result.Float64()
	if resultFloat > float64(math.MaxInt64) || resultFloat < float64(math.MinInt64) {
		return 0, fmt.Errorf("multiplication result would overflow")
	}
	return Amount(math.Round(resultFloat)), nil
}
