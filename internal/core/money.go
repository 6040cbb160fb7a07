// Package core provides money parsing and handling utilities.
//
// Amounts are exact base-10 decimals. Binary floating point never touches
// a stored or summed amount.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user text into a positive exact decimal.
//
// Surrounding whitespace is ignored. Malformed text, zero and negative values
// are all reported as ErrInvalidAmount so that callers never see the
// underlying parse error. Amounts with more than maxIntegerDigits integer
// digits or maxFractionDigits fractional digits are rejected the same way,
// whether written out or in exponent notation.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount(" 0.10 ") -> 0.1, nil
//	ParseAmount("0")      -> ErrInvalidAmount
//	ParseAmount("-5")     -> ErrInvalidAmount
//	ParseAmount("abc")    -> ErrInvalidAmount
//	ParseAmount("1e30")   -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	if !withinBounds(d) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

const (
	// maxIntegerDigits caps the digits left of the decimal point.
	maxIntegerDigits = 15
	// maxFractionDigits caps the digits right of the decimal point.
	maxFractionDigits = 8
)

// withinBounds checks the decimal's shape without expanding it.
func withinBounds(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxFractionDigits || exp > maxIntegerDigits {
		return false
	}
	intDigits := int64(len(d.Coefficient().String())) + exp
	return intDigits <= maxIntegerDigits
}

// FormatAmount renders an amount with two fractional digits for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Sum adds amounts exactly; an empty input sums to zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
