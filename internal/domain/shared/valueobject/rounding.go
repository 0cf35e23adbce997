package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary rounding primitives shared by the amount calculator and the
// document builder. All rounding is half-away-from-zero applied to the
// absolute value, so round(-x, n) == -round(x, n).

// RoundToPrecision rounds d to the given number of decimal places.
// Negative values are rounded on their absolute value to keep the
// result symmetric around zero.
func RoundToPrecision(d decimal.Decimal, precision int32) decimal.Decimal {
	if d.IsNegative() {
		return d.Neg().Round(precision).Neg()
	}
	return d.Round(precision)
}

// RoundToTwo rounds to two decimal places, the precision used for all
// displayed monetary amounts.
func RoundToTwo(d decimal.Decimal) decimal.Decimal {
	return RoundToPrecision(d, 2)
}

// RoundToFour rounds to four decimal places.
func RoundToFour(d decimal.Decimal) decimal.Decimal {
	return RoundToPrecision(d, 4)
}

// Precision returns the smallest precision in {2, 3, 4} that reproduces
// d exactly, capped at four decimal places. Line totals are rounded with
// this so that unit prices like 0.015 are not flattened to two decimals.
func Precision(d decimal.Decimal) int32 {
	if !RoundToPrecision(d, 3).Equal(d) {
		return 4
	}
	if !RoundToPrecision(d, 2).Equal(d) {
		return 3
	}
	return 2
}

// RoundSignificant rounds d to its significant precision (see Precision).
func RoundSignificant(d decimal.Decimal) decimal.Decimal {
	return RoundToPrecision(d, Precision(d))
}

// ParseDecimal is a permissive numeric parse: empty strings, lone
// currency noise and unparseable input all yield zero rather than an
// error. Monetary fields arrive from loosely typed JSON payloads.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
