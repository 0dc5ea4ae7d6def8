package utils

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Round2 rounds a value to 2 decimal places
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite reports whether the value is neither infinite nor NaN
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// FormatCurrency renders an amount as USD, e.g. -$1,234.56
func FormatCurrency(amount float64) string {
	if !IsFinite(amount) {
		return nonFinite(amount)
	}
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + group(d.StringFixed(2))
}

// FormatPercentage renders a fraction as a percentage, e.g. 0.15 -> 15.00%
func FormatPercentage(fraction float64) string {
	if !IsFinite(fraction) {
		return nonFinite(fraction)
	}
	d := decimal.NewFromFloat(fraction).Mul(decimal.NewFromInt(100)).Round(2)
	return group(d.StringFixed(2)) + "%"
}

// group inserts thousands separators into the integer part of a fixed-point string.
func group(fixed string) string {
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, frac, _ := strings.Cut(fixed, ".")
	whole, err := decimal.NewFromString(intPart)
	if err != nil {
		return fixed
	}
	out := humanize.Comma(whole.IntPart())
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

func nonFinite(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case value > 0:
		return "∞"
	default:
		return "-∞"
	}
}
