package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// PaiseToRupees converts an integer paise amount to a decimal rupee amount.
func PaiseToRupees(paise int64) decimal.Decimal {
	return decimal.New(paise, -2)
}

// RupeesToPaise converts a decimal rupee amount to integer paise, rounding
// half away from zero at sub-paise precision.
func RupeesToPaise(rupees decimal.Decimal) int64 {
	return rupees.Shift(2).Round(0).IntPart()
}

// PaiseToWholeRupees converts paise to whole rupees, rounding to nearest.
func PaiseToWholeRupees(paise int64) int64 {
	return int64(math.Round(float64(paise) / 100))
}

// FormatRupees renders a decimal rupee amount with paise precision.
// Example: 12.3456 returns "12.35".
func FormatRupees(amount decimal.Decimal) string {
	return amount.Round(2).String()
}
