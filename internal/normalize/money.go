package normalize

import "math"

// DollarsToCents converts a float64 dollar amount to int64 cents.
// Uses math.Round to avoid truncation bias.
func DollarsToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// CentsToDollars converts int64 cents back to a float64 dollar amount.
func CentsToDollars(c int64) float64 {
	return float64(c) / 100
}
