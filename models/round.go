package models

import "github.com/shopspring/decimal"

// Rounding helpers for the output envelope. Internal math keeps full
// precision; only presented fields pass through these.

// Round2 rounds half-up to 2 decimal places (prices, percentages).
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Round4 rounds half-up to 4 decimal places (volatility fractions).
func Round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}
