package indicators

import (
	"fmt"
	"math"

	"github.com/marketlab/optioncore/models"
)

// TradingDaysPerYear annualizes daily volatility.
const TradingDaysPerYear = 252

// VolatilityResult carries trailing realized volatility.
type VolatilityResult struct {
	Daily      float64 `json:"daily_volatility"`
	Annualized float64 `json:"annualized_volatility"`
}

// Volatility computes the standard deviation of daily returns over the
// trailing window, annualized by sqrt(252). Needs period+1 prices for
// `period` returns.
func Volatility(prices []float64, period int) (*VolatilityResult, error) {
	if period <= 1 {
		return nil, fmt.Errorf("%w: volatility period must exceed 1, got %d", models.ErrInvalidInput, period)
	}
	if len(prices) < period+1 {
		return nil, fmt.Errorf("%w: volatility needs %d prices, have %d", models.ErrInsufficientData, period+1, len(prices))
	}

	returns := make([]float64, 0, period)
	for i := len(prices) - period; i < len(prices); i++ {
		if prices[i-1] <= 0 {
			return nil, fmt.Errorf("%w: non-positive price in window", models.ErrInvalidInput)
		}
		returns = append(returns, prices[i]/prices[i-1]-1)
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	daily := math.Sqrt(variance)
	return &VolatilityResult{
		Daily:      daily,
		Annualized: daily * math.Sqrt(TradingDaysPerYear),
	}, nil
}
