package volatility

import (
	"fmt"
	"math"

	"github.com/marketlab/optioncore/models"
)

// Forecast methods.
const (
	MethodEWMA   = "ewma"
	MethodStdDev = "stddev"
)

// Forecasts outside this bound signal a data or parameterization
// defect, not a valid reading.
const maxSaneVolatility = 2.0

// minForecastBars is the floor on history for any forecast method.
const minForecastBars = 30

// ForecastOptions tunes the realized-volatility forecast.
type ForecastOptions struct {
	Method  string  // "ewma" (default) or "stddev"
	Lambda  float64 // EWMA decay factor, default 0.94
	MinBars int     // history floor, default 30
}

// ForecastRealized produces an annualized realized-volatility forecast
// from a close-price history. The EWMA method weights recent squared
// returns more heavily than older ones, which makes it forward-looking
// compared to the plain trailing standard deviation.
func ForecastRealized(prices []float64, opts ForecastOptions) (*models.VolatilityEstimate, error) {
	method := opts.Method
	if method == "" {
		method = MethodEWMA
	}
	lambda := opts.Lambda
	if lambda <= 0 || lambda >= 1 {
		lambda = 0.94
	}
	minBars := opts.MinBars
	if minBars <= 0 {
		minBars = minForecastBars
	}

	if len(prices) < minBars {
		return nil, fmt.Errorf("%w: forecast needs %d prices, have %d", models.ErrInsufficientData, minBars, len(prices))
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 || prices[i] <= 0 {
			return nil, fmt.Errorf("%w: non-positive price in history", models.ErrInvalidInput)
		}
		returns = append(returns, prices[i]/prices[i-1]-1)
	}

	var daily float64
	switch method {
	case MethodEWMA:
		daily = ewmaVolatility(returns, lambda)
	case MethodStdDev:
		daily = stddevVolatility(returns)
	default:
		return nil, fmt.Errorf("%w: unknown forecast method %q", models.ErrInvalidInput, method)
	}

	annualized := daily * math.Sqrt(252)
	if annualized <= 0 || annualized >= maxSaneVolatility || math.IsNaN(annualized) {
		return nil, fmt.Errorf("%w: forecast %.4f outside (0, %.1f)", models.ErrComputationDefect, annualized, maxSaneVolatility)
	}

	return &models.VolatilityEstimate{
		Daily:      daily,
		Annualized: annualized,
		Method:     method,
	}, nil
}

// ewmaVolatility runs the RiskMetrics recursion oldest-first so the
// newest squared return carries the heaviest weight.
func ewmaVolatility(returns []float64, lambda float64) float64 {
	variance := returns[0] * returns[0]
	for _, r := range returns[1:] {
		variance = lambda*variance + (1-lambda)*r*r
	}
	return math.Sqrt(variance)
}

func stddevVolatility(returns []float64) float64 {
	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	return math.Sqrt(variance / float64(len(returns)))
}
