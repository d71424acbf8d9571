package scoring

import (
	"fmt"
	"math"

	"github.com/marketlab/optioncore/internal/indicators"
	"github.com/marketlab/optioncore/models"
)

// TrendAlignment scores how well the moving-average stack agrees with
// the strategy's directional bias, 0-100. Each window with enough
// history contributes equally; a bullish strategy wants price above
// its averages, a bearish one below.
func TrendAlignment(mas []indicators.MovingAverage, strategy models.Strategy) (float64, error) {
	available, aligned := 0, 0
	for _, ma := range mas {
		if ma.Insufficient {
			continue
		}
		available++
		if ma.Above == strategy.Bullish() {
			aligned++
		}
	}
	if available == 0 {
		return 0, fmt.Errorf("%w: no moving-average window has enough history", models.ErrInsufficientData)
	}
	return 100 * float64(aligned) / float64(available), nil
}

// ProbabilityOfProfit estimates the chance the position expires
// profitable, 0-100. With a delta on the quote this is the standard
// delta approximation: premium sellers win when the option expires
// worthless (1-|delta|), buyers need the move (|delta| as an ITM
// proxy). Without Greeks it falls back to strike distance in ATRs.
func ProbabilityOfProfit(strategy models.Strategy, quote *models.OptionQuote, currentPrice, atr float64) (float64, error) {
	if quote == nil {
		return 0, fmt.Errorf("%w: option quote required for probability estimate", models.ErrInvalidInput)
	}

	if quote.Delta != nil {
		absDelta := math.Abs(*quote.Delta)
		if absDelta > 1 {
			return 0, fmt.Errorf("%w: delta %.4f outside [-1,1]", models.ErrInvalidInput, *quote.Delta)
		}
		if strategy.Credit() {
			return 100 * (1 - absDelta), nil
		}
		return 100 * absDelta, nil
	}

	if atr <= 0 {
		return 0, fmt.Errorf("%w: ATR required for strike-distance probability", models.ErrInvalidInput)
	}
	if quote.Strike <= 0 || currentPrice <= 0 {
		return 0, fmt.Errorf("%w: price and strike must be positive", models.ErrInvalidInput)
	}

	// Each ATR of out-of-the-money distance shifts the odds ~12 points
	// from the even-money baseline, capped inside (5, 95).
	distance := math.Abs(currentPrice-quote.Strike) / atr
	if strategy.Credit() {
		return math.Min(95, 50+12*distance), nil
	}
	return math.Max(5, 50-12*distance), nil
}

// VRPAlignment scores the volatility-risk-premium read against the
// strategy side: premium sellers want implied rich, buyers want it
// cheap, neutral splits the difference.
func VRPAlignment(recommendation models.Recommendation, strategy models.Strategy) float64 {
	wanted := models.RecommendBuy
	if strategy.Credit() {
		wanted = models.RecommendSell
	}
	switch recommendation {
	case wanted:
		return 100
	case models.RecommendNeutral:
		return 50
	}
	return 0
}
