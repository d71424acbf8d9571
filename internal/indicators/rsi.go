package indicators

import (
	"fmt"

	"github.com/marketlab/optioncore/models"
)

// RSI signal labels.
const (
	SignalOverbought = "overbought"
	SignalOversold   = "oversold"
	SignalNeutral    = "neutral"
)

// RSIResult carries the oscillator value and its signal.
type RSIResult struct {
	RSI    float64 `json:"rsi"`
	Signal string  `json:"signal"`
}

// RSI calculates the Relative Strength Index from average gain and
// average loss over the last `period` price deltas. RSI is 100 when
// the window has no losses.
func RSI(prices []float64, period int) (*RSIResult, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: RSI period must be positive, got %d", models.ErrInvalidInput, period)
	}
	if len(prices) < period+1 {
		return nil, fmt.Errorf("%w: RSI needs %d prices, have %d", models.ErrInsufficientData, period+1, len(prices))
	}

	var gains, losses float64
	for i := len(prices) - period; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	rsi := 100.0
	if avgLoss > 0 {
		rs := avgGain / avgLoss
		rsi = 100.0 - (100.0 / (1.0 + rs))
	}

	signal := SignalNeutral
	if rsi >= 70 {
		signal = SignalOverbought
	} else if rsi <= 30 {
		signal = SignalOversold
	}

	return &RSIResult{RSI: rsi, Signal: signal}, nil
}
