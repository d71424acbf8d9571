package indicators

import (
	"fmt"
	"math"

	"github.com/marketlab/optioncore/models"
)

// ATRResult carries the Average True Range reading.
type ATRResult struct {
	ATR        float64 `json:"atr"`
	ATRPercent float64 `json:"atr_percent"` // ATR as % of the last close
}

// ATR calculates the Average True Range over the trailing period.
// Needs period+1 bars: the first True Range uses the previous close.
func ATR(candles []models.Candle, period int) (*ATRResult, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: ATR period must be positive, got %d", models.ErrInvalidInput, period)
	}
	if len(candles) < period+1 {
		return nil, fmt.Errorf("%w: ATR needs %d bars, have %d", models.ErrInsufficientData, period+1, len(candles))
	}

	var trueRanges []float64

	// True Range is the greatest of:
	// 1. Current High - Current Low
	// 2. Abs(Current High - Previous Close)
	// 3. Abs(Current Low - Previous Close)
	for i := 1; i < len(candles); i++ {
		highLow := candles[i].High - candles[i].Low
		highPrevClose := math.Abs(candles[i].High - candles[i-1].Close)
		lowPrevClose := math.Abs(candles[i].Low - candles[i-1].Close)

		trueRange := math.Max(highLow, math.Max(highPrevClose, lowPrevClose))
		trueRanges = append(trueRanges, trueRange)
	}

	// Average of the last `period` true ranges
	var sum float64
	for i := len(trueRanges) - period; i < len(trueRanges); i++ {
		sum += trueRanges[i]
	}
	atr := sum / float64(period)

	lastClose := candles[len(candles)-1].Close
	return &ATRResult{
		ATR:        atr,
		ATRPercent: 100 * atr / lastClose,
	}, nil
}
