package indicators

import (
	"fmt"
	"math"

	"github.com/marketlab/optioncore/models"
)

// SafetyMarginResult measures how far a strike sits from the current
// price in units of the required ATR buffer.
type SafetyMarginResult struct {
	SafetyRatio    float64 `json:"safety_ratio"`
	RequiredBuffer float64 `json:"required_buffer"`
	Score          float64 `json:"score"`
	Safe           bool    `json:"is_safe"`
}

// safetySegment is one piece of the score curve. The curve is linear
// within each segment: score = base + slope*(ratio-from). Segments are
// sorted by `from` and meet at the breakpoints, so the curve is
// continuous.
type safetySegment struct {
	from  float64
	base  float64
	slope float64
}

var safetyCurve = []safetySegment{
	{from: 0.0, base: 0, slope: 80},  // [0, 0.5): 80*ratio
	{from: 0.5, base: 40, slope: 60}, // [0.5, 1.0): 40 + 60*(r-0.5)
	{from: 1.0, base: 70, slope: 40}, // [1.0, 1.5): 70 + 40*(r-1.0)
	{from: 1.5, base: 90, slope: 20}, // [1.5, 2.0): 90 + 20*(r-1.5)
	{from: 2.0, base: 100, slope: 0}, // [2.0, inf): flat 100
}

func safetyScore(ratio float64) float64 {
	seg := safetyCurve[0]
	for _, s := range safetyCurve[1:] {
		if ratio < s.from {
			break
		}
		seg = s
	}
	return seg.base + seg.slope*(ratio-seg.from)
}

// ATRSafetyMargin scores the distance between current price and strike
// against a required buffer of atrRatio ATRs, then adjusts for how many
// raw ATRs the distance covers. Score is clamped to [0,100].
func ATRSafetyMargin(currentPrice, strike, atr, atrRatio float64) (*SafetyMarginResult, error) {
	if atr <= 0 {
		return nil, fmt.Errorf("%w: ATR must be positive, got %.4f", models.ErrInvalidInput, atr)
	}
	if currentPrice <= 0 || strike <= 0 {
		return nil, fmt.Errorf("%w: price and strike must be positive", models.ErrInvalidInput)
	}
	if atrRatio <= 0 {
		atrRatio = 2.0
	}

	buffer := math.Abs(currentPrice - strike)
	required := atr * atrRatio
	ratio := buffer / required

	score := safetyScore(ratio)

	// Bonus for raw ATR-multiple distance, penalty inside one ATR.
	multiples := buffer / atr
	switch {
	case multiples >= 3:
		score += 10
	case multiples >= 2:
		score += 5
	case multiples < 1:
		score -= 10
	}
	score = math.Max(0, math.Min(100, score))

	return &SafetyMarginResult{
		SafetyRatio:    ratio,
		RequiredBuffer: required,
		Score:          score,
		Safe:           ratio >= 1.0,
	}, nil
}
