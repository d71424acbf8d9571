package indicators

import (
	"fmt"
	"math"

	"github.com/marketlab/optioncore/models"
)

// LiquidityResult breaks a contract's liquidity score into its parts.
type LiquidityResult struct {
	Score         float64 `json:"score"`
	VolumeScore   float64 `json:"volume_score"`   // up to 50
	OIScore       float64 `json:"oi_score"`       // up to 30
	SpreadScore   float64 `json:"spread_score"`   // up to 20
	SpreadPercent float64 `json:"spread_percent"` // of the midpoint
}

// spreadLadder maps spread% thresholds to scores, first match wins.
// Past the last rung the score decays linearly toward zero.
var spreadLadder = []struct {
	maxSpreadPct float64
	score        float64
}{
	{5, 20},
	{10, 15},
	{20, 10},
}

// LiquidityScore rates a contract's tradability from volume, open
// interest, and the bid-ask spread. Range [0,100].
func LiquidityScore(volume, openInterest int64, bid, ask float64) (*LiquidityResult, error) {
	if bid <= 0 || ask <= 0 {
		return nil, fmt.Errorf("%w: bid and ask must be positive, got %.2f/%.2f", models.ErrInvalidInput, bid, ask)
	}
	if bid > ask {
		return nil, fmt.Errorf("%w: bid %.2f above ask %.2f", models.ErrInvalidInput, bid, ask)
	}
	if volume < 0 || openInterest < 0 {
		return nil, fmt.Errorf("%w: volume and open interest must be non-negative", models.ErrInvalidInput)
	}

	mid := (bid + ask) / 2
	spreadPct := (ask - bid) / mid * 100

	volumeScore := math.Min(50, float64(volume)/10)
	oiScore := math.Min(30, float64(openInterest)/50)

	spreadScore := math.Max(0, 10-(spreadPct-20)/2)
	for _, rung := range spreadLadder {
		if spreadPct <= rung.maxSpreadPct {
			spreadScore = rung.score
			break
		}
	}

	return &LiquidityResult{
		Score:         volumeScore + oiScore + spreadScore,
		VolumeScore:   volumeScore,
		OIScore:       oiScore,
		SpreadScore:   spreadScore,
		SpreadPercent: spreadPct,
	}, nil
}
