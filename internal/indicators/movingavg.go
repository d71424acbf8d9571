package indicators

import (
	"fmt"

	"github.com/marketlab/optioncore/models"
)

// MovingAverage is one SMA window's reading. Windows without enough
// history report Insufficient=true instead of failing the whole call.
type MovingAverage struct {
	Period        int     `json:"period"`
	SMA           float64 `json:"sma,omitempty"`
	OffsetPercent float64 `json:"offset_percent,omitempty"` // current price vs SMA
	Above         bool    `json:"above,omitempty"`
	Insufficient  bool    `json:"insufficient_data,omitempty"`
}

// MovingAverages computes the SMA for each requested window. This is a
// partial-result calculation: short history marks the window, it never
// fails the call. The only error is an empty price series.
func MovingAverages(prices []float64, periods []int) ([]MovingAverage, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: empty price series", models.ErrInvalidInput)
	}

	current := prices[len(prices)-1]
	out := make([]MovingAverage, 0, len(periods))
	for _, period := range periods {
		if period <= 0 || len(prices) < period {
			out = append(out, MovingAverage{Period: period, Insufficient: true})
			continue
		}

		var sum float64
		for i := len(prices) - period; i < len(prices); i++ {
			sum += prices[i]
		}
		sma := sum / float64(period)

		out = append(out, MovingAverage{
			Period:        period,
			SMA:           sma,
			OffsetPercent: 100 * (current - sma) / sma,
			Above:         current > sma,
		})
	}
	return out, nil
}
