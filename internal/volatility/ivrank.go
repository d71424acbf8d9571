package volatility

import (
	"fmt"

	"github.com/marketlab/optioncore/models"
)

// IVRank places currentIV within the historical IV distribution as a
// 0-100 percentile. Tie policy "le-stable": rank is the count of
// history values strictly below current over len-1, so a value equal
// to the history minimum ranks 0 and one equal to the maximum ranks
// 100. Needs at least two history points to span a range.
func IVRank(currentIV float64, history []float64) (float64, error) {
	if currentIV <= 0 {
		return 0, fmt.Errorf("%w: implied volatility must be positive, got %.4f", models.ErrInvalidInput, currentIV)
	}
	if len(history) < 2 {
		return 0, fmt.Errorf("%w: IV rank needs at least 2 history points, have %d", models.ErrInsufficientData, len(history))
	}

	below := 0
	for _, iv := range history {
		if iv <= 0 {
			return 0, fmt.Errorf("%w: non-positive IV in history", models.ErrInvalidInput)
		}
		if iv < currentIV {
			below++
		}
	}

	rank := 100 * float64(below) / float64(len(history)-1)
	if rank > 100 {
		rank = 100
	}
	return rank, nil
}
