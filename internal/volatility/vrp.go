package volatility

import (
	"fmt"

	"github.com/marketlab/optioncore/models"
)

// VRP is the volatility risk premium: implied minus realized, both as
// annualized decimals (0.05 = 5 points of premium).
func VRP(impliedVol, realizedVol float64) float64 {
	return impliedVol - realizedVol
}

// EvaluateOptions tunes a full VRP evaluation.
type EvaluateOptions struct {
	Forecast ForecastOptions
	// NeutralBand is the half-width around zero inside which the VRP
	// reads neutral. Above +band implied is rich (sell premium), below
	// -band implied is cheap (buy premium). Default 0.02.
	NeutralBand float64
}

// Evaluate runs the full VRP pipeline: forecast realized volatility
// from the price history, take the premium against implied, rank the
// current IV within its history, and classify the trade direction.
func Evaluate(impliedVol float64, prices []float64, ivHistory []float64, opts EvaluateOptions) (*models.VRPResult, error) {
	if impliedVol <= 0 {
		return nil, fmt.Errorf("%w: implied volatility must be positive, got %.4f", models.ErrInvalidInput, impliedVol)
	}

	estimate, err := ForecastRealized(prices, opts.Forecast)
	if err != nil {
		return nil, err
	}

	rank, err := IVRank(impliedVol, ivHistory)
	if err != nil {
		return nil, err
	}
	estimate.IVRank = rank

	band := opts.NeutralBand
	if band <= 0 {
		band = 0.02
	}

	vrp := VRP(impliedVol, estimate.Annualized)
	recommendation := models.RecommendNeutral
	if vrp > band {
		recommendation = models.RecommendSell
	} else if vrp < -band {
		recommendation = models.RecommendBuy
	}

	return &models.VRPResult{
		VRP:            vrp,
		Recommendation: recommendation,
		Estimate:       *estimate,
	}, nil
}
